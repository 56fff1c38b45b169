package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lvyitian/govm-link/field"
	"github.com/lvyitian/govm-link/instantiate"
	"github.com/lvyitian/govm-link/internal/fixture"
	"github.com/lvyitian/govm-link/oop"
	"github.com/lvyitian/govm-link/resolve"
	"github.com/lvyitian/govm-link/types"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Build fixture classes and print their instance layouts and resolver behavior",
	RunE:  runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	world, err := fixture.Build([]fixture.ClassSpec{
		{Name: "E"},
		{
			Name: "P",
			Fields: []fixture.FieldSpec{
				{Name: "i", Desc: "I"},
				{Name: "j", Desc: "J"},
				{Name: "f", Desc: "F"},
				{Name: "d", Desc: "D"},
				{Name: "b", Desc: "B"},
				{Name: "z", Desc: "Z"},
				{Name: "c", Desc: "C"},
				{Name: "s", Desc: "S"},
			},
		},
		{
			Name:   "R",
			Fields: []fixture.FieldSpec{{Name: "ref", Desc: "Ljava/lang/Object;"}},
		},
		{
			Name:   "A",
			Fields: []fixture.FieldSpec{{Name: "x", Desc: "I"}},
		},
		{
			Name:   "B",
			Super:  "A",
			Fields: []fixture.FieldSpec{{Name: "y", Desc: "Ljava/lang/String;"}},
		},
		{
			Name: "Consts",
			Fields: []fixture.FieldSpec{
				{Name: "MAX", Desc: "I", Access: types.AccStatic | types.AccFinal, ConstantValue: int32(2147483647)},
				{Name: "PI", Desc: "D", Access: types.AccStatic | types.AccFinal, ConstantValue: 3.14159265358979},
			},
		},
		{
			Name:   "Counter",
			Fields: []fixture.FieldSpec{{Name: "count", Desc: "I"}},
		},
	})
	if err != nil {
		return err
	}

	for _, name := range []string{"E", "P", "R", "B"} {
		class, _ := world.Registry.GetByName(name)
		slots, err := instantiate.BuildInitedFieldValues(class, world.Registry)
		if err != nil {
			return err
		}
		sugar.Infow("instance layout", "class", name, "slots", renderSlots(slots))
	}

	for _, name := range []string{"MAX", "PI"} {
		fid, err := resolveField(world, "Consts", name, fieldDesc(name), true)
		if err != nil {
			return err
		}
		v, _ := fid.Field.GetAttrConstantValue()
		sugar.Infow("resolved static field", "class", "Consts", "field", name, "value", v.String())
	}

	if _, err := resolveField(world, "Counter", "count", "I", true); err != nil {
		sugar.Infow("resolving an instance field as static failed as expected", "error", err.Error())
	} else {
		sugar.Warnw("resolving an instance field as static unexpectedly succeeded")
	}

	return nil
}

func fieldDesc(constsFieldName string) string {
	if constsFieldName == "PI" {
		return "D"
	}
	return "I"
}

func renderSlots(slots []oop.Oop) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func resolveField(world *fixture.World, class, name, desc string, static bool) (field.FieldId, error) {
	cp, err := world.Pool(class)
	if err != nil {
		return field.FieldId{}, err
	}
	idx, err := world.FieldrefIndex(class, name, desc)
	if err != nil {
		return field.FieldId{}, err
	}
	return resolve.ResolveFieldRef(cp, idx, static, world, world.Registry, world)
}
