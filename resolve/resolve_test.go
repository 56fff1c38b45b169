package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lvyitian/govm-link/constpool"
	"github.com/lvyitian/govm-link/internal/fixture"
	"github.com/lvyitian/govm-link/types"
)

func buildWorld(t *testing.T) *fixture.World {
	t.Helper()
	w, err := fixture.Build([]fixture.ClassSpec{
		{
			Name:   "Counter",
			Fields: []fixture.FieldSpec{{Name: "count", Desc: "I"}},
		},
		{
			Name: "Consts",
			Fields: []fixture.FieldSpec{
				{Name: "MAX", Desc: "I", Access: types.AccStatic | types.AccFinal, ConstantValue: int32(2147483647)},
			},
		},
		{Name: "A", Fields: []fixture.FieldSpec{{Name: "x", Desc: "I"}}},
		{Name: "B", Super: "A", Fields: []fixture.FieldSpec{{Name: "y", Desc: "I"}}},
	})
	assert.NoError(t, err)
	return w
}

func TestResolveFieldRefInstanceField(t *testing.T) {
	w := buildWorld(t)
	cp, err := w.Pool("Counter")
	assert.NoError(t, err)
	idx, err := w.FieldrefIndex("Counter", "count", "I")
	assert.NoError(t, err)

	fid, err := ResolveFieldRef(cp, idx, false, w, w.Registry, w)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), fid.Offset)
	assert.Equal(t, "count", string(fid.Field.Name))
}

func TestResolveFieldRefStaticVsInstanceMismatch(t *testing.T) {
	w := buildWorld(t)
	cp, err := w.Pool("Counter")
	assert.NoError(t, err)
	idx, err := w.FieldrefIndex("Counter", "count", "I")
	assert.NoError(t, err)

	_, err = ResolveFieldRef(cp, idx, true, w, w.Registry, w)
	assert.ErrorIs(t, err, types.ErrIncompatibleClassChange)
}

func TestResolveFieldRefNoSuchField(t *testing.T) {
	w := buildWorld(t)

	// A dangling Fieldref naming a (name, desc) pair Counter never declared.
	cp := constpool.New([]constpool.Entry{
		{},
		{Tag: constpool.TagUtf8, Utf8: []byte("Counter")},
		{Tag: constpool.TagClass, NameIndex: 1},
		{Tag: constpool.TagUtf8, Utf8: []byte("bogus")},
		{Tag: constpool.TagUtf8, Utf8: []byte("I")},
		{Tag: constpool.TagNameAndType, NATNameIndex: 3, NATDescIndex: 4},
		{Tag: constpool.TagFieldref, ClassIndex: 2, NameAndTypeIndex: 5},
	})

	_, err := ResolveFieldRef(cp, 6, false, w, w.Registry, w)
	assert.ErrorIs(t, err, types.ErrNoSuchField)
}

func TestResolveFieldRefWalksSuperclassChain(t *testing.T) {
	w := buildWorld(t)
	cp, err := w.Pool("B")
	assert.NoError(t, err)

	// B's own field.
	idxY, err := w.FieldrefIndex("B", "y", "I")
	assert.NoError(t, err)
	fidY, err := ResolveFieldRef(cp, idxY, false, w, w.Registry, w)
	assert.NoError(t, err)
	assert.Equal(t, uint32(1), fidY.Offset)

	// x is declared only on A; a Fieldref naming B.x must find it by
	// walking up to A.
	inherited := constpool.New([]constpool.Entry{
		{},
		{Tag: constpool.TagUtf8, Utf8: []byte("B")},
		{Tag: constpool.TagClass, NameIndex: 1},
		{Tag: constpool.TagUtf8, Utf8: []byte("x")},
		{Tag: constpool.TagUtf8, Utf8: []byte("I")},
		{Tag: constpool.TagNameAndType, NATNameIndex: 3, NATDescIndex: 4},
		{Tag: constpool.TagFieldref, ClassIndex: 2, NameAndTypeIndex: 5},
	})
	fidX, err := ResolveFieldRef(inherited, 6, false, w, w.Registry, w)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), fidX.Offset)
	assert.Equal(t, "A", string(fidX.Field.ClsName))
}

func TestResolveFieldRefIsStable(t *testing.T) {
	w := buildWorld(t)
	cp, err := w.Pool("Counter")
	assert.NoError(t, err)
	idx, err := w.FieldrefIndex("Counter", "count", "I")
	assert.NoError(t, err)

	fid1, err := ResolveFieldRef(cp, idx, false, w, w.Registry, w)
	assert.NoError(t, err)
	fid2, err := ResolveFieldRef(cp, idx, false, w, w.Registry, w)
	assert.NoError(t, err)

	assert.Equal(t, fid1.Offset, fid2.Offset)
	assert.Equal(t, fid1.Field.Desc, fid2.Field.Desc)
}
