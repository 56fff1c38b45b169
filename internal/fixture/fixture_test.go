package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLinksEveryClass(t *testing.T) {
	w, err := Build([]ClassSpec{
		{Name: "A", Fields: []FieldSpec{{Name: "x", Desc: "I"}}},
		{Name: "B", Super: "A", Fields: []FieldSpec{{Name: "y", Desc: "I"}}},
	})
	assert.NoError(t, err)

	a, ok := w.Registry.GetByName("A")
	assert.True(t, ok)
	b, ok := w.Registry.GetByName("B")
	assert.True(t, ok)
	assert.True(t, b.HasSuper)
	assert.Equal(t, a.ID, b.SuperclassID)
	assert.Equal(t, uint32(2), b.NInstFields)
}

func TestBuildRejectsUnknownSuperclass(t *testing.T) {
	_, err := Build([]ClassSpec{
		{Name: "B", Super: "Missing"},
	})
	assert.Error(t, err)
}

func TestRunClinitFailsForFlaggedClass(t *testing.T) {
	w, err := Build([]ClassSpec{{Name: "Bad", FailInit: true}})
	assert.NoError(t, err)

	c, ok := w.Registry.GetByName("Bad")
	assert.True(t, ok)
	assert.Error(t, w.RunClinit(c))
}

func TestFieldrefIndexAndPoolAreConsistent(t *testing.T) {
	w, err := Build([]ClassSpec{
		{Name: "Counter", Fields: []FieldSpec{{Name: "count", Desc: "I"}}},
	})
	assert.NoError(t, err)

	cp, err := w.Pool("Counter")
	assert.NoError(t, err)
	idx, err := w.FieldrefIndex("Counter", "count", "I")
	assert.NoError(t, err)

	classIdx, natIdx, err := cp.GetFieldref(idx)
	assert.NoError(t, err)
	name, err := cp.GetClassName(classIdx)
	assert.NoError(t, err)
	assert.Equal(t, "Counter", string(name))

	fname, fdesc, err := cp.GetNameAndType(natIdx)
	assert.NoError(t, err)
	assert.Equal(t, "count", string(fname))
	assert.Equal(t, "I", string(fdesc))
}
