// Package resolve chases a constant-pool Fieldref index through ClassRef ->
// Utf8 -> NameAndType -> Utf8 to assemble a (class, name, desc) triple,
// then, given whether the call site expects a static or instance field,
// walks to the owning class, ensures it is initialized, and returns a
// FieldId.
package resolve

import (
	"github.com/pkg/errors"

	"github.com/lvyitian/govm-link/constpool"
	"github.com/lvyitian/govm-link/field"
	"github.com/lvyitian/govm-link/types"
	"github.com/lvyitian/govm-link/vmclass"
)

// ClassLoader resolves a symbolic class name to a loaded class handle and
// can bring a freshly loaded class through preparation (field layout
// assignment). It owns the parsed FieldInfo records that Prepare needs,
// which the resolver itself never sees.
type ClassLoader interface {
	RequireClass(className string) (*vmclass.InstanceClass, error)
	EnsureLinked(c *vmclass.InstanceClass) error
}

// ResolveFieldRef resolves a Fieldref constant-pool entry to a FieldId.
func ResolveFieldRef(
	cp *constpool.ConstantPool,
	cpIndex int,
	expectedStatic bool,
	loader ClassLoader,
	classes vmclass.ClassByID,
	runner vmclass.ClinitRunner,
) (field.FieldId, error) {
	classIdx, natIdx, err := cp.GetFieldref(cpIndex)
	if err != nil {
		return field.FieldId{}, errors.Wrap(err, "reading Fieldref")
	}

	className, err := cp.GetClassName(classIdx)
	if err != nil {
		return field.FieldId{}, errors.Wrap(err, "reading Fieldref class")
	}

	class, err := loader.RequireClass(string(className))
	if err != nil {
		return field.FieldId{}, errors.Wrapf(types.ErrClassNotFound, "%s", className)
	}

	if class.State == vmclass.Loaded {
		if err := loader.EnsureLinked(class); err != nil {
			return field.FieldId{}, errors.Wrapf(err, "linking class %s", class.Name)
		}
	}

	// The resolver demands Linked (or later) before it hands out a
	// FieldId, so static-field offsets are stable for the caller. It then
	// drives the class the rest of the way to Initialized before
	// returning: Initialized is guaranteed before any putfield/getfield/
	// putstatic/getstatic using the returned ID executes.
	if err := vmclass.TriggerInit(class, classes, runner); err != nil {
		return field.FieldId{}, err
	}

	name, desc, err := cp.GetNameAndType(natIdx)
	if err != nil {
		return field.FieldId{}, errors.Wrap(err, "reading NameAndType")
	}
	key := field.Key{Name: string(name), Desc: string(desc)}

	return lookupField(class, classes, key, expectedStatic)
}

// lookupField walks the superclass chain starting at class, looking for
// key in the table matching expectedStatic. The first match wins. If key
// exists in the class hierarchy but only in the *other* table, that is an
// IncompatibleClassChange, not a NoSuchField.
func lookupField(class *vmclass.InstanceClass, classes vmclass.ClassByID, key field.Key, expectedStatic bool) (field.FieldId, error) {
	var wrongKindFound bool

	cur := class
	for {
		table := cur.DeclaredInstanceFields
		other := cur.DeclaredStaticFields
		if expectedStatic {
			table, other = other, table
		}

		if fid, ok := table[key]; ok {
			return fid, nil
		}
		if _, ok := other[key]; ok {
			wrongKindFound = true
		}

		if !cur.HasSuper {
			break
		}
		super, ok := classes.GetByID(cur.SuperclassID)
		if !ok {
			return field.FieldId{}, errors.Wrapf(types.ErrClassNotFound, "superclass of %s", cur.Name)
		}
		cur = super
	}

	if wrongKindFound {
		return field.FieldId{}, errors.Wrapf(types.ErrIncompatibleClassChange,
			"%s.%s:%s is %s, expected %s", class.Name, key.Name, key.Desc,
			kindLabel(!expectedStatic), kindLabel(expectedStatic))
	}
	return field.FieldId{}, errors.Wrapf(types.ErrNoSuchField, "%s.%s:%s", class.Name, key.Name, key.Desc)
}

func kindLabel(static bool) string {
	if static {
		return "static"
	}
	return "instance"
}
