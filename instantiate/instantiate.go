// Package instantiate builds the initial instance-field-slot vector for a
// new object of a given class, zeroing each declared field by the kind
// derived from its descriptor and covering inherited slots across the
// whole superclass chain.
package instantiate

import (
	"github.com/pkg/errors"

	"github.com/lvyitian/govm-link/oop"
	"github.com/lvyitian/govm-link/vmclass"
)

// BuildInitedFieldValues produces the initial instance-slot vector for a
// new object of class. The walk order (subclass-first vs superclass-first)
// is observationally irrelevant because offsets never overlap across the
// chain — this walks subclass-first purely because that is the direction
// InstanceClass's SuperclassID pointer runs.
func BuildInitedFieldValues(class *vmclass.InstanceClass, classes vmclass.ClassByID) ([]oop.Oop, error) {
	slots := make([]oop.Oop, class.NInstFields)
	for i := range slots {
		slots[i] = oop.Null() // unreachable slots stay null; never observed
	}

	cur := class
	for {
		for _, fid := range cur.DeclaredInstanceFields {
			if int(fid.Offset) >= len(slots) {
				return nil, errors.Errorf("field %s has offset %d outside slot vector of length %d",
					fid.Field, fid.Offset, len(slots))
			}
			zero, err := fid.Field.GetConstantValue()
			if err != nil {
				return nil, errors.Wrapf(err, "zeroing field %s", fid.Field)
			}
			slots[fid.Offset] = zero
		}

		if !cur.HasSuper {
			break
		}
		super, ok := classes.GetByID(cur.SuperclassID)
		if !ok {
			return nil, errors.Errorf("superclass of %s not found in registry", cur.Name)
		}
		cur = super
	}

	return slots, nil
}
