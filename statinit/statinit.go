// Package statinit seeds every declared static field's slot during class
// preparation: from its ConstantValue attribute if it is a static final
// field carrying one, otherwise from its kind's zero value. Runs exactly
// once per class, before <clinit>, per JVMS §5.4.2/§4.7.2.
package statinit

import (
	"github.com/lvyitian/govm-link/field"
	"github.com/lvyitian/govm-link/oop"
)

// Seed computes the initial static-slot values for one class's own
// declared static fields. Idempotent: calling it twice on the same input
// produces the same map, though callers should invoke it only once per
// class (re-seeding after <clinit> or putstatic has run would silently
// discard mutations).
func Seed(staticFields map[field.Key]field.FieldId) (map[field.Key]oop.Oop, error) {
	slots := make(map[field.Key]oop.Oop, len(staticFields))
	for key, fid := range staticFields {
		if fid.Field.IsFinal() {
			if v, ok := fid.Field.GetAttrConstantValue(); ok {
				slots[key] = v
				continue
			}
		}
		z, err := fid.Field.GetConstantValue()
		if err != nil {
			return nil, err
		}
		slots[key] = z
	}
	return slots, nil
}
