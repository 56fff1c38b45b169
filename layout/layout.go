// Package layout partitions a class's declared fields into static and
// instance during class linking, and assigns each a stable slot offset.
package layout

import (
	"github.com/lvyitian/govm-link/field"
)

// Result is the per-class layout computed by Build: the declared instance
// and static fields of one class, keyed by (name, desc) for lookup, plus
// the count of instance slots this class itself contributes (not including
// any superclass — that accumulation happens in vmclass when a class is
// prepared).
type Result struct {
	InstanceFields map[field.Key]field.FieldId
	StaticFields   map[field.Key]field.FieldId

	// DeclaredInstanceSlots is the number of instance slots this class's
	// own declared fields occupy.
	DeclaredInstanceSlots uint32
}

// Build partitions fields into static vs instance and assigns each a slot
// offset. baseOffset is the superclass's cumulative instance-slot count
// (n_inst_fields); instance field offsets start there so that a subclass's
// layout subsumes its superclass's by construction, with every offset
// unique within the class and at or above the superclass's count. Static
// field offsets are local to this class and always start at 0 (no static
// inheritance of storage — only of visibility, which is the resolver's
// concern, not the layout builder's).
func Build(fields []*field.Field, baseOffset uint32) Result {
	res := Result{
		InstanceFields: make(map[field.Key]field.FieldId),
		StaticFields:   make(map[field.Key]field.FieldId),
	}

	var nextInstance = baseOffset
	var nextStatic uint32

	for _, f := range fields {
		key := f.Key()
		if f.IsStatic() {
			res.StaticFields[key] = field.FieldId{Offset: nextStatic, Field: f}
			nextStatic++
			continue
		}
		res.InstanceFields[key] = field.FieldId{Offset: nextInstance, Field: f}
		nextInstance++
	}

	res.DeclaredInstanceSlots = nextInstance - baseOffset
	return res
}
