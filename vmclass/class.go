// Package vmclass models the class-side state this core owns: InstanceClass
// field tables, the ClassKind sum, and the five-state class-initialization
// state machine. Everything about method bodies, bytecode, and the
// constant pool's non-field entries belongs to the classloader and
// interpreter, both external collaborators.
package vmclass

import (
	"github.com/lvyitian/govm-link/field"
	"github.com/lvyitian/govm-link/oop"
)

// InitState is the class's position in the five-state init machine.
// Field IDs may be handed out once a class reaches Linked; an
// Initialized state is guaranteed before any putfield/getfield/putstatic/
// getstatic using that ID executes (the resolver enforces this
// synchronously — see the resolve package).
type InitState int

const (
	Loaded InitState = iota
	Linked
	BeingInitialized
	Initialized
	InitializationFailed
)

func (s InitState) String() string {
	switch s {
	case Loaded:
		return "Loaded"
	case Linked:
		return "Linked"
	case BeingInitialized:
		return "BeingInitialized"
	case Initialized:
		return "Initialized"
	case InitializationFailed:
		return "InitializationFailed"
	default:
		return "Unknown"
	}
}

// Kind is the ClassKind sum from the data model. Only Instance carries
// field layout; Array and Primitive are named but modeled minimally since
// they never own a field table.
type Kind int

const (
	KindInstance Kind = iota
	KindArray
	KindPrimitive
)

// InstanceClass is the partial view of a loaded class relevant to field
// linkage.
type InstanceClass struct {
	ID   uint32
	Name string
	Kind Kind

	SuperclassID uint32
	HasSuper     bool

	// declared fields of this class only, keyed by (name, desc).
	DeclaredInstanceFields map[field.Key]field.FieldId
	DeclaredStaticFields   map[field.Key]field.FieldId

	// NInstFields is the total instance slot count INCLUDING inherited
	// slots: this class's base offset plus its own declared instance
	// fields.
	NInstFields uint32

	// StaticSlots holds this class's own static fields only, one slot per
	// declared static field, seeded during preparation and later mutated
	// by <clinit>/putstatic.
	StaticSlots map[field.Key]oop.Oop

	State InitState
}

// NewInstanceClass builds the skeleton of a class record; callers fill in
// DeclaredInstanceFields/DeclaredStaticFields/NInstFields via layout.Build
// before transitioning the class past Loaded.
func NewInstanceClass(id uint32, name string) *InstanceClass {
	return &InstanceClass{
		ID:                     id,
		Name:                   name,
		Kind:                   KindInstance,
		DeclaredInstanceFields: make(map[field.Key]field.FieldId),
		DeclaredStaticFields:   make(map[field.Key]field.FieldId),
		StaticSlots:            make(map[field.Key]oop.Oop),
		State:                  Loaded,
	}
}
