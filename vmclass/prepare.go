package vmclass

import (
	"github.com/pkg/errors"

	"github.com/lvyitian/govm-link/field"
	"github.com/lvyitian/govm-link/layout"
	"github.com/lvyitian/govm-link/statinit"
	"github.com/lvyitian/govm-link/types"
)

// Prepare computes this class's field layout and seeds its static slots,
// transitioning it Loaded -> Linked. super is nil for a class with no
// superclass (conceptually java/lang/Object).
//
// Field tables are immutable once a class reaches Linked: callers must not
// call Prepare more than once per class, and must hold whatever external
// lock serializes first-link races before calling it.
func Prepare(c *InstanceClass, super *InstanceClass, declared []*field.Field) error {
	if c.State != Loaded {
		return errors.Errorf("class %s: Prepare called in state %s, want Loaded", c.Name, c.State)
	}

	var baseOffset uint32
	if super != nil {
		baseOffset = super.NInstFields
		c.HasSuper = true
		c.SuperclassID = super.ID
	}

	lr := layout.Build(declared, baseOffset)
	c.DeclaredInstanceFields = lr.InstanceFields
	c.DeclaredStaticFields = lr.StaticFields
	c.NInstFields = baseOffset + lr.DeclaredInstanceSlots

	slots, err := statinit.Seed(lr.StaticFields)
	if err != nil {
		return errors.Wrapf(err, "seeding statics for class %s", c.Name)
	}
	c.StaticSlots = slots

	c.State = Linked
	return nil
}

// ClassByID resolves a class ID (as stored in InstanceClass.SuperclassID)
// to a loaded class handle. Registry satisfies this directly; it is the
// superclass-walk half of the external class loader's contract — the
// name-indexed half (resolving a constant-pool Fieldref's class_index down
// to a class) lives in the resolve package instead, since only it needs to
// read the constant pool.
type ClassByID interface {
	GetByID(id uint32) (*InstanceClass, bool)
}

// ClinitRunner triggers <clinit> on a class. The core only needs to know
// that initialization happened or failed; the bytecode semantics of
// <clinit> itself are out of scope and belong to the interpreter.
type ClinitRunner interface {
	RunClinit(c *InstanceClass) error
}

// TriggerInit drives a Linked class through BeingInitialized to
// Initialized (or InitializationFailed), running the superclass chain's
// <clinit> first. It is idempotent: a class already Initialized or
// InitializationFailed returns immediately (the latter re-raising the
// cached error). It walks from the current class up to (but not
// including) java/lang/Object collecting superclasses whose <clinit> has
// not yet run, then executes them bottom-most-superclass-first.
func TriggerInit(c *InstanceClass, classes ClassByID, runner ClinitRunner) error {
	switch c.State {
	case Initialized:
		return nil
	case InitializationFailed:
		return errors.Wrapf(types.ErrInitializationFailed, "class %s", c.Name)
	case BeingInitialized:
		// Recursive <clinit> re-entry on the same thread: the caller
		// (classloader/interpreter state machine) is responsible for not
		// deadlocking here; this core treats it as already in progress.
		return nil
	case Loaded:
		return errors.Errorf("class %s: TriggerInit called before Prepare (state Loaded)", c.Name)
	}

	// state == Linked: collect the superclass chain, furthest ancestor
	// first, then run clinit down to this class.
	var chain []*InstanceClass
	cur := c
	for {
		chain = append(chain, cur)
		if !cur.HasSuper {
			break
		}
		super, ok := classes.GetByID(cur.SuperclassID)
		if !ok {
			c.State = InitializationFailed
			return errors.Wrapf(types.ErrClassNotFound, "superclass of %s", cur.Name)
		}
		if super.State == Loaded {
			c.State = InitializationFailed
			return errors.Errorf("superclass %s of %s was never prepared", super.Name, cur.Name)
		}
		cur = super
	}

	for i := len(chain) - 1; i >= 0; i-- {
		cls := chain[i]
		if cls.State == Initialized {
			continue
		}
		if cls.State == InitializationFailed {
			return errors.Wrapf(types.ErrInitializationFailed, "class %s", cls.Name)
		}
		cls.State = BeingInitialized
		if err := runner.RunClinit(cls); err != nil {
			cls.State = InitializationFailed
			return errors.Wrapf(types.ErrInitializationFailed, "class %s: %v", cls.Name, err)
		}
		cls.State = Initialized
	}
	return nil
}
