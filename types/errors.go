package types

import "errors"

// Sentinel error kinds, per the error-handling design. Each condition below
// is surfaced by wrapping its sentinel (via github.com/pkg/errors, which
// attaches a stack trace at the point of Wrap) so callers can test with
// errors.Is against a stable value instead of parsing messages. Errors for
// other conditions (fixture misuse, calling Prepare or TriggerInit in the
// wrong state, a slot offset out of range) are plain errors that wrap no
// sentinel.
var (
	// ErrClassNotFound is returned when the class loader cannot resolve a
	// symbolic class reference.
	ErrClassNotFound = errors.New("class not found")

	// ErrNoSuchField is returned when a (name, desc) pair is absent from a
	// class's declared-field chain.
	ErrNoSuchField = errors.New("no such field")

	// ErrIncompatibleClassChange is returned when a field resolves but its
	// static/instance-ness disagrees with the call site's expectation.
	ErrIncompatibleClassChange = errors.New("incompatible class change")

	// ErrWrongConstantTag is returned when a constant-pool tag disagrees
	// with the context requesting it (e.g. a ConstantValue index pointing
	// at something other than a literal).
	ErrWrongConstantTag = errors.New("wrong constant pool tag")

	// ErrMalformedDescriptor is returned when a descriptor is empty or its
	// leading byte is not one of the ten legal field-descriptor leads
	// (including 'V', which is legal only for methods).
	ErrMalformedDescriptor = errors.New("malformed descriptor")

	// ErrInitializationFailed is cached on a class whose <clinit> threw;
	// every subsequent use of that class re-raises it.
	ErrInitializationFailed = errors.New("class initialization failed")

	// ErrOutOfRange is returned by the constant pool accessor for an
	// index outside [1, len).
	ErrOutOfRange = errors.New("constant pool index out of range")

	// ErrNotUtf8 is returned when a UTF-8 constant is requested at an
	// index that is not tagged Utf8.
	ErrNotUtf8 = errors.New("constant pool entry is not utf8")
)
