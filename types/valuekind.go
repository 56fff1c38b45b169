package types

import "github.com/pkg/errors"

// ValueKind is the closed sum of field value kinds, per JVMS §4.3.2. It is
// derived from the leading byte of a descriptor string and never compared
// by anything other than exhaustive switch.
type ValueKind int

const (
	KindByte ValueKind = iota
	KindBoolean
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindObject
	KindArray
	KindVoid
)

func (k ValueKind) String() string {
	switch k {
	case KindByte:
		return "byte"
	case KindBoolean:
		return "boolean"
	case KindChar:
		return "char"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindVoid:
		return "void"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether the kind occupies a numeric slot (as opposed to
// a reference slot that starts out null).
func (k ValueKind) IsNumeric() bool {
	switch k {
	case KindByte, KindBoolean, KindChar, KindShort, KindInt, KindLong, KindFloat, KindDouble:
		return true
	default:
		return false
	}
}

// ValueKindFromDescriptor classifies a field descriptor's leading byte into
// a ValueKind (§4.1). Void is a legal descriptor lead for methods but is a
// structural error for a field.
func ValueKindFromDescriptor(desc []byte) (ValueKind, error) {
	if len(desc) == 0 {
		return 0, errors.Wrap(ErrMalformedDescriptor, "empty descriptor")
	}
	switch desc[0] {
	case 'B':
		return KindByte, nil
	case 'Z':
		return KindBoolean, nil
	case 'C':
		return KindChar, nil
	case 'S':
		return KindShort, nil
	case 'I':
		return KindInt, nil
	case 'J':
		return KindLong, nil
	case 'F':
		return KindFloat, nil
	case 'D':
		return KindDouble, nil
	case 'L':
		return KindObject, nil
	case '[':
		return KindArray, nil
	case 'V':
		return 0, errors.Wrapf(ErrMalformedDescriptor, "void is not a legal field kind")
	default:
		return 0, errors.Wrapf(ErrMalformedDescriptor, "unrecognized descriptor lead byte %q", desc[0])
	}
}
