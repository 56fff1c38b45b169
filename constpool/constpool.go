package constpool

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/lvyitian/govm-link/types"
)

// Entry is one raw constant-pool slot as the upstream parser would have
// produced it. Multi-byte numeric payloads are stored in their on-disk
// big-endian wire order and decoded lazily on read (§4.2).
type Entry struct {
	Tag Tag

	// Utf8: raw modified-UTF-8 bytes.
	Utf8 []byte

	// Integer/Float: 4 big-endian bytes. Long/Double: 8 big-endian bytes.
	Wide []byte

	// Class: index of a Utf8 entry holding the class name.
	NameIndex uint16

	// String: index of a Utf8 entry holding the string's bytes.
	StringIndex uint16

	// NameAndType.
	NATNameIndex uint16
	NATDescIndex uint16

	// Fieldref.
	ClassIndex        uint16
	NameAndTypeIndex uint16
}

// ConstantPool is a 1-indexed table of Entry; index 0 is unused, matching
// the JVMS constant_pool layout (and the long/double double-slot quirk is
// the caller's concern when building the table, not this accessor's).
type ConstantPool struct {
	Entries []Entry
}

func New(entries []Entry) *ConstantPool {
	return &ConstantPool{Entries: entries}
}

func (cp *ConstantPool) at(index int) (Entry, error) {
	if cp == nil || index < 1 || index >= len(cp.Entries) {
		return Entry{}, errors.Wrapf(types.ErrOutOfRange, "index %d", index)
	}
	return cp.Entries[index], nil
}

// GetUtf8 returns the raw bytes of a Utf8 entry.
func (cp *ConstantPool) GetUtf8(index int) ([]byte, error) {
	e, err := cp.at(index)
	if err != nil {
		return nil, err
	}
	if e.Tag != TagUtf8 {
		return nil, errors.Wrapf(types.ErrNotUtf8, "index %d has tag %d", index, e.Tag)
	}
	return e.Utf8, nil
}

// GetNameAndType returns the (name, descriptor) byte pair a NameAndType
// entry points to, already dereferenced through their Utf8 entries.
func (cp *ConstantPool) GetNameAndType(index int) (name, desc []byte, err error) {
	e, err := cp.at(index)
	if err != nil {
		return nil, nil, err
	}
	if e.Tag != TagNameAndType {
		return nil, nil, errors.Wrapf(types.ErrWrongConstantTag, "index %d has tag %d, want NameAndType", index, e.Tag)
	}
	name, err = cp.GetUtf8(int(e.NATNameIndex))
	if err != nil {
		return nil, nil, err
	}
	desc, err = cp.GetUtf8(int(e.NATDescIndex))
	if err != nil {
		return nil, nil, err
	}
	return name, desc, nil
}

// GetFieldref returns the raw (class_index, name_and_type_index) pair of a
// Fieldref entry, unresolved.
func (cp *ConstantPool) GetFieldref(index int) (classIndex, nameAndTypeIndex int, err error) {
	e, err := cp.at(index)
	if err != nil {
		return 0, 0, err
	}
	if e.Tag != TagFieldref {
		return 0, 0, errors.Wrapf(types.ErrWrongConstantTag, "index %d has tag %d, want Fieldref", index, e.Tag)
	}
	return int(e.ClassIndex), int(e.NameAndTypeIndex), nil
}

// GetClassName resolves a Class entry down to the Utf8 bytes of its name.
func (cp *ConstantPool) GetClassName(index int) ([]byte, error) {
	e, err := cp.at(index)
	if err != nil {
		return nil, err
	}
	if e.Tag != TagClass {
		return nil, errors.Wrapf(types.ErrWrongConstantTag, "index %d has tag %d, want Class", index, e.Tag)
	}
	return cp.GetUtf8(int(e.NameIndex))
}

// Constant is the tagged decode of an Integer/Long/Float/Double/String
// literal, as required by GetConstant (used to resolve ConstantValue
// attributes).
type Constant struct {
	Tag     Tag
	IntVal  int32
	LongVal int64
	FltVal  float32
	DblVal  float64
	StrVal  []byte
}

// GetConstant decodes the literal at index. It is an error (WrongConstantTag)
// for the entry there to be anything other than Integer, Long, Float,
// Double, or String — in particular a ConstantValue attribute pointing at a
// non-literal tag is a linkage error here, never a crash.
func (cp *ConstantPool) GetConstant(index int) (Constant, error) {
	e, err := cp.at(index)
	if err != nil {
		return Constant{}, err
	}
	switch e.Tag {
	case TagInteger:
		if len(e.Wide) != 4 {
			return Constant{}, errors.Wrapf(types.ErrWrongConstantTag, "malformed Integer at index %d", index)
		}
		return Constant{Tag: TagInteger, IntVal: int32(binary.BigEndian.Uint32(e.Wide))}, nil
	case TagLong:
		if len(e.Wide) != 8 {
			return Constant{}, errors.Wrapf(types.ErrWrongConstantTag, "malformed Long at index %d", index)
		}
		return Constant{Tag: TagLong, LongVal: int64(binary.BigEndian.Uint64(e.Wide))}, nil
	case TagFloat:
		if len(e.Wide) != 4 {
			return Constant{}, errors.Wrapf(types.ErrWrongConstantTag, "malformed Float at index %d", index)
		}
		bits := binary.BigEndian.Uint32(e.Wide)
		return Constant{Tag: TagFloat, FltVal: math.Float32frombits(bits)}, nil
	case TagDouble:
		if len(e.Wide) != 8 {
			return Constant{}, errors.Wrapf(types.ErrWrongConstantTag, "malformed Double at index %d", index)
		}
		bits := binary.BigEndian.Uint64(e.Wide)
		return Constant{Tag: TagDouble, DblVal: math.Float64frombits(bits)}, nil
	case TagString:
		s, err := cp.GetUtf8(int(e.StringIndex))
		if err != nil {
			return Constant{}, err
		}
		return Constant{Tag: TagString, StrVal: s}, nil
	default:
		return Constant{}, errors.Wrapf(types.ErrWrongConstantTag, "index %d has tag %d, not a literal", index, e.Tag)
	}
}
