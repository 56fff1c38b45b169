// Package oop models the interpreter's tagged runtime value (Object-Oriented
// Pointer). This core only needs the constructors and zero singletons the
// linkage layer hands to slots; everything else about Oop (heap objects,
// arrays, monitors) belongs to the interpreter, an external collaborator.
package oop

import (
	"fmt"

	"github.com/lvyitian/govm-link/types"
)

// Tag is the closed sum of Oop kinds this core constructs.
type Tag int

const (
	TagInt Tag = iota
	TagLong
	TagFloat
	TagDouble
	TagConstUtf8
	TagNull
)

// Oop is the tagged value stored in an instance or static slot.
type Oop struct {
	tag   Tag
	ival  int32
	lval  int64
	fval  float32
	dval  float64
	bytes []byte
}

func (o Oop) Tag() Tag { return o.tag }

func (o Oop) Int() int32      { return o.ival }
func (o Oop) Long() int64     { return o.lval }
func (o Oop) Float() float32  { return o.fval }
func (o Oop) Double() float64 { return o.dval }
func (o Oop) Utf8() []byte    { return o.bytes }
func (o Oop) IsNull() bool    { return o.tag == TagNull }

func NewInt(i int32) Oop      { return Oop{tag: TagInt, ival: i} }
func NewLong(i int64) Oop     { return Oop{tag: TagLong, lval: i} }
func NewFloat(f float32) Oop  { return Oop{tag: TagFloat, fval: f} }
func NewDouble(d float64) Oop { return Oop{tag: TagDouble, dval: d} }
func NewConstUtf8(b []byte) Oop {
	return Oop{tag: TagConstUtf8, bytes: append([]byte(nil), b...)}
}

// the process-wide zero/null singletons. Built at package initialization,
// immutable after.
var (
	int0    = NewInt(0)
	long0   = NewLong(0)
	float0  = NewFloat(0)
	double0 = NewDouble(0)
	null    = Oop{tag: TagNull}
)

func Int0() Oop    { return int0 }
func Long0() Oop   { return long0 }
func Float0() Oop  { return float0 }
func Double0() Oop { return double0 }
func Null() Oop    { return null }

// ZeroOf returns the canonical zero value for a ValueKind. Void has no zero
// value and is a structural error to ask for: callers only ever pass a
// field's derived kind, which can never be Void (see
// types.ValueKindFromDescriptor).
func ZeroOf(k types.ValueKind) (Oop, error) {
	switch k {
	case types.KindByte, types.KindBoolean, types.KindChar, types.KindShort, types.KindInt:
		return int0, nil
	case types.KindLong:
		return long0, nil
	case types.KindFloat:
		return float0, nil
	case types.KindDouble:
		return double0, nil
	case types.KindObject, types.KindArray:
		return null, nil
	default:
		return Oop{}, fmt.Errorf("no zero value for kind %s", k)
	}
}

func (o Oop) String() string {
	switch o.tag {
	case TagInt:
		return fmt.Sprintf("int(%d)", o.ival)
	case TagLong:
		return fmt.Sprintf("long(%d)", o.lval)
	case TagFloat:
		return fmt.Sprintf("float(%v)", o.fval)
	case TagDouble:
		return fmt.Sprintf("double(%v)", o.dval)
	case TagConstUtf8:
		return fmt.Sprintf("utf8(%q)", string(o.bytes))
	case TagNull:
		return "null"
	default:
		return "<invalid oop>"
	}
}
