// Package field describes one declared field as an immutable record,
// constructed from a raw FieldInfo and the enclosing class's constant pool.
package field

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lvyitian/govm-link/constpool"
	"github.com/lvyitian/govm-link/oop"
	"github.com/lvyitian/govm-link/types"
)

// AttrConstantValue is the raw ConstantValue attribute as the upstream
// parser would hand it to us: just the index of the literal in the
// constant pool. Fields carry at most one.
type AttrConstantValue struct {
	ConstantValueIndex uint16
}

// Attribute is the generic shape of a field_info attribute. Only
// ConstantValue is meaningful to this core; everything else (Synthetic,
// Deprecated, Signature, RuntimeVisibleAnnotations, ...) is opaque here and
// simply ignored.
type Attribute struct {
	Name string
	ConstantValue *AttrConstantValue
}

// Info is the raw, parser-produced field_info record this core consumes.
type Info struct {
	AccessFlags types.AccessFlags
	NameIndex   uint16
	DescIndex   uint16
	Attrs       []Attribute
}

// Field is the immutable, post-linking description of one declared field.
type Field struct {
	Owner       uint32 // ClassID of the declaring class, see vmclass.Registry
	ClsName     []byte
	Name        []byte
	Desc        []byte
	AccessFlags types.AccessFlags
	Kind        types.ValueKind

	// attrConstantValue is the decoded ConstantValue literal, if any.
	// Only meaningful for static final primitives/Strings, but preserved
	// on the record regardless of whether it ends up honored.
	attrConstantValue *oop.Oop
}

// New constructs a Field from a raw FieldInfo record and the enclosing
// class's constant pool: resolves the name and descriptor, classifies the
// descriptor into a ValueKind, and decodes any ConstantValue attribute.
func New(cp *constpool.ConstantPool, fi Info, clsName []byte, owner uint32) (*Field, error) {
	name, err := cp.GetUtf8(int(fi.NameIndex))
	if err != nil {
		return nil, errors.Wrap(err, "resolving field name")
	}
	desc, err := cp.GetUtf8(int(fi.DescIndex))
	if err != nil {
		return nil, errors.Wrap(err, "resolving field descriptor")
	}

	kind, err := types.ValueKindFromDescriptor(desc)
	if err != nil {
		return nil, err
	}

	f := &Field{
		Owner:       owner,
		ClsName:     append([]byte(nil), clsName...),
		Name:        append([]byte(nil), name...),
		Desc:        append([]byte(nil), desc...),
		AccessFlags: fi.AccessFlags,
		Kind:        kind,
	}

	for _, attr := range fi.Attrs {
		if attr.ConstantValue == nil {
			continue
		}
		v, err := resolveConstantValue(cp, int(attr.ConstantValue.ConstantValueIndex))
		if err != nil {
			return nil, errors.Wrapf(err, "resolving ConstantValue for %s:%s", clsName, name)
		}
		f.attrConstantValue = &v
		break // a field carries at most one ConstantValue attribute
	}

	return f, nil
}

func resolveConstantValue(cp *constpool.ConstantPool, index int) (oop.Oop, error) {
	c, err := cp.GetConstant(index)
	if err != nil {
		return oop.Oop{}, err
	}
	switch c.Tag {
	case constpool.TagInteger:
		return oop.NewInt(c.IntVal), nil
	case constpool.TagLong:
		return oop.NewLong(c.LongVal), nil
	case constpool.TagFloat:
		return oop.NewFloat(c.FltVal), nil
	case constpool.TagDouble:
		return oop.NewDouble(c.DblVal), nil
	case constpool.TagString:
		return oop.NewConstUtf8(c.StrVal), nil
	default:
		return oop.Oop{}, errors.Wrapf(types.ErrWrongConstantTag, "ConstantValue index %d", index)
	}
}

func (f *Field) IsPublic() bool    { return f.AccessFlags.Has(types.AccPublic) }
func (f *Field) IsPrivate() bool   { return f.AccessFlags.Has(types.AccPrivate) }
func (f *Field) IsProtected() bool { return f.AccessFlags.Has(types.AccProtected) }
func (f *Field) IsStatic() bool    { return f.AccessFlags.Has(types.AccStatic) }
func (f *Field) IsFinal() bool     { return f.AccessFlags.Has(types.AccFinal) }
func (f *Field) IsVolatile() bool  { return f.AccessFlags.Has(types.AccVolatile) }

// GetConstantValue returns the zero value a freshly created slot for this
// field would hold — distinct from GetAttrConstantValue, which is the
// optional class-file initializer.
func (f *Field) GetConstantValue() (oop.Oop, error) {
	return oop.ZeroOf(f.Kind)
}

// GetAttrConstantValue returns the decoded ConstantValue attribute, if the
// class file declared one.
func (f *Field) GetAttrConstantValue() (oop.Oop, bool) {
	if f.attrConstantValue == nil {
		return oop.Oop{}, false
	}
	return *f.attrConstantValue, true
}

// Key uniquely identifies a field within its declaring class: name alone
// is insufficient since overloaded-by-type fields are legal.
type Key struct {
	Name string
	Desc string
}

func (f *Field) Key() Key {
	return Key{Name: string(f.Name), Desc: string(f.Desc)}
}

// String renders "<cls_name>:<name>:<desc>", tolerating non-UTF-8 bytes in
// the modified-UTF-8 class-file encoding by lossily decoding rather than
// aborting.
func (f *Field) String() string {
	return fmt.Sprintf("%s:%s:%s", f.ClsName, f.Name, f.Desc)
}

// FieldId is the (slot offset, Field) pair the resolver hands to the
// interpreter. Stable for the lifetime of the owning class.
type FieldId struct {
	Offset uint32
	Field  *Field
}
