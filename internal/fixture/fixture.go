// Package fixture builds literal constant-pool + field_info fixtures that
// stand in for the out-of-scope byte-stream class-file parser, so the
// linkage core can be exercised end-to-end (in tests and in
// cmd/classlink) without needing a real .class file on disk.
package fixture

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/lvyitian/govm-link/constpool"
	"github.com/lvyitian/govm-link/field"
	"github.com/lvyitian/govm-link/types"
	"github.com/lvyitian/govm-link/vmclass"
)

// FieldSpec is one field a fixture class declares.
type FieldSpec struct {
	Name          string
	Desc          string
	Access        types.AccessFlags
	ConstantValue interface{} // nil, int32, int64, float32, float64, or string
}

// ClassSpec is one class a fixture builds.
type ClassSpec struct {
	Name string
	Super string // "" for no superclass
	Fields []FieldSpec

	// FailInit, if true, makes this class's <clinit> hook return an error,
	// driving it to InitializationFailed the first time it is triggered.
	FailInit bool
}

// cpBuilder accumulates constpool.Entry values and deduplicates Utf8
// entries by content, matching how a real class file only ever encodes a
// given string once.
type cpBuilder struct {
	entries []constpool.Entry
	utf8    map[string]int
}

func newCPBuilder() *cpBuilder {
	return &cpBuilder{entries: []constpool.Entry{{}}, utf8: make(map[string]int)} // index 0 unused
}

func (b *cpBuilder) add(e constpool.Entry) int {
	b.entries = append(b.entries, e)
	return len(b.entries) - 1
}

func (b *cpBuilder) utf8Index(s string) int {
	if idx, ok := b.utf8[s]; ok {
		return idx
	}
	idx := b.add(constpool.Entry{Tag: constpool.TagUtf8, Utf8: []byte(s)})
	b.utf8[s] = idx
	return idx
}

func (b *cpBuilder) classIndex(name string) int {
	return b.add(constpool.Entry{Tag: constpool.TagClass, NameIndex: uint16(b.utf8Index(name))})
}

func (b *cpBuilder) nameAndTypeIndex(name, desc string) int {
	return b.add(constpool.Entry{
		Tag:          constpool.TagNameAndType,
		NATNameIndex: uint16(b.utf8Index(name)),
		NATDescIndex: uint16(b.utf8Index(desc)),
	})
}

func (b *cpBuilder) fieldrefIndex(className, name, desc string) int {
	ci := b.classIndex(className)
	ni := b.nameAndTypeIndex(name, desc)
	return b.add(constpool.Entry{
		Tag:              constpool.TagFieldref,
		ClassIndex:       uint16(ci),
		NameAndTypeIndex: uint16(ni),
	})
}

func (b *cpBuilder) intIndex(v int32) int {
	wide := make([]byte, 4)
	binary.BigEndian.PutUint32(wide, uint32(v))
	return b.add(constpool.Entry{Tag: constpool.TagInteger, Wide: wide})
}

func (b *cpBuilder) longIndex(v int64) int {
	wide := make([]byte, 8)
	binary.BigEndian.PutUint64(wide, uint64(v))
	return b.add(constpool.Entry{Tag: constpool.TagLong, Wide: wide})
}

func (b *cpBuilder) floatIndex(v float32) int {
	wide := make([]byte, 4)
	binary.BigEndian.PutUint32(wide, math.Float32bits(v))
	return b.add(constpool.Entry{Tag: constpool.TagFloat, Wide: wide})
}

func (b *cpBuilder) doubleIndex(v float64) int {
	wide := make([]byte, 8)
	binary.BigEndian.PutUint64(wide, math.Float64bits(v))
	return b.add(constpool.Entry{Tag: constpool.TagDouble, Wide: wide})
}

func (b *cpBuilder) stringIndex(v string) int {
	return b.add(constpool.Entry{Tag: constpool.TagString, StringIndex: uint16(b.utf8Index(v))})
}

// World is a fully built fixture: a shared registry plus a constant pool
// per class, since a real class file carries its own constant pool too.
type World struct {
	Registry  *vmclass.Registry
	pools     map[string]*constpool.ConstantPool
	fieldrefs map[string]map[field.Key]int // className -> (name,desc) -> cp index of its Fieldref
	failInit  map[string]bool
}

// Build constructs classes in dependency order (superclasses must appear
// before subclasses in specs) and prepares each of them immediately, as a
// real classloader would during linking.
func Build(specs []ClassSpec) (*World, error) {
	w := &World{
		Registry:  vmclass.NewRegistry(),
		pools:     make(map[string]*constpool.ConstantPool),
		fieldrefs: make(map[string]map[field.Key]int),
		failInit:  make(map[string]bool),
	}

	for _, spec := range specs {
		if err := w.addClass(spec); err != nil {
			return nil, errors.Wrapf(err, "building fixture class %s", spec.Name)
		}
		w.failInit[spec.Name] = spec.FailInit
	}
	return w, nil
}

// RequireClass implements resolve.ClassLoader: the fixture's whole world is
// built up front, so this is a plain lookup rather than an on-demand load.
func (w *World) RequireClass(className string) (*vmclass.InstanceClass, error) {
	c, ok := w.Registry.GetByName(className)
	if !ok {
		return nil, errors.Errorf("class %s not present in fixture world", className)
	}
	return c, nil
}

// EnsureLinked implements resolve.ClassLoader. Build already runs every
// class through vmclass.Prepare, so every class this fixture hands out is
// Linked or later; this is a no-op kept only to satisfy the interface.
func (w *World) EnsureLinked(c *vmclass.InstanceClass) error {
	return nil
}

// RunClinit implements vmclass.ClinitRunner. Real bytecode execution is out
// of scope here; a class built with ClassSpec.FailInit set simulates a
// <clinit> that threw, everything else simulates a <clinit> that succeeded
// without touching any static slot.
func (w *World) RunClinit(c *vmclass.InstanceClass) error {
	if w.failInit[c.Name] {
		return errors.Errorf("simulated <clinit> failure for %s", c.Name)
	}
	return nil
}

func (w *World) addClass(spec ClassSpec) error {
	cpb := newCPBuilder()
	clsNameBytes := []byte(spec.Name)

	id := w.Registry.AllocateID()
	c := vmclass.NewInstanceClass(id, spec.Name)
	w.Registry.Register(c)

	var super *vmclass.InstanceClass
	if spec.Super != "" {
		s, ok := w.Registry.GetByName(spec.Super)
		if !ok {
			return errors.Errorf("superclass %s must be built before %s", spec.Super, spec.Name)
		}
		super = s
	}

	var fields []*field.Field
	refs := make(map[field.Key]int)
	for _, fs := range spec.Fields {
		nameIdx := cpb.utf8Index(fs.Name)
		descIdx := cpb.utf8Index(fs.Desc)

		info := field.Info{
			AccessFlags: fs.Access,
			NameIndex:   uint16(nameIdx),
			DescIndex:   uint16(descIdx),
		}
		if fs.ConstantValue != nil {
			cvIdx, err := cpb.constantIndex(fs.ConstantValue)
			if err != nil {
				return err
			}
			info.Attrs = append(info.Attrs, field.Attribute{
				Name:          "ConstantValue",
				ConstantValue: &field.AttrConstantValue{ConstantValueIndex: uint16(cvIdx)},
			})
		}

		cp := constpool.New(cpb.entries) // reused across iterations; finalized after loop
		f, err := field.New(cp, info, clsNameBytes, id)
		if err != nil {
			return err
		}
		fields = append(fields, f)

		refs[f.Key()] = cpb.fieldrefIndex(spec.Name, fs.Name, fs.Desc)
	}

	if err := vmclass.Prepare(c, super, fields); err != nil {
		return err
	}

	w.pools[spec.Name] = constpool.New(cpb.entries)
	w.fieldrefs[spec.Name] = refs
	return nil
}

func (b *cpBuilder) constantIndex(v interface{}) (int, error) {
	switch val := v.(type) {
	case int32:
		return b.intIndex(val), nil
	case int64:
		return b.longIndex(val), nil
	case float32:
		return b.floatIndex(val), nil
	case float64:
		return b.doubleIndex(val), nil
	case string:
		return b.stringIndex(val), nil
	default:
		return 0, errors.Errorf("unsupported ConstantValue literal type %T", v)
	}
}

// Pool returns the constant pool built for className.
func (w *World) Pool(className string) (*constpool.ConstantPool, error) {
	cp, ok := w.pools[className]
	if !ok {
		return nil, errors.Errorf("no fixture class %s", className)
	}
	return cp, nil
}

// FieldrefIndex returns the constant-pool index of the Fieldref entry this
// fixture generated for className's own (name, desc) field — the literal
// input ResolveFieldRef expects.
func (w *World) FieldrefIndex(className, name, desc string) (int, error) {
	refs, ok := w.fieldrefs[className]
	if !ok {
		return 0, errors.Errorf("no fixture class %s", className)
	}
	idx, ok := refs[field.Key{Name: name, Desc: desc}]
	if !ok {
		return 0, errors.Errorf("no field %s:%s on fixture class %s", name, desc, className)
	}
	return idx, nil
}
