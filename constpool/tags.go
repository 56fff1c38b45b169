// Package constpool is a thin, read-only projection of a parsed class
// file's constant pool. The byte-stream parser that produces the raw
// entries is an external collaborator (out of scope for this core); this
// package only knows how to answer the handful of lookups the linkage
// layer needs.
package constpool

// Tag identifies the kind of a constant-pool entry, per JVMS §4.4.
type Tag uint8

const (
	TagUtf8 Tag = iota + 1
	_           // 2 is unused in the JVM spec
	TagInteger
	TagFloat
	TagLong
	TagDouble
	TagClass
	TagString
	TagFieldref
	TagMethodref
	TagInterfaceMethodref
	TagNameAndType
	_ // 13 unused
	_ // 14 unused
	TagMethodHandle
	TagMethodType
	TagDynamic
	TagInvokeDynamic
)
