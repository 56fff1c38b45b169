package constpool

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lvyitian/govm-link/types"
)

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func be64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func TestGetUtf8(t *testing.T) {
	cp := New([]Entry{
		{},
		{Tag: TagUtf8, Utf8: []byte("count")},
	})

	got, err := cp.GetUtf8(1)
	assert.NoError(t, err)
	assert.Equal(t, []byte("count"), got)
}

func TestGetUtf8WrongTag(t *testing.T) {
	cp := New([]Entry{{}, {Tag: TagInteger, Wide: be32(1)}})
	_, err := cp.GetUtf8(1)
	assert.ErrorIs(t, err, types.ErrNotUtf8)
}

func TestGetOutOfRange(t *testing.T) {
	cp := New([]Entry{{}, {Tag: TagUtf8, Utf8: []byte("x")}})

	_, err := cp.GetUtf8(0)
	assert.ErrorIs(t, err, types.ErrOutOfRange)

	_, err = cp.GetUtf8(2)
	assert.ErrorIs(t, err, types.ErrOutOfRange)
}

func TestGetNameAndType(t *testing.T) {
	cp := New([]Entry{
		{},
		{Tag: TagUtf8, Utf8: []byte("count")},
		{Tag: TagUtf8, Utf8: []byte("I")},
		{Tag: TagNameAndType, NATNameIndex: 1, NATDescIndex: 2},
	})

	name, desc, err := cp.GetNameAndType(3)
	assert.NoError(t, err)
	assert.Equal(t, []byte("count"), name)
	assert.Equal(t, []byte("I"), desc)
}

func TestGetFieldrefAndClassName(t *testing.T) {
	cp := New([]Entry{
		{},
		{Tag: TagUtf8, Utf8: []byte("Counter")},
		{Tag: TagClass, NameIndex: 1},
		{Tag: TagUtf8, Utf8: []byte("count")},
		{Tag: TagUtf8, Utf8: []byte("I")},
		{Tag: TagNameAndType, NATNameIndex: 3, NATDescIndex: 4},
		{Tag: TagFieldref, ClassIndex: 2, NameAndTypeIndex: 5},
	})

	classIdx, natIdx, err := cp.GetFieldref(6)
	assert.NoError(t, err)
	assert.Equal(t, 2, classIdx)
	assert.Equal(t, 5, natIdx)

	name, err := cp.GetClassName(classIdx)
	assert.NoError(t, err)
	assert.Equal(t, []byte("Counter"), name)
}

func TestGetConstantLiterals(t *testing.T) {
	cp := New([]Entry{
		{},
		{Tag: TagInteger, Wide: be32(uint32(int32(-7)))},
		{Tag: TagLong, Wide: be64(uint64(int64(123456789012)))},
		{Tag: TagFloat, Wide: be32(0x3f800000)}, // 1.0f
		{Tag: TagDouble, Wide: be64(0x3ff0000000000000)}, // 1.0
		{Tag: TagUtf8, Utf8: []byte("hi")},
		{Tag: TagString, StringIndex: 5},
	})

	i, err := cp.GetConstant(1)
	assert.NoError(t, err)
	assert.Equal(t, int32(-7), i.IntVal)

	l, err := cp.GetConstant(2)
	assert.NoError(t, err)
	assert.Equal(t, int64(123456789012), l.LongVal)

	f, err := cp.GetConstant(3)
	assert.NoError(t, err)
	assert.Equal(t, float32(1.0), f.FltVal)

	d, err := cp.GetConstant(4)
	assert.NoError(t, err)
	assert.Equal(t, float64(1.0), d.DblVal)

	s, err := cp.GetConstant(6)
	assert.NoError(t, err)
	assert.Equal(t, []byte("hi"), s.StrVal)
}

func TestGetConstantWrongTag(t *testing.T) {
	cp := New([]Entry{{}, {Tag: TagClass, NameIndex: 0}})
	_, err := cp.GetConstant(1)
	assert.ErrorIs(t, err, types.ErrWrongConstantTag)
}
