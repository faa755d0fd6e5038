package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/toymachine/bitword"
)

func TestMemory_StoreLoad(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8, 32)
	assert.Equal(8, mem.Len())

	word, err := bitword.Parse("0000000000000011")
	assert.NoError(err)

	for address := range mem.Len() {
		err = mem.Store(address, bitword.Bits(word))
		assert.NoError(err)

		got, err := mem.Load(address)
		assert.NoError(err)
		assert.Equal(word, got)
	}

	err = mem.Store(2, bitword.Integer(9))
	assert.NoError(err)
	got, err := mem.Load(2)
	assert.NoError(err)
	assert.Equal("1001", got.String())
}

func TestMemory_NotFound(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8, 32)

	_, err := mem.Load(8)
	assert.True(errors.Is(err, ErrAddressNotFound))
	assert.Equal(ErrAddress(8), err)

	_, err = mem.Load(-1)
	assert.True(errors.Is(err, ErrAddressNotFound))

	err = mem.Store(8, bitword.Integer(1))
	assert.True(errors.Is(err, ErrAddressNotFound))

	_, err = mem.Address(1 << 40)
	assert.True(errors.Is(err, ErrAddressNotFound))

	address, err := mem.Address(7)
	assert.NoError(err)
	assert.Equal(7, address)
}

func TestMemory_TooLong(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8, 32)
	assert.NoError(mem.Store(1, bitword.Integer(3)))

	err := mem.Store(1, bitword.Bits(bitword.FromInteger(1, 33)))
	assert.True(errors.Is(err, ErrValueTooLong))

	var width ErrValueWidth
	assert.True(errors.As(err, &width))
	assert.Equal(33, width.Bits)
	assert.Equal(32, width.Limit)

	got, err := mem.Load(1)
	assert.NoError(err)
	assert.Equal("11", got.String())
}

func TestMemory_Dump(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(3, 32)
	mem.Store(1, bitword.Integer(6))

	assert.Equal("Memory Dump\n0: 0\n1: 110\n2: 0", mem.Dump())

	mem.Reset()
	assert.Equal("Memory Dump\n0: 0\n1: 0\n2: 0", mem.Dump())
}
