package bitword

import (
	"strconv"
)

// ValueKind selects the representation held by a Value.
type ValueKind int

const (
	VALUE_BITS    = ValueKind(0) // Raw bits, stored unconverted.
	VALUE_INTEGER = ValueKind(1) // Unsigned integer, expanded on store.
)

// Value is either an unsigned integer or a raw word of bits.
type Value struct {
	Kind    ValueKind
	Integer uint64
	Bits    Word
}

// Integer makes an integer value.
func Integer(value uint64) Value {
	return Value{Kind: VALUE_INTEGER, Integer: value}
}

// Bits makes a raw bits value.
func Bits(word Word) Value {
	return Value{Kind: VALUE_BITS, Bits: word}
}

// Word normalizes the value into the word that will be stored.
// Integers are expanded with no minimum length.
func (v Value) Word() Word {
	if v.Kind == VALUE_INTEGER {
		return FromInteger(v.Integer, 0)
	}
	return v.Bits
}

// Uint64 returns the unsigned value.
func (v Value) Uint64() uint64 {
	if v.Kind == VALUE_INTEGER {
		return v.Integer
	}
	return v.Bits.Value
}

// String renders integers in decimal and bits as binary digits.
func (v Value) String() string {
	if v.Kind == VALUE_INTEGER {
		return strconv.FormatUint(v.Integer, 10)
	}
	return v.Bits.String()
}
