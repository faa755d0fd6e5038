// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package bitword implements variable length binary words, the storage unit
// of every toy machine register and memory cell.
//
// A Word is an unsigned value together with its effective bit length. The
// length is significant: the word "0011" is four bits long and distinct from
// the word "11", even though both hold the integer 3.
package bitword

import (
	"errors"
	"math/bits"
	"strings"

	"github.com/ezrec/toymachine/translate"
)

var f = translate.From

// MAX_BITS is the widest word that can be represented.
const MAX_BITS = 64

var (
	ErrWordSyntax  = errors.New(f("not a binary word"))
	ErrWordTooWide = errors.New(f("word too wide"))
)

// ErrDigit reports a character that is not a binary digit.
type ErrDigit rune

func (ed ErrDigit) Error() string {
	return f("'%c' is not a binary digit", rune(ed))
}

func (ed ErrDigit) Unwrap() error {
	return ErrWordSyntax
}

// Word is a binary word of up to MAX_BITS bits, most significant bit first.
type Word struct {
	Value uint64 // Unsigned value of the word.
	Bits  int    // Effective length of the word, in bits.
}

// FromInteger expands value into binary, zero padded to at least minBits.
// Zero expands to the single digit word "0" when minBits is zero.
func FromInteger(value uint64, minBits int) (word Word) {
	word.Value = value
	word.Bits = max(bits.Len64(value), 1, minBits)
	return
}

// ToInteger returns the unsigned value of a word. The empty word is 0.
func ToInteger(word Word) uint64 {
	return word.Uint64()
}

// Parse converts a string of binary digits into a word, preserving leading
// zeros. An optional "0b" prefix is accepted.
func Parse(text string) (word Word, err error) {
	text = strings.TrimPrefix(text, "0b")

	if len(text) > MAX_BITS {
		err = ErrWordTooWide
		return
	}

	for _, digit := range text {
		word.Value <<= 1
		switch digit {
		case '0':
		case '1':
			word.Value |= 1
		default:
			word = Word{}
			err = ErrDigit(digit)
			return
		}
		word.Bits++
	}

	return
}

// Uint64 returns the unsigned value of the word.
func (word Word) Uint64() uint64 {
	return word.Value
}

// String returns the binary digits of the word, exactly Bits long.
func (word Word) String() string {
	var sb strings.Builder
	for n := word.Bits - 1; n >= 0; n-- {
		if (word.Value>>n)&1 != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Split the word into the first n bits, and the remaining bits.
// n is clamped to the word length.
func (word Word) Split(n int) (first, rest Word) {
	n = min(max(n, 0), word.Bits)

	rest.Bits = word.Bits - n
	rest.Value = word.Value & mask(rest.Bits)
	first.Bits = n
	if rest.Bits < MAX_BITS {
		first.Value = word.Value >> rest.Bits
	}

	return
}

// TrimLeadingZeros drops every zero bit before the first one bit.
// A word of only zeros trims to the empty word.
func (word Word) TrimLeadingZeros() Word {
	return Word{Value: word.Value, Bits: bits.Len64(word.Value)}
}

// Concat appends low after the bits of word.
func (word Word) Concat(low Word) (out Word, err error) {
	if word.Bits+low.Bits > MAX_BITS {
		err = ErrWordTooWide
		return
	}

	out.Bits = word.Bits + low.Bits
	if low.Bits < MAX_BITS {
		out.Value = word.Value << low.Bits
	}
	out.Value |= low.Value

	return
}

// mask returns a mask of the low n bits.
func mask(n int) uint64 {
	if n >= MAX_BITS {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}
