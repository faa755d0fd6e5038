package cpu

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/toymachine/bitword"
)

// Register is a named register of the register bank.
// Registers are ordered; operand fields refer to them by position.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_AC = Register(0) // AC
	REG_DR = Register(1) // DR
	REG_CR = Register(2) // CR
	REG_PC = Register(3) // PC
	REG_IR = Register(4) // IR
)

// REGISTER_COUNT is the number of registers in the bank.
const REGISTER_COUNT = int(REG_IR) + 1

// Valid returns true if the register is part of the bank.
func (reg Register) Valid() bool {
	return reg >= REG_AC && reg <= REG_IR
}

// ParseRegister finds a register by its symbolic name.
func ParseRegister(name string) (reg Register, err error) {
	for reg = range Register(REGISTER_COUNT) {
		if reg.String() == name {
			return
		}
	}

	reg = 0
	err = ErrRegisterName(name)
	return
}

// RegisterAt resolves a positional register index.
func RegisterAt(index uint64) (reg Register, err error) {
	if index >= uint64(REGISTER_COUNT) {
		err = ErrRegisterIndex(index)
		return
	}

	reg = Register(index)
	return
}

// RegisterBank is the fixed set of word sized registers.
type RegisterBank struct {
	Width    int                          // Word size, in bits.
	Register [REGISTER_COUNT]bitword.Word // Register contents.
}

// NewRegisterBank creates a register bank of width bit registers.
func NewRegisterBank(width int) (rb *RegisterBank) {
	rb = &RegisterBank{
		Width: width,
	}

	rb.Reset()

	return
}

// Reset all registers to 0.
func (rb *RegisterBank) Reset() {
	for n := range rb.Register {
		rb.Register[n] = bitword.FromInteger(0, 0)
	}
}

// Load a register's word.
func (rb *RegisterBank) Load(reg Register) (word bitword.Word, err error) {
	if !reg.Valid() {
		err = ErrRegisterName(reg.String())
		return
	}

	word = rb.Register[reg]
	return
}

// Store a value into a register. The register is unchanged on failure.
func (rb *RegisterBank) Store(reg Register, value bitword.Value) (err error) {
	if !reg.Valid() {
		err = ErrRegisterName(reg.String())
		return
	}

	word := value.Word()
	if word.Bits > rb.Width {
		err = ErrValueWidth{Target: f("register %v", reg.String()), Bits: word.Bits, Limit: rb.Width}
		return
	}

	rb.Register[reg] = word
	return
}

// All returns an iterator over the registers, in positional order.
func (rb *RegisterBank) All() iter.Seq2[Register, bitword.Word] {
	return func(yield func(reg Register, word bitword.Word) bool) {
		for n, word := range rb.Register {
			if !yield(Register(n), word) {
				return
			}
		}
	}
}

// Dump returns a listing of every register.
func (rb *RegisterBank) Dump() string {
	lines := []string{f("Register Dump")}
	for reg, word := range rb.All() {
		lines = append(lines, fmt.Sprintf("%v: %v", reg, word))
	}

	return strings.Join(lines, "\n")
}
