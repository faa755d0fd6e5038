package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/toymachine/translate"
)

var f = translate.From

var (
	// Storage errors
	ErrRegisterNotFound = errors.New(f("register not found"))
	ErrAddressNotFound  = errors.New(f("address not found"))
	ErrValueTooLong     = errors.New(f("value too long"))

	// Instruction decode errors
	ErrMalformedInstruction = errors.New(f("malformed instruction"))
	ErrOpcodeUnknown        = errors.New(f("opcode unknown"))
)

// ErrRegisterName is an unknown register name.
type ErrRegisterName string

func (err ErrRegisterName) Error() string {
	return f("register %v does not exist", string(err))
}

func (err ErrRegisterName) Unwrap() error {
	return ErrRegisterNotFound
}

// ErrRegisterIndex is an out of range positional register index.
type ErrRegisterIndex uint64

func (err ErrRegisterIndex) Error() string {
	return f("register index %v does not exist", strconv.FormatUint(uint64(err), 10))
}

func (err ErrRegisterIndex) Unwrap() error {
	return ErrRegisterNotFound
}

// ErrAddress is a memory address outside of the memory.
type ErrAddress uint64

func (err ErrAddress) Error() string {
	return f("memory address %v does not exist", strconv.FormatUint(uint64(err), 10))
}

func (err ErrAddress) Unwrap() error {
	return ErrAddressNotFound
}

// ErrValueWidth is a value too wide for its destination.
type ErrValueWidth struct {
	Target string // Register name or memory address.
	Bits   int    // Bits in the value.
	Limit  int    // Word size of the target.
}

func (err ErrValueWidth) Error() string {
	return f("%v is %d bits long, but the value to be stored is %d bits long", err.Target, err.Limit, err.Bits)
}

func (err ErrValueWidth) Unwrap() error {
	return ErrValueTooLong
}

// ErrInstructionWidth is an instruction word not exactly one word wide,
// or a continued instruction with no following word.
type ErrInstructionWidth struct {
	Word      string // Binary digits of the instruction word.
	Bits      int    // Length of the instruction word, in bits.
	Limit     int    // Word size.
	Continued bool   // Set if the word continues, but nothing follows it.
}

func (err ErrInstructionWidth) Error() string {
	if err.Continued {
		return f("instruction '%v' continues past its last word", err.Word)
	}
	return f("instruction '%v' is %d bits long, expected %d", err.Word, err.Bits, err.Limit)
}

func (err ErrInstructionWidth) Unwrap() error {
	return ErrMalformedInstruction
}

// ErrOpcode is an opcode with no operation.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode %d", int(eo))
}

func (eo ErrOpcode) Unwrap() error {
	return ErrOpcodeUnknown
}

// ErrSyntax is a program line that is not an encoded word.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
