package cpu

import (
	"github.com/ezrec/toymachine/bitword"
)

// Layout describes the bit field widths of the instruction encoding.
type Layout struct {
	WordBits     int // Bits in a word.
	OpcodeBits   int // Bits in the leading opcode field.
	RegisterBits int // Bits in a register operand sub-field.
	AddressBits  int // Bits in a memory address sub-field.
}

// OperandBits is the width of the operand field of a single word.
func (lay Layout) OperandBits() int {
	return lay.WordBits - lay.OpcodeBits
}

// Continuation is the reserved all-ones opcode, marking an instruction that
// continues in the next word.
func (lay Layout) Continuation() Opcode {
	return Opcode((1 << lay.OpcodeBits) - 1)
}

// Analyze splits an instruction word into its opcode and operand field.
//
// If the opcode is the continuation opcode, fetch is called to load the
// next word, which is analyzed in turn. Its opcode becomes the effective
// opcode, and its operand field, with its leading zero bits stripped, is
// appended below the operand field of the first word.
//
// The stripping cannot tell padding from leading zero data bits; both are
// dropped.
func (lay Layout) Analyze(word bitword.Word, fetch func() (bitword.Word, error)) (op Opcode, operands bitword.Word, err error) {
	if word.Bits != lay.WordBits {
		err = ErrInstructionWidth{Word: word.String(), Bits: word.Bits, Limit: lay.WordBits}
		return
	}

	code, operands := word.Split(lay.OpcodeBits)
	op = Opcode(code.Value)

	if op != lay.Continuation() {
		return
	}

	if fetch == nil {
		err = ErrInstructionWidth{Word: word.String(), Bits: word.Bits, Limit: lay.WordBits, Continued: true}
		return
	}

	next, err := fetch()
	if err != nil {
		return
	}

	op, low, err := lay.Analyze(next, fetch)
	if err != nil {
		return
	}

	low = low.TrimLeadingZeros()

	combined, err := operands.Concat(low)
	if err != nil {
		err = ErrValueWidth{Target: f("instruction operands"), Bits: operands.Bits + low.Bits, Limit: bitword.MAX_BITS}
		return
	}

	operands = combined
	return
}

// EncodeWord builds a single instruction word from an opcode and the
// operand field. Operand bits beyond the operand field are discarded.
func (lay Layout) EncodeWord(op Opcode, operands uint64) (word bitword.Word) {
	operandBits := lay.OperandBits()
	operands &= (uint64(1) << operandBits) - 1

	word.Bits = lay.WordBits
	word.Value = (uint64(op) << operandBits) | operands
	return
}

// Encode builds a single instruction word for an operation, placing first
// in the leading sub-field and second in the remaining bits.
// Opcodes without an operation take second as the whole operand field.
func (lay Layout) Encode(op Opcode, first, second uint64) (word bitword.Word) {
	var firstBits int
	if ops := lay.Operations(); op >= 0 && int(op) < len(ops) {
		firstBits = ops[op].FirstBits
	}

	secondBits := lay.OperandBits() - firstBits
	first &= (uint64(1) << firstBits) - 1
	second &= (uint64(1) << secondBits) - 1

	return lay.EncodeWord(op, (first<<secondBits)|second)
}
