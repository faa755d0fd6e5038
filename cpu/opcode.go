package cpu

import (
	"fmt"
	"math/bits"

	"github.com/ezrec/toymachine/bitword"
)

// Opcode selects the operation of an instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_MOVE_REG_CONST = Opcode(0) // movrc
	OP_MOVE_REG_MEM   = Opcode(1) // movrm
	OP_MOVE_MEM_CONST = Opcode(2) // movmc
	OP_MOVE_MEM_MEM   = Opcode(3) // movmm
	OP_MOVE_MEM_REG   = Opcode(4) // movmr
	OP_ADD_REG_CONST  = Opcode(5) // addrc
	OP_ADD_REG_MEM    = Opcode(6) // addrm
	OP_ADD_MEM_REG    = Opcode(7) // addmr
)

// OPCODE_COUNT is the number of defined operations.
const OPCODE_COUNT = int(OP_ADD_MEM_REG) + 1

// ArgKind is the interpretation of an operand sub-field.
type ArgKind int

const (
	ARG_REGISTER = ArgKind(0) // Positional register index.
	ARG_ADDRESS  = ArgKind(1) // Memory address.
	ARG_CONSTANT = ArgKind(2) // Immediate constant.
)

// Operation is a single entry of the opcode table.
type Operation struct {
	Opcode    Opcode     // Opcode value.
	Args      [2]ArgKind // Kinds of the first and second sub-fields.
	FirstBits int        // Width of the first sub-field; the second takes the rest.
	Exec      func(regs *RegisterBank, mem *Memory, first, second bitword.Word) error
}

// Operations builds the opcode table for the layout, indexed by opcode.
func (lay Layout) Operations() (ops []Operation) {
	// A leading register takes R bits and an address before a constant
	// takes A bits. An address before a register leaves the register the
	// low R bits, and two addresses share the field evenly.
	reg := lay.RegisterBits
	addr := lay.AddressBits
	addrReg := lay.OperandBits() - lay.RegisterBits
	addrAddr := lay.OperandBits() / 2

	ops = []Operation{
		{OP_MOVE_REG_CONST, [2]ArgKind{ARG_REGISTER, ARG_CONSTANT}, reg, moveRegConst},
		{OP_MOVE_REG_MEM, [2]ArgKind{ARG_REGISTER, ARG_ADDRESS}, reg, moveRegMem},
		{OP_MOVE_MEM_CONST, [2]ArgKind{ARG_ADDRESS, ARG_CONSTANT}, addr, moveMemConst},
		{OP_MOVE_MEM_MEM, [2]ArgKind{ARG_ADDRESS, ARG_ADDRESS}, addrAddr, moveMemMem},
		{OP_MOVE_MEM_REG, [2]ArgKind{ARG_ADDRESS, ARG_REGISTER}, addrReg, moveMemReg},
		{OP_ADD_REG_CONST, [2]ArgKind{ARG_REGISTER, ARG_CONSTANT}, reg, addRegConst},
		{OP_ADD_REG_MEM, [2]ArgKind{ARG_REGISTER, ARG_ADDRESS}, reg, addRegMem},
		{OP_ADD_MEM_REG, [2]ArgKind{ARG_ADDRESS, ARG_REGISTER}, addrReg, addMemReg},
	}

	return
}

// Split the operand field into the operation's two sub-fields.
func (op Operation) Split(operands bitword.Word) (first, second bitword.Word) {
	return operands.Split(op.FirstBits)
}

// Format renders the operation and its operands in a readable form.
func (op Operation) Format(operands bitword.Word) string {
	first, second := op.Split(operands)
	return fmt.Sprintf("%v %v, %v", op.Opcode, formatArg(op.Args[0], first), formatArg(op.Args[1], second))
}

// formatArg renders one operand sub-field.
func formatArg(kind ArgKind, word bitword.Word) string {
	switch kind {
	case ARG_REGISTER:
		return Register(word.Value).String()
	case ARG_ADDRESS:
		return fmt.Sprintf("@%d", word.Value)
	default:
		return fmt.Sprintf("#%d", word.Value)
	}
}

// sum adds two unsigned values, failing if the result cannot be represented.
func sum(a, b uint64) (value bitword.Value, err error) {
	total, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		err = ErrValueWidth{Target: f("sum"), Bits: bitword.MAX_BITS + 1, Limit: bitword.MAX_BITS}
		return
	}

	value = bitword.Integer(total)
	return
}

// moveRegConst: register <- integer value of the constant.
func moveRegConst(regs *RegisterBank, mem *Memory, first, second bitword.Word) (err error) {
	reg, err := RegisterAt(first.Value)
	if err != nil {
		return
	}

	return regs.Store(reg, bitword.Integer(second.Value))
}

// moveRegMem: register <- memory[address].
func moveRegMem(regs *RegisterBank, mem *Memory, first, second bitword.Word) (err error) {
	reg, err := RegisterAt(first.Value)
	if err != nil {
		return
	}

	address, err := mem.Address(second.Value)
	if err != nil {
		return
	}

	word, err := mem.Load(address)
	if err != nil {
		return
	}

	return regs.Store(reg, bitword.Bits(word))
}

// moveMemConst: memory[address] <- raw constant bits.
func moveMemConst(regs *RegisterBank, mem *Memory, first, second bitword.Word) (err error) {
	address, err := mem.Address(first.Value)
	if err != nil {
		return
	}

	return mem.Store(address, bitword.Bits(second))
}

// moveMemMem: memory[destination] <- memory[source].
func moveMemMem(regs *RegisterBank, mem *Memory, first, second bitword.Word) (err error) {
	src, err := mem.Address(second.Value)
	if err != nil {
		return
	}

	word, err := mem.Load(src)
	if err != nil {
		return
	}

	dst, err := mem.Address(first.Value)
	if err != nil {
		return
	}

	return mem.Store(dst, bitword.Bits(word))
}

// moveMemReg: memory[address] <- register.
func moveMemReg(regs *RegisterBank, mem *Memory, first, second bitword.Word) (err error) {
	reg, err := RegisterAt(second.Value)
	if err != nil {
		return
	}

	word, err := regs.Load(reg)
	if err != nil {
		return
	}

	address, err := mem.Address(first.Value)
	if err != nil {
		return
	}

	return mem.Store(address, bitword.Bits(word))
}

// addRegConst: register <- register + constant.
func addRegConst(regs *RegisterBank, mem *Memory, first, second bitword.Word) (err error) {
	reg, err := RegisterAt(first.Value)
	if err != nil {
		return
	}

	word, err := regs.Load(reg)
	if err != nil {
		return
	}

	value, err := sum(word.Value, second.Value)
	if err != nil {
		return
	}

	return regs.Store(reg, value)
}

// addRegMem: register <- memory[address] + register.
func addRegMem(regs *RegisterBank, mem *Memory, first, second bitword.Word) (err error) {
	reg, err := RegisterAt(first.Value)
	if err != nil {
		return
	}

	address, err := mem.Address(second.Value)
	if err != nil {
		return
	}

	word, err := mem.Load(address)
	if err != nil {
		return
	}

	input, err := regs.Load(reg)
	if err != nil {
		return
	}

	value, err := sum(word.Value, input.Value)
	if err != nil {
		return
	}

	return regs.Store(reg, value)
}

// addMemReg: memory[address] <- memory[address] + register.
// The same address sub-field is used for the read and the write.
func addMemReg(regs *RegisterBank, mem *Memory, first, second bitword.Word) (err error) {
	reg, err := RegisterAt(second.Value)
	if err != nil {
		return
	}

	address, err := mem.Address(first.Value)
	if err != nil {
		return
	}

	word, err := mem.Load(address)
	if err != nil {
		return
	}

	input, err := regs.Load(reg)
	if err != nil {
		return
	}

	value, err := sum(word.Value, input.Value)
	if err != nil {
		return
	}

	return mem.Store(address, value)
}
