// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"log"

	"github.com/ezrec/toymachine/bitword"
)

// Cpu is the simulation context for the toy machine: a register bank, a
// memory, and the opcode table that executes against them.
//
// A Cpu is strictly sequential and is not safe for concurrent use.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Layout                  // Instruction encoding layout.
	Registers *RegisterBank // Register bank.
	Memory    *Memory       // Word addressed memory.

	Ticks int // Completed instruction counter.

	operation []Operation // Opcode table, indexed by opcode.
}

// NewCpu creates a new CPU with the given instruction layout and a memory
// of cells words.
func NewCpu(layout Layout, cells int) (cpu *Cpu) {
	cpu = &Cpu{
		Layout:    layout,
		Registers: NewRegisterBank(layout.WordBits),
		Memory:    NewMemory(cells, layout.WordBits),
		operation: layout.Operations(),
	}

	return
}

// Reset the CPU state.
// - Clears the registers and the memory.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Memory.Reset()
	cpu.Ticks = 0
}

// String returns the register dump, followed by the memory dump.
func (cpu *Cpu) String() string {
	return cpu.Registers.Dump() + "\n\n" + cpu.Memory.Dump()
}

// Operation returns the opcode table entry for an opcode.
func (cpu *Cpu) Operation(op Opcode) (operation Operation, err error) {
	if op < 0 || int(op) >= len(cpu.operation) {
		err = ErrOpcode(op)
		return
	}

	operation = cpu.operation[op]
	return
}

// Pc returns the program counter's value.
func (cpu *Cpu) Pc() uint64 {
	pc, _ := cpu.Registers.Load(REG_PC)
	return pc.Value
}

// Fetch loads the word addressed by PC into IR, then advances PC by one.
func (cpu *Cpu) Fetch() (word bitword.Word, err error) {
	pc, err := cpu.Registers.Load(REG_PC)
	if err != nil {
		return
	}

	address, err := cpu.Memory.Address(pc.Value)
	if err != nil {
		return
	}

	word, err = cpu.Memory.Load(address)
	if err != nil {
		return
	}

	err = cpu.Registers.Store(REG_IR, bitword.Bits(word))
	if err != nil {
		return
	}

	next, err := sum(pc.Value, 1)
	if err != nil {
		return
	}

	err = cpu.Registers.Store(REG_PC, next)
	return
}

// Decode analyzes the instruction in IR, fetching continuation words as
// required.
func (cpu *Cpu) Decode() (op Opcode, operands bitword.Word, err error) {
	ir, err := cpu.Registers.Load(REG_IR)
	if err != nil {
		return
	}

	return cpu.Layout.Analyze(ir, cpu.Fetch)
}

// Execute dispatches an opcode and its operand field.
func (cpu *Cpu) Execute(op Opcode, operands bitword.Word) (err error) {
	operation, err := cpu.Operation(op)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Pc(), operation.Format(operands))
	}

	first, second := operation.Split(operands)

	err = operation.Exec(cpu.Registers, cpu.Memory, first, second)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Tick executes a single fetch, decode, and execute cycle.
//
// Errors are returned unchanged. State modified before the failure, such as
// an already advanced PC, is left as it is.
func (cpu *Cpu) Tick() (err error) {
	_, err = cpu.Fetch()
	if err != nil {
		return
	}

	op, operands, err := cpu.Decode()
	if err != nil {
		return
	}

	return cpu.Execute(op, operands)
}

// LoadProgram resets PC to 0, then stores each word into successive memory
// cells starting at address 0. It stops at the first failing store.
func (cpu *Cpu) LoadProgram(words []bitword.Word) (err error) {
	err = cpu.Registers.Store(REG_PC, bitword.Integer(0))
	if err != nil {
		return
	}

	for address, word := range words {
		err = cpu.Memory.Store(address, bitword.Bits(word))
		if err != nil {
			return
		}
	}

	return
}
