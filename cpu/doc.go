// Package cpu implements the processor of the toy machine.
//
// The CPU consists of five registers (AC, DR, CR, PC, IR), a small word
// addressed memory, and an opcode table of move and add operations between
// registers, memory cells, and constants. Words are variable length binary
// values bounded by a fixed word size.
//
// An instruction word is a fixed width opcode followed by an operand field.
// The all-ones opcode marks a continuation: the real opcode and further
// operand bits are in the next word.
package cpu
