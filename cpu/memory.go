package cpu

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/toymachine/bitword"
)

// Memory is a fixed number of word sized cells, addressed from 0.
type Memory struct {
	Width int            // Word size, in bits.
	Cell  []bitword.Word // Cell contents.
}

// NewMemory creates a memory of count cells, each width bits wide.
func NewMemory(count int, width int) (mem *Memory) {
	mem = &Memory{
		Width: width,
		Cell:  make([]bitword.Word, count),
	}

	mem.Reset()

	return
}

// Len returns the number of cells.
func (mem *Memory) Len() int {
	return len(mem.Cell)
}

// Reset all cells to 0.
func (mem *Memory) Reset() {
	for n := range mem.Cell {
		mem.Cell[n] = bitword.FromInteger(0, 0)
	}
}

// Address validates an unsigned address.
func (mem *Memory) Address(value uint64) (address int, err error) {
	if value >= uint64(len(mem.Cell)) {
		err = ErrAddress(value)
		return
	}

	address = int(value)
	return
}

// Load the word at an address.
func (mem *Memory) Load(address int) (word bitword.Word, err error) {
	if address < 0 || address >= len(mem.Cell) {
		err = ErrAddress(address)
		return
	}

	word = mem.Cell[address]
	return
}

// Store a value at an address. The cell is unchanged on failure.
func (mem *Memory) Store(address int, value bitword.Value) (err error) {
	if address < 0 || address >= len(mem.Cell) {
		err = ErrAddress(address)
		return
	}

	word := value.Word()
	if word.Bits > mem.Width {
		err = ErrValueWidth{Target: f("memory address %d", address), Bits: word.Bits, Limit: mem.Width}
		return
	}

	mem.Cell[address] = word
	return
}

// All returns an iterator over the cells, in address order.
func (mem *Memory) All() iter.Seq2[int, bitword.Word] {
	return func(yield func(address int, word bitword.Word) bool) {
		for address, word := range mem.Cell {
			if !yield(address, word) {
				return
			}
		}
	}
}

// Dump returns a listing of every cell.
func (mem *Memory) Dump() string {
	lines := []string{f("Memory Dump")}
	for address, word := range mem.All() {
		lines = append(lines, fmt.Sprintf("%d: %v", address, word))
	}

	return strings.Join(lines, "\n")
}
