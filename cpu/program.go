package cpu

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"github.com/ezrec/toymachine/bitword"
)

// Line is a single encoded word of a program, with its source line.
type Line struct {
	LineNo int
	Text   string
	Word   bitword.Word
}

// Program is a list of pre-encoded instruction and data words.
type Program struct {
	Lines []Line
}

// ParseProgram reads one encoded word per line.
//
// Text after a ';' is a comment, and surrounding white space is ignored.
// A trailing blank line is dropped; any other blank line is the empty word.
func ParseProgram(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var lines []Line
	var lineno int

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		code := strings.TrimSpace(strings.SplitN(text, ";", 2)[0])

		var word bitword.Word
		word, err = bitword.Parse(code)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}

		lines = append(lines, Line{LineNo: lineno, Text: text, Word: word})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if n := len(lines); n > 0 && len(strings.TrimSpace(lines[n-1].Text)) == 0 {
		lines = lines[:n-1]
	}

	prog = &Program{Lines: lines}

	return
}

// Words returns the encoded words of the program, in order.
func (prog *Program) Words() (words []bitword.Word) {
	for _, word := range prog.Codes() {
		words = append(words, word)
	}

	return
}

// Codes returns an iterator over the program's load addresses and words.
func (prog *Program) Codes() iter.Seq2[int, bitword.Word] {
	return func(yield func(address int, word bitword.Word) bool) {
		for address, line := range prog.Lines {
			if !yield(address, line.Word) {
				return
			}
		}
	}
}

// LineNo returns the source line loaded at an address, or 0 if unknown.
func (prog *Program) LineNo(address uint64) int {
	if address < uint64(len(prog.Lines)) {
		return prog.Lines[address].LineNo
	}

	return 0
}
