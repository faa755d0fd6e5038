// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package console is the line oriented command loop of the toy machine.
package console

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/toymachine/cpu"
	"github.com/ezrec/toymachine/emulator"
	"github.com/ezrec/toymachine/translate"
)

var f = translate.From

var ErrCommandUnknown = errors.New(f("command unknown"))
var ErrCommandUsage = errors.New(f("command usage"))

// ErrCommand carries the command line that failed.
type ErrCommand struct {
	Line string
	Err  error
}

func (err *ErrCommand) Error() string {
	return f("%q: %v", err.Line, err.Err)
}

func (err *ErrCommand) Unwrap() error {
	return err.Err
}

// Console reads commands from Input and writes results to Output.
type Console struct {
	Emulator *emulator.Emulator
	Input    io.Reader
	Output   io.Writer
	Prompt   bool // If set, a prompt is written before each command.

	// Open a program file for the 'load' command. Defaults to os.Open.
	Open func(filename string) (io.ReadCloser, error)
}

// command is a console command handler.
type command struct {
	Usage string
	Help  string
	Exec  func(con *Console, args []string) (done bool, err error)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"dump": {"dump", "Dump CPU registers and all memory locations", (*Console).cmdDump},
		"load": {"load <filename>", "Load an assembled program from disk", (*Console).cmdLoad},
		"mem":  {"mem <memaddr> [i]", "Check the contents of a memory location", (*Console).cmdMem},
		"reg":  {"reg <regname> [i]", "Check the contents of a CPU register", (*Console).cmdReg},
		"help": {"help", "Show this command summary", (*Console).cmdHelp},
		"e":    {"e, q", "Exit", (*Console).cmdExit},
		"q":    {"e, q", "Exit", (*Console).cmdExit},
	}
}

// commandOrder is the help listing order.
var commandOrder = []string{"dump", "load", "mem", "reg", "help", "e"}

func (con *Console) printf(format string, args ...any) {
	translate.Printer().Fprintf(con.Output, format, args...)
}

// Intro writes the introduction and the command summary.
func (con *Console) Intro() {
	con.printf("Toy Machine\n")
	con.printf("This is a toy virtual machine, simulating a %d bit computer.\n\n", con.Emulator.Registers.Width)
	con.Help()
}

// Help writes the command summary.
func (con *Console) Help() {
	con.printf("Commands\n----------\n")
	con.printf("%-20s%v\n", f("<blank>"), f("Execute next instruction"))
	for _, name := range commandOrder {
		cmd := commands[name]
		con.printf("%-20s%v\n", cmd.Usage, f(cmd.Help))
	}
}

// Run the command loop until an exit command or the end of input.
// Command failures are reported to Output and the loop continues.
func (con *Console) Run() (err error) {
	scanner := bufio.NewScanner(con.Input)
	for {
		if con.Prompt {
			con.printf("> ")
		}

		if !scanner.Scan() {
			err = scanner.Err()
			return
		}

		var done bool
		done, err = con.Command(scanner.Text())
		if err != nil {
			con.printf("%v\n", err)
			err = nil
		}
		if done {
			return
		}
	}
}

// Command executes a single command line. A blank line steps the machine.
func (con *Console) Command(line string) (done bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		err = con.Emulator.Step()
		return
	}

	cmd, ok := commands[strings.ToLower(args[0])]
	if !ok {
		err = &ErrCommand{Line: line, Err: ErrCommandUnknown}
		return
	}

	done, err = cmd.Exec(con, args[1:])
	if errors.Is(err, ErrCommandUsage) {
		err = &ErrCommand{Line: line, Err: errors.Join(err, errors.New(f("usage: %v", cmd.Usage)))}
	}

	return
}

func (con *Console) cmdDump(args []string) (done bool, err error) {
	if len(args) != 0 {
		err = ErrCommandUsage
		return
	}

	con.printf("%v\n", con.Emulator.Dump())
	return
}

func (con *Console) cmdLoad(args []string) (done bool, err error) {
	if len(args) != 1 {
		err = ErrCommandUsage
		return
	}

	open := con.Open
	if open == nil {
		open = func(filename string) (io.ReadCloser, error) {
			return os.Open(filename)
		}
	}

	inf, err := open(args[0])
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err := cpu.ParseProgram(inf)
	if err != nil {
		return
	}

	err = con.Emulator.LoadProgram(prog)
	if err != nil {
		return
	}

	con.printf("Loaded %d words from %v\n", len(prog.Lines), args[0])
	return
}

// asInteger parses the optional representation argument.
func asInteger(args []string) (integer bool, err error) {
	switch len(args) {
	case 0:
	case 1:
		switch args[0] {
		case "i":
			integer = true
		case "b":
		default:
			err = ErrCommandUsage
		}
	default:
		err = ErrCommandUsage
	}

	return
}

func (con *Console) cmdMem(args []string) (done bool, err error) {
	if len(args) == 0 {
		err = ErrCommandUsage
		return
	}

	integer, err := asInteger(args[1:])
	if err != nil {
		return
	}

	address, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		err = errors.Join(ErrCommandUsage, err)
		return
	}

	location, err := con.Emulator.Memory.Address(address)
	if err != nil {
		return
	}

	value, err := con.Emulator.ReadMemory(location, integer)
	if err != nil {
		return
	}

	con.printf("%v: %v\n", strconv.Itoa(location), value)
	return
}

func (con *Console) cmdReg(args []string) (done bool, err error) {
	if len(args) == 0 {
		err = ErrCommandUsage
		return
	}

	integer, err := asInteger(args[1:])
	if err != nil {
		return
	}

	name := strings.ToUpper(args[0])
	value, err := con.Emulator.ReadRegister(name, integer)
	if err != nil {
		return
	}

	con.printf("%v: %v\n", name, value)
	return
}

func (con *Console) cmdHelp(args []string) (done bool, err error) {
	con.Help()
	return
}

func (con *Console) cmdExit(args []string) (done bool, err error) {
	done = true
	return
}
