// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator exposes the toy machine to its program loader and
// command loop: stepping, program loading, state dumps, and point reads.
package emulator

import (
	"log"

	"github.com/ezrec/toymachine/bitword"
	"github.com/ezrec/toymachine/config"
	"github.com/ezrec/toymachine/cpu"
)

// Emulator state. CPU + currently loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.
}

// NewEmulator creates a new emulator for a machine configuration.
func NewEmulator(cfg config.Config) (emu *Emulator, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	layout := cpu.Layout{
		WordBits:     cfg.WordBits,
		OpcodeBits:   cfg.OpcodeBits,
		RegisterBits: cfg.RegisterBits,
		AddressBits:  cfg.AddressBits,
	}

	emu = &Emulator{
		Cpu:     cpu.NewCpu(layout, cfg.MemoryCells),
		Program: &cpu.Program{},
	}

	return
}

// Reset the registers and memory, and forget the loaded program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Program = &cpu.Program{}
}

// Ticks returns the total completed instructions since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LoadProgram stores the program from address 0, and restarts execution
// from address 0.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	if emu.Verbose {
		log.Printf("emulator: load %d words", len(prog.Lines))
	}

	emu.Program = prog

	return emu.Cpu.LoadProgram(prog.Words())
}

// Step performs a single fetch, decode, and execute cycle.
func (emu *Emulator) Step() (err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: emu.Program.LineNo(pc), Err: err}
		}
	}()

	err = emu.Cpu.Tick()

	return
}

// Run steps until an error, or until limit steps have completed.
// A limit of zero or less runs until an error.
func (emu *Emulator) Run(limit int) (steps int, err error) {
	for limit <= 0 || steps < limit {
		err = emu.Step()
		if err != nil {
			return
		}
		steps++
	}

	return
}

// Dump returns the register dump followed by the memory dump.
func (emu *Emulator) Dump() string {
	return emu.Cpu.String()
}

// ReadMemory reads a memory cell, as an integer or as raw bits.
func (emu *Emulator) ReadMemory(address int, asInteger bool) (value bitword.Value, err error) {
	word, err := emu.Cpu.Memory.Load(address)
	if err != nil {
		return
	}

	value = asValue(word, asInteger)
	return
}

// ReadRegister reads a register by name, as an integer or as raw bits.
func (emu *Emulator) ReadRegister(name string, asInteger bool) (value bitword.Value, err error) {
	reg, err := cpu.ParseRegister(name)
	if err != nil {
		return
	}

	word, err := emu.Cpu.Registers.Load(reg)
	if err != nil {
		return
	}

	value = asValue(word, asInteger)
	return
}

// asValue converts a word to the requested representation.
func asValue(word bitword.Word, asInteger bool) bitword.Value {
	if asInteger {
		return bitword.Integer(word.Uint64())
	}
	return bitword.Bits(word)
}
