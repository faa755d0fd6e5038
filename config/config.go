// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config describes the field widths and memory size of a toy
// machine, and loads them from Starlark machine description files.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/toymachine/translate"
)

var f = translate.From

const (
	DEFAULT_WORD_BITS     = 32
	DEFAULT_OPCODE_BITS   = 6
	DEFAULT_REGISTER_BITS = 3
	DEFAULT_ADDRESS_BITS  = 10
	DEFAULT_MEMORY_CELLS  = 8

	// MAX_WORD_BITS is the widest word the machine can hold.
	MAX_WORD_BITS = 64

	// MIN_OPCODE_BITS is the narrowest opcode field whose continuation
	// opcode does not collide with the operation table.
	MIN_OPCODE_BITS = 4
)

var ErrConfigValue = errors.New(f("configuration value not an integer"))
var ErrConfigUnknown = errors.New(f("configuration setting unknown"))
var ErrConfigInvalid = errors.New(f("configuration invalid"))

// ErrSetting carries the setting name that failed.
type ErrSetting struct {
	Name string
	Err  error
}

func (err *ErrSetting) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrSetting) Unwrap() error {
	return err.Err
}

// Config is a machine description.
type Config struct {
	Verbose      bool // If set, log each setting loaded.
	WordBits     int  // Bits in a memory cell or register.
	OpcodeBits   int  // Bits in the leading opcode field.
	RegisterBits int  // Bits in a register operand sub-field.
	AddressBits  int  // Bits in a memory address operand sub-field.
	MemoryCells  int  // Number of memory cells.
}

// Default returns the canonical machine: 32 bit words, 6 bit opcodes,
// 3 bit register fields, 10 bit address fields, and 8 memory cells.
func Default() Config {
	return Config{
		WordBits:     DEFAULT_WORD_BITS,
		OpcodeBits:   DEFAULT_OPCODE_BITS,
		RegisterBits: DEFAULT_REGISTER_BITS,
		AddressBits:  DEFAULT_ADDRESS_BITS,
		MemoryCells:  DEFAULT_MEMORY_CELLS,
	}
}

// setting maps a Starlark global name to its configuration field.
func (cfg *Config) setting(name string) (field *int, ok bool) {
	switch name {
	case "word_bits":
		field = &cfg.WordBits
	case "opcode_bits":
		field = &cfg.OpcodeBits
	case "register_bits":
		field = &cfg.RegisterBits
	case "address_bits":
		field = &cfg.AddressBits
	case "memory_cells":
		field = &cfg.MemoryCells
	default:
		return
	}

	ok = true
	return
}

// Validate checks that the field widths describe a decodable machine.
func (cfg Config) Validate() (err error) {
	invalid := func(name string, format string, args ...any) error {
		return &ErrSetting{
			Name: name,
			Err:  fmt.Errorf("%w: %v", ErrConfigInvalid, f(format, args...)),
		}
	}

	var errs []error

	if cfg.WordBits < 1 || cfg.WordBits > MAX_WORD_BITS {
		errs = append(errs, invalid("word_bits", "must be from 1 to %d", MAX_WORD_BITS))
	}
	if cfg.OpcodeBits < MIN_OPCODE_BITS {
		errs = append(errs, invalid("opcode_bits", "must be at least %d", MIN_OPCODE_BITS))
	}
	if cfg.RegisterBits < 1 {
		errs = append(errs, invalid("register_bits", "must be at least 1"))
	}
	if cfg.AddressBits < 1 {
		errs = append(errs, invalid("address_bits", "must be at least 1"))
	}
	if cfg.MemoryCells < 1 {
		errs = append(errs, invalid("memory_cells", "must be at least 1"))
	}
	if cfg.OpcodeBits+max(cfg.RegisterBits, cfg.AddressBits) >= cfg.WordBits {
		errs = append(errs, invalid("word_bits", "must exceed opcode_bits plus the wider operand field"))
	}

	err = errors.Join(errs...)
	return
}

// Predeclared returns the Starlark names visible to a machine description.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"DEFAULT_WORD_BITS":     starlark.MakeInt(DEFAULT_WORD_BITS),
		"DEFAULT_OPCODE_BITS":   starlark.MakeInt(DEFAULT_OPCODE_BITS),
		"DEFAULT_REGISTER_BITS": starlark.MakeInt(DEFAULT_REGISTER_BITS),
		"DEFAULT_ADDRESS_BITS":  starlark.MakeInt(DEFAULT_ADDRESS_BITS),
		"DEFAULT_MEMORY_CELLS":  starlark.MakeInt(DEFAULT_MEMORY_CELLS),
		"MAX_WORD_BITS":         starlark.MakeInt(MAX_WORD_BITS),
	}
}

// Load evaluates a Starlark machine description over the defaults.
//
// The src argument is passed to the Starlark file loader; if nil, the
// file is read from filename. Globals whose names start with '_' are
// private helpers and are ignored.
func Load(filename string, src any) (cfg Config, err error) {
	cfg = Default()
	err = cfg.Update(filename, src)
	return
}

// Update evaluates a Starlark machine description over the current values.
func (cfg *Config) Update(filename string, src any) (err error) {
	thread := starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{}

	dict, err := starlark.ExecFileOptions(&opts, &thread, filename, src, Predeclared())
	if err != nil {
		return
	}

	loaded := *cfg
	for _, name := range dict.Keys() {
		if strings.HasPrefix(name, "_") {
			continue
		}

		field, ok := loaded.setting(name)
		if !ok {
			err = &ErrSetting{Name: name, Err: ErrConfigUnknown}
			return
		}

		st_int, ok := dict[name].(starlark.Int)
		if !ok {
			err = &ErrSetting{Name: name, Err: ErrConfigValue}
			return
		}

		st_int64, ok := st_int.Int64()
		if !ok || st_int64 < 0 || st_int64 > int64(^uint32(0)) {
			err = &ErrSetting{Name: name, Err: ErrConfigValue}
			return
		}

		if cfg.Verbose {
			log.Printf("config: %v = %d", name, st_int64)
		}

		*field = int(st_int64)
	}

	err = loaded.Validate()
	if err != nil {
		return
	}

	*cfg = loaded
	return
}
