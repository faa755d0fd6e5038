package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal(32, cfg.WordBits)
	assert.Equal(6, cfg.OpcodeBits)
	assert.Equal(3, cfg.RegisterBits)
	assert.Equal(10, cfg.AddressBits)
	assert.Equal(8, cfg.MemoryCells)
	assert.NoError(cfg.Validate())
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		modify func(cfg *Config)
		valid  bool
	}){
		{"wide", func(cfg *Config) { cfg.WordBits = 64 }, true},
		{"too_wide", func(cfg *Config) { cfg.WordBits = 65 }, false},
		{"opcode_min", func(cfg *Config) { cfg.OpcodeBits = 4 }, true},
		{"opcode_collides", func(cfg *Config) { cfg.OpcodeBits = 3 }, false},
		{"no_register", func(cfg *Config) { cfg.RegisterBits = 0 }, false},
		{"no_address", func(cfg *Config) { cfg.AddressBits = 0 }, false},
		{"no_memory", func(cfg *Config) { cfg.MemoryCells = 0 }, false},
		{"fields_fill_word", func(cfg *Config) { cfg.AddressBits = 26 }, false},
		{"fields_fit_word", func(cfg *Config) { cfg.AddressBits = 25 }, true},
		{"large_memory", func(cfg *Config) { cfg.MemoryCells = 1024 }, true},
	}

	for _, entry := range table {
		cfg := Default()
		entry.modify(&cfg)
		err := cfg.Validate()
		if entry.valid {
			assert.NoError(err, entry.name)
		} else {
			assert.True(errors.Is(err, ErrConfigInvalid), entry.name)
			var setting *ErrSetting
			assert.True(errors.As(err, &setting), entry.name)
		}
	}
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	src := `
_cells = DEFAULT_MEMORY_CELLS * 4
word_bits = 48
address_bits = DEFAULT_ADDRESS_BITS + 2
memory_cells = _cells
`
	cfg, err := Load("machine.star", src)
	assert.NoError(err)
	assert.Equal(48, cfg.WordBits)
	assert.Equal(6, cfg.OpcodeBits)
	assert.Equal(3, cfg.RegisterBits)
	assert.Equal(12, cfg.AddressBits)
	assert.Equal(32, cfg.MemoryCells)
}

func TestLoad_File(t *testing.T) {
	assert := assert.New(t)

	filename := filepath.Join(t.TempDir(), "machine.star")
	err := os.WriteFile(filename, []byte("memory_cells = 16\n"), 0o644)
	assert.NoError(err)

	cfg, err := Load(filename, nil)
	assert.NoError(err)
	assert.Equal(16, cfg.MemoryCells)
	assert.Equal(32, cfg.WordBits)

	_, err = Load(filepath.Join(t.TempDir(), "missing.star"), nil)
	assert.Error(err)
}

func TestLoad_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		src  string
		err  error
	}){
		{"unknown", "stack_bits = 4\n", ErrConfigUnknown},
		{"string", "word_bits = '32'\n", ErrConfigValue},
		{"negative", "memory_cells = -1\n", ErrConfigValue},
		{"huge", "memory_cells = 1 << 40\n", ErrConfigValue},
		{"invalid", "word_bits = 8\n", ErrConfigInvalid},
	}

	for _, entry := range table {
		_, err := Load(entry.name+".star", entry.src)
		assert.True(errors.Is(err, entry.err), "%v: %v", entry.name, err)
	}

	_, err := Load("syntax.star", "word_bits = = 3\n")
	assert.Error(err)
}

func TestUpdate(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.MemoryCells = 100

	assert.NoError(cfg.Update("opcode.star", "opcode_bits = 8\n"))
	assert.Equal(8, cfg.OpcodeBits)
	assert.Equal(100, cfg.MemoryCells)

	// A failing update leaves the configuration unchanged.
	err := cfg.Update("bad.star", "opcode_bits = 5\nword_bits = 9\n")
	assert.True(errors.Is(err, ErrConfigInvalid))
	assert.Equal(8, cfg.OpcodeBits)
	assert.Equal(32, cfg.WordBits)
}
