package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/toymachine/bitword"
	"github.com/ezrec/toymachine/config"
	"github.com/ezrec/toymachine/cpu"
)

// newTestEmulator returns a canonical emulator with a program loaded.
func newTestEmulator(t *testing.T, words ...bitword.Word) (emu *Emulator) {
	emu, err := NewEmulator(config.Default())
	if err != nil {
		t.Fatal(err)
	}

	var text strings.Builder
	for _, word := range words {
		text.WriteString(word.String() + "\n")
	}

	prog, err := cpu.ParseProgram(strings.NewReader(text.String()))
	if err != nil {
		t.Fatal(err)
	}

	err = emu.LoadProgram(prog)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestNewEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(config.Default())
	assert.NoError(err)
	assert.Equal(8, emu.Memory.Len())
	assert.Equal(0, emu.Ticks())
	assert.Equal(uint64(0), emu.Pc())

	cfg := config.Default()
	cfg.OpcodeBits = 2
	_, err = NewEmulator(cfg)
	assert.True(errors.Is(err, config.ErrConfigInvalid))
}

func TestEmulator_Step(t *testing.T) {
	assert := assert.New(t)

	lay := cpu.Layout{WordBits: 32, OpcodeBits: 6, RegisterBits: 3, AddressBits: 10}
	emu := newTestEmulator(t,
		lay.Encode(cpu.OP_MOVE_REG_CONST, uint64(cpu.REG_AC), 5),
		lay.Encode(cpu.OP_ADD_REG_CONST, uint64(cpu.REG_AC), 3),
	)

	assert.NoError(emu.Step())
	assert.NoError(emu.Step())
	assert.Equal(2, emu.Ticks())
	assert.Equal(uint64(2), emu.Pc())

	value, err := emu.ReadRegister("AC", true)
	assert.NoError(err)
	assert.Equal(bitword.Integer(8), value)
	assert.Equal("8", value.String())

	value, err = emu.ReadRegister("AC", false)
	assert.NoError(err)
	assert.Equal("1000", value.String())

	// Memory cell 2 is "0", not a complete instruction.
	err = emu.Step()
	assert.True(errors.Is(err, cpu.ErrMalformedInstruction))

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(uint64(2), runtime.Pc)
	assert.Equal(0, runtime.LineNo)
	assert.Equal(2, emu.Ticks())
}

func TestEmulator_StepLineNo(t *testing.T) {
	assert := assert.New(t)

	lay := cpu.Layout{WordBits: 32, OpcodeBits: 6, RegisterBits: 3, AddressBits: 10}
	emu := newTestEmulator(t,
		lay.Encode(cpu.OP_MOVE_REG_CONST, uint64(cpu.REG_AC), 1),
		lay.Encode(cpu.OP_MOVE_REG_MEM, uint64(cpu.REG_AC), 9),
	)

	assert.NoError(emu.Step())
	err := emu.Step()
	assert.True(errors.Is(err, cpu.ErrAddressNotFound))

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(uint64(1), runtime.Pc)
	assert.Equal(2, runtime.LineNo)
	assert.Contains(err.Error(), "line 2")
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	lay := cpu.Layout{WordBits: 32, OpcodeBits: 6, RegisterBits: 3, AddressBits: 10}
	emu := newTestEmulator(t,
		lay.Encode(cpu.OP_ADD_REG_CONST, uint64(cpu.REG_CR), 1),
		lay.Encode(cpu.OP_ADD_REG_CONST, uint64(cpu.REG_CR), 1),
		lay.Encode(cpu.OP_ADD_REG_CONST, uint64(cpu.REG_CR), 1),
	)

	steps, err := emu.Run(2)
	assert.NoError(err)
	assert.Equal(2, steps)

	steps, err = emu.Run(0)
	assert.True(errors.Is(err, cpu.ErrMalformedInstruction))
	assert.Equal(1, steps)

	value, err := emu.ReadRegister("CR", true)
	assert.NoError(err)
	assert.Equal(uint64(3), value.Uint64())
}

func TestEmulator_ReadMemory(t *testing.T) {
	assert := assert.New(t)

	lay := cpu.Layout{WordBits: 32, OpcodeBits: 6, RegisterBits: 3, AddressBits: 10}
	emu := newTestEmulator(t,
		lay.Encode(cpu.OP_MOVE_MEM_CONST, 5, 42),
	)
	assert.NoError(emu.Step())

	value, err := emu.ReadMemory(5, true)
	assert.NoError(err)
	assert.Equal("42", value.String())

	value, err = emu.ReadMemory(5, false)
	assert.NoError(err)
	assert.Equal("0000000000101010", value.String())

	_, err = emu.ReadMemory(8, true)
	assert.True(errors.Is(err, cpu.ErrAddressNotFound))

	_, err = emu.ReadMemory(-1, false)
	assert.True(errors.Is(err, cpu.ErrAddressNotFound))

	_, err = emu.ReadRegister("XR", false)
	assert.True(errors.Is(err, cpu.ErrRegisterNotFound))
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	lay := cpu.Layout{WordBits: 32, OpcodeBits: 6, RegisterBits: 3, AddressBits: 10}
	emu := newTestEmulator(t,
		lay.Encode(cpu.OP_MOVE_REG_CONST, uint64(cpu.REG_AC), 42),
	)
	assert.NoError(emu.Step())

	emu.Reset()
	assert.Equal(0, emu.Ticks())
	assert.Equal(0, len(emu.Program.Lines))

	dump := emu.Dump()
	assert.True(strings.HasPrefix(dump, "Register Dump\nAC: 0\n"))
	assert.Contains(dump, "\n\nMemory Dump\n0: 0\n")
	assert.True(strings.HasSuffix(dump, "\n7: 0"))
}

func TestErrRuntime(t *testing.T) {
	assert := assert.New(t)

	err := &ErrRuntime{Pc: 1234, LineNo: 1500, Err: cpu.ErrAddress(8194)}
	assert.Equal("pc 1234 line 1500 memory address 8194 does not exist", err.Error())
	assert.True(errors.Is(err, cpu.ErrAddressNotFound))

	err = &ErrRuntime{Pc: 2048, Err: cpu.ErrOpcodeUnknown}
	assert.Equal("pc 2048 opcode unknown", err.Error())
}
