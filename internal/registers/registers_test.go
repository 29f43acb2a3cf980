package registers

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/retrogolib/assert"
)

func TestReadWrite(t *testing.T) {
	var r Registers

	for reg := instruction.Register(0); reg < Count; reg++ {
		assert.NoError(t, r.Write(reg, uint8(reg)*3))
	}
	for reg := instruction.Register(0); reg < Count; reg++ {
		value, err := r.Read(reg)
		assert.NoError(t, err)
		assert.Equal(t, uint8(reg)*3, value)
	}
}

func TestInvalidRegister(t *testing.T) {
	var r Registers

	_, err := r.Read(Count)
	assert.True(t, errors.Is(err, ErrInvalidRegister))

	err = r.Write(0xFF, 1)
	assert.True(t, errors.Is(err, ErrInvalidRegister))
}

func TestTickTimers(t *testing.T) {
	r := Registers{DelayTimer: 2, SoundTimer: 1}

	r.TickTimers()
	assert.Equal(t, uint8(1), r.DelayTimer)
	assert.Equal(t, uint8(0), r.SoundTimer)

	r.TickTimers()
	r.TickTimers()
	assert.Equal(t, uint8(0), r.DelayTimer)
	assert.Equal(t, uint8(0), r.SoundTimer)
}
