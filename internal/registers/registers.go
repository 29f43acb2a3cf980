// Package registers implements the CHIP-8 register file.
package registers

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/instruction"
)

// Count is the number of general purpose registers.
const Count = 16

// ErrInvalidRegister is returned for a register index outside of 0x0-0xF.
var ErrInvalidRegister = errors.New("invalid register index")

// Registers holds the general purpose registers V0-VF, the address register I
// and the delay and sound timers.
type Registers struct {
	v [Count]uint8

	I          uint16
	DelayTimer uint8
	SoundTimer uint8
}

// Read returns the value of the given general purpose register.
func (r *Registers) Read(reg instruction.Register) (uint8, error) {
	if err := validate(reg); err != nil {
		return 0, err
	}
	return r.v[reg], nil
}

// Write sets the value of the given general purpose register.
func (r *Registers) Write(reg instruction.Register, value uint8) error {
	if err := validate(reg); err != nil {
		return err
	}
	r.v[reg] = value
	return nil
}

// TickTimers decrements both timers that are not already zero.
func (r *Registers) TickTimers() {
	if r.DelayTimer > 0 {
		r.DelayTimer--
	}
	if r.SoundTimer > 0 {
		r.SoundTimer--
	}
}

func validate(reg instruction.Register) error {
	if reg >= Count {
		return fmt.Errorf("%w: V%d", ErrInvalidRegister, reg)
	}
	return nil
}
