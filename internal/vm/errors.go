package vm

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/instruction"
)

var (
	// ErrUnknownOpcode is returned when executing an opcode that matches no instruction.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrProgramExhausted is returned when fetching past the end of the program region.
	ErrProgramExhausted = errors.New("program exhausted")
	// ErrInvalidKey is returned for key codes outside of 0x0-0xF.
	ErrInvalidKey = errors.New("invalid key code")
	// ErrInvalidClockSpeed is returned for clock speeds that do not result in a cycle period.
	ErrInvalidClockSpeed = errors.New("invalid clock speed")
)

// ExecutionError describes a fatal error that occurred while executing the
// instruction at Address. The virtual machine halts after it.
type ExecutionError struct {
	Address     uint16
	Opcode      uint16
	Instruction instruction.Instruction
	Err         error
}

func (e *ExecutionError) Error() string {
	if errors.Is(e.Err, ErrProgramExhausted) {
		return fmt.Sprintf("0x%04X: %s", e.Address, e.Err)
	}
	return fmt.Sprintf("0x%04X: %04X %s: %s", e.Address, e.Opcode, e.Instruction, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
