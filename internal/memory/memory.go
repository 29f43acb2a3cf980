// Package memory implements the CHIP-8 main memory and program counter.
//
// Programs are loaded at address 0x200. The program region is stored shifted
// by that offset, all addresses passed in and returned are the untransformed
// 12-bit CHIP-8 addresses. Addresses below 0x200 are served from the read
// only interpreter area that holds the font sprites.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout.
//
//	0x000-0x04F: font sprites
//	0x050-0x1FF: reserved interpreter area
//	0x200-0xFFF: program region
const (
	// Size is the size of the addressable memory.
	Size = 0x1000
	// ProgramStart is the address programs are loaded to and start executing at.
	ProgramStart = 0x200
	// ProgramSize is the maximum size of a program image.
	ProgramSize = Size - ProgramStart
	// OpcodeSize is the size of an opcode in bytes.
	OpcodeSize = 2
)

// ErrBoundsViolation is returned for any access outside of the valid address range.
var ErrBoundsViolation = errors.New("memory bounds violation")

// Memory is the main memory of the virtual machine.
type Memory struct {
	program        [ProgramSize]byte
	programCounter int // offset into program
	programLength  int // loaded program size in opcodes
}

// New returns a memory with the program image loaded at ProgramStart.
// Images larger than ProgramSize are truncated.
func New(program []byte) *Memory {
	m := &Memory{}
	n := copy(m.program[:], program)
	m.programLength = n / OpcodeSize
	return m
}

// ProgramLength returns the number of opcodes of the loaded program image.
func (m *Memory) ProgramLength() int {
	return m.programLength
}

// FetchOpcode reads the big endian opcode at the program counter and advances
// it. It returns false if the program region is exhausted.
func (m *Memory) FetchOpcode() (uint16, bool) {
	if m.programCounter < 0 || m.programCounter+OpcodeSize > len(m.program) {
		return 0, false
	}
	opcode := uint16(m.program[m.programCounter])<<8 | uint16(m.program[m.programCounter+1])
	m.programCounter += OpcodeSize
	return opcode, true
}

// SetProgramCounter sets the address of the next opcode to fetch.
func (m *Memory) SetProgramCounter(address uint16) error {
	if address < ProgramStart || address >= Size {
		return fmt.Errorf("%w: program counter set to 0x%04X", ErrBoundsViolation, address)
	}
	m.programCounter = int(address - ProgramStart)
	return nil
}

// ProgramCounter returns the address of the next opcode to fetch.
func (m *Memory) ProgramCounter() uint16 {
	return uint16(m.programCounter + ProgramStart)
}

// SkipInstruction advances the program counter past the next opcode.
func (m *Memory) SkipInstruction() {
	m.programCounter += OpcodeSize
}

// Load returns the byte at the given address.
func (m *Memory) Load(address uint16) (uint8, error) {
	if address >= Size {
		return 0, fmt.Errorf("%w: read at 0x%04X", ErrBoundsViolation, address)
	}
	if address < ProgramStart {
		return reserved[address], nil
	}
	return m.program[address-ProgramStart], nil
}

// Write stores a byte at the given address. The interpreter area below
// ProgramStart is read only.
func (m *Memory) Write(address uint16, value uint8) error {
	if address < ProgramStart || address >= Size {
		return fmt.Errorf("%w: write at 0x%04X", ErrBoundsViolation, address)
	}
	m.program[address-ProgramStart] = value
	return nil
}

// Slice returns the bytes in the address range [start, end). The range has
// to lie completely within either the interpreter area or the program region.
// The returned slice must not be modified.
func (m *Memory) Slice(start, end uint16) ([]byte, error) {
	switch {
	case start > end, end > Size:
		return nil, fmt.Errorf("%w: range 0x%04X-0x%04X", ErrBoundsViolation, start, end)

	case end <= ProgramStart:
		return reserved[start:end], nil

	case start >= ProgramStart:
		return m.program[start-ProgramStart : end-ProgramStart], nil

	default:
		return nil, fmt.Errorf("%w: range 0x%04X-0x%04X spans the program start",
			ErrBoundsViolation, start, end)
	}
}
