package vm

import (
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/memory"
)

// ScanEntry is a decoded opcode of the program image.
type ScanEntry struct {
	Address     uint16
	Opcode      uint16
	Instruction instruction.Instruction
}

// Scan decodes the loaded program image from the program start address
// without executing it. It works on a copy of the memory and does not change
// the machine state. Scanning stops after the number of opcodes in the
// program image or at the end of the program region.
func (v *VM) Scan() []ScanEntry {
	m := v.memory.Clone()
	// the program start address is always valid
	_ = m.SetProgramCounter(memory.ProgramStart)

	entries := make([]ScanEntry, 0, m.ProgramLength())
	for range m.ProgramLength() {
		address := m.ProgramCounter()
		opcode, ok := m.FetchOpcode()
		if !ok {
			break
		}

		entries = append(entries, ScanEntry{
			Address:     address,
			Opcode:      opcode,
			Instruction: instruction.Decode(opcode),
		})
	}
	return entries
}
