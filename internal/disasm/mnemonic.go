package disasm

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the assembler mnemonic of an opcode and whether the
// opcode is part of the official instruction set.
func Mnemonic(opcode uint16) (string, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name, true
		}
	}
	return "", false
}

// IsSkip returns whether the mnemonic is a conditional skip instruction.
func IsSkip(mnemonic string) bool {
	return chip8.SkipInstructions.Contains(mnemonic)
}

// Code returns the assembler code of a decoded instruction. Opcodes that are
// not part of the instruction set are output as data words.
func Code(opcode uint16, ins instruction.Instruction) string {
	name, ok := Mnemonic(opcode)
	if !ok || ins.Op == instruction.Unknown || ins.Op == instruction.NoOp {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	if params := operands(ins); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// operands formats the operands of an instruction in assembler notation.
func operands(ins instruction.Instruction) string {
	x, y := uint8(ins.X), uint8(ins.Y)

	switch ins.Op {
	case instruction.Jump, instruction.Call:
		return fmt.Sprintf("$%03X", uint16(ins.Address))
	case instruction.JumpFromOffset:
		return fmt.Sprintf("V0, $%03X", uint16(ins.Address))
	case instruction.SetAddressRegister:
		return fmt.Sprintf("I, $%03X", uint16(ins.Address))

	case instruction.SkipIfEqualData, instruction.SkipIfNotEqualData, instruction.LoadData,
		instruction.AddData, instruction.Random:
		return fmt.Sprintf("V%X, $%02X", x, uint8(ins.Data))

	case instruction.SkipIfEqualRegister, instruction.SkipIfNotEqualRegister, instruction.LoadRegister,
		instruction.Or, instruction.And, instruction.Xor, instruction.Add, instruction.Sub,
		instruction.NegatedSub:
		return fmt.Sprintf("V%X, V%X", x, y)

	case instruction.ShiftRight, instruction.ShiftLeft, instruction.SkipIfPressed,
		instruction.SkipIfNotPressed:
		return fmt.Sprintf("V%X", x)

	case instruction.Draw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, uint8(ins.Data))

	case instruction.SetRegisterFromDelay:
		return fmt.Sprintf("V%X, DT", x)
	case instruction.AwaitKeyPress:
		return fmt.Sprintf("V%X, K", x)
	case instruction.SetDelayFromRegister:
		return fmt.Sprintf("DT, V%X", x)
	case instruction.SetSoundFromRegister:
		return fmt.Sprintf("ST, V%X", x)
	case instruction.AddAddressRegister:
		return fmt.Sprintf("I, V%X", x)
	case instruction.LoadSprite:
		return fmt.Sprintf("F, V%X", x)
	case instruction.StoreBCD:
		return fmt.Sprintf("B, V%X", x)
	case instruction.StoreRegisters:
		return fmt.Sprintf("[I], V%X", x)
	case instruction.ReadRegisters:
		return fmt.Sprintf("V%X, [I]", x)

	default: // ClearScreen, Return
		return ""
	}
}
