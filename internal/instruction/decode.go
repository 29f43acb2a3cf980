package instruction

// Decode maps a big endian 16-bit opcode to its instruction. Every opcode
// decodes to some variant, opcodes matching no pattern decode to Unknown.
func Decode(opcode uint16) Instruction {
	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode & 0x00FF {
		case 0xE0:
			return Instruction{Op: ClearScreen}
		case 0xEE:
			return Instruction{Op: Return}
		default:
			// 0nnn calls a native COSMAC VIP routine, ignored
			return Instruction{Op: NoOp, Raw: opcode}
		}

	case 0x1000:
		return Instruction{Op: Jump, Address: address(opcode)}
	case 0x2000:
		return Instruction{Op: Call, Address: address(opcode)}
	case 0x3000:
		return Instruction{Op: SkipIfEqualData, X: highRegister(opcode), Data: data(opcode)}
	case 0x4000:
		return Instruction{Op: SkipIfNotEqualData, X: highRegister(opcode), Data: data(opcode)}

	case 0x5000:
		if opcode&0x000F != 0 {
			return unknown(opcode)
		}
		return Instruction{Op: SkipIfEqualRegister, X: highRegister(opcode), Y: lowRegister(opcode)}

	case 0x6000:
		return Instruction{Op: LoadData, X: highRegister(opcode), Data: data(opcode)}
	case 0x7000:
		return Instruction{Op: AddData, X: highRegister(opcode), Data: data(opcode)}
	case 0x8000:
		return decodeArithmetic(opcode)

	case 0x9000:
		if opcode&0x000F != 0 {
			return unknown(opcode)
		}
		return Instruction{Op: SkipIfNotEqualRegister, X: highRegister(opcode), Y: lowRegister(opcode)}

	case 0xA000:
		return Instruction{Op: SetAddressRegister, Address: address(opcode)}
	case 0xB000:
		return Instruction{Op: JumpFromOffset, Address: address(opcode)}
	case 0xC000:
		return Instruction{Op: Random, X: highRegister(opcode), Data: data(opcode)}
	case 0xD000:
		return Instruction{
			Op:   Draw,
			X:    highRegister(opcode),
			Y:    lowRegister(opcode),
			Data: Data(opcode & 0x000F),
		}

	case 0xE000:
		switch opcode & 0x00FF {
		case 0x9E:
			return Instruction{Op: SkipIfPressed, X: highRegister(opcode)}
		case 0xA1:
			return Instruction{Op: SkipIfNotPressed, X: highRegister(opcode)}
		default:
			return unknown(opcode)
		}

	default: // 0xF000
		return decodeMisc(opcode)
	}
}

// decodeArithmetic decodes the 8xyn register to register group.
func decodeArithmetic(opcode uint16) Instruction {
	x, y := highRegister(opcode), lowRegister(opcode)

	switch opcode & 0x000F {
	case 0x0:
		return Instruction{Op: LoadRegister, X: x, Y: y}
	case 0x1:
		return Instruction{Op: Or, X: x, Y: y}
	case 0x2:
		return Instruction{Op: And, X: x, Y: y}
	case 0x3:
		return Instruction{Op: Xor, X: x, Y: y}
	case 0x4:
		return Instruction{Op: Add, X: x, Y: y}
	case 0x5:
		return Instruction{Op: Sub, X: x, Y: y}
	case 0x6:
		return Instruction{Op: ShiftRight, X: x}
	case 0x7:
		return Instruction{Op: NegatedSub, X: x, Y: y}
	case 0xE:
		return Instruction{Op: ShiftLeft, X: x}
	default:
		return unknown(opcode)
	}
}

// decodeMisc decodes the Fxnn timer, key and memory group.
func decodeMisc(opcode uint16) Instruction {
	x := highRegister(opcode)

	switch opcode & 0x00FF {
	case 0x07:
		return Instruction{Op: SetRegisterFromDelay, X: x}
	case 0x0A:
		return Instruction{Op: AwaitKeyPress, X: x}
	case 0x15:
		return Instruction{Op: SetDelayFromRegister, X: x}
	case 0x18:
		return Instruction{Op: SetSoundFromRegister, X: x}
	case 0x1E:
		return Instruction{Op: AddAddressRegister, X: x}
	case 0x29:
		return Instruction{Op: LoadSprite, X: x}
	case 0x33:
		return Instruction{Op: StoreBCD, X: x}
	case 0x55:
		return Instruction{Op: StoreRegisters, X: x}
	case 0x65:
		return Instruction{Op: ReadRegisters, X: x}
	default:
		return unknown(opcode)
	}
}

func unknown(opcode uint16) Instruction {
	return Instruction{Op: Unknown, Raw: opcode}
}

func address(opcode uint16) Address {
	return Address(opcode & 0x0FFF)
}

func highRegister(opcode uint16) Register {
	return Register((opcode & 0x0F00) >> 8)
}

func lowRegister(opcode uint16) Register {
	return Register((opcode & 0x00F0) >> 4)
}

func data(opcode uint16) Data {
	return Data(opcode & 0x00FF)
}
