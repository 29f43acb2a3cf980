// Package instruction contains the decoded CHIP-8 instruction type and the opcode decoder.
package instruction

import "fmt"

// Register is a general purpose register index in the range 0x0-0xF.
type Register uint8

// Data is an 8-bit literal operand.
type Data uint8

// Address is a 12-bit address operand.
type Address uint16

// FlagRegister is the register that receives carry, borrow and collision results.
const FlagRegister Register = 0xF

// Op identifies the instruction variant.
type Op uint8

// Instruction variants. NoOp covers the legacy 0nnn native routine call,
// Unknown every opcode that matches no pattern.
const (
	Unknown Op = iota
	NoOp
	ClearScreen
	Return
	Jump
	Call
	SkipIfEqualData
	SkipIfNotEqualData
	SkipIfEqualRegister
	LoadData
	AddData
	LoadRegister
	Or
	And
	Xor
	Add
	Sub
	ShiftRight
	NegatedSub
	ShiftLeft
	SkipIfNotEqualRegister
	SetAddressRegister
	JumpFromOffset
	Random
	Draw
	SkipIfPressed
	SkipIfNotPressed
	SetRegisterFromDelay
	AwaitKeyPress
	SetDelayFromRegister
	SetSoundFromRegister
	AddAddressRegister
	LoadSprite
	StoreBCD
	StoreRegisters
	ReadRegisters

	opCount
)

var opNames = [opCount]string{
	Unknown:                "Unknown",
	NoOp:                   "NoOp",
	ClearScreen:            "ClearScreen",
	Return:                 "Return",
	Jump:                   "Jump",
	Call:                   "Call",
	SkipIfEqualData:        "SkipIfEqualData",
	SkipIfNotEqualData:     "SkipIfNotEqualData",
	SkipIfEqualRegister:    "SkipIfEqualRegister",
	LoadData:               "LoadData",
	AddData:                "AddData",
	LoadRegister:           "LoadRegister",
	Or:                     "Or",
	And:                    "And",
	Xor:                    "Xor",
	Add:                    "Add",
	Sub:                    "Sub",
	ShiftRight:             "ShiftRight",
	NegatedSub:             "NegatedSub",
	ShiftLeft:              "ShiftLeft",
	SkipIfNotEqualRegister: "SkipIfNotEqualRegister",
	SetAddressRegister:     "SetAddressRegister",
	JumpFromOffset:         "JumpFromOffset",
	Random:                 "Random",
	Draw:                   "Draw",
	SkipIfPressed:          "SkipIfPressed",
	SkipIfNotPressed:       "SkipIfNotPressed",
	SetRegisterFromDelay:   "SetRegisterFromDelay",
	AwaitKeyPress:          "AwaitKeyPress",
	SetDelayFromRegister:   "SetDelayFromRegister",
	SetSoundFromRegister:   "SetSoundFromRegister",
	AddAddressRegister:     "AddAddressRegister",
	LoadSprite:             "LoadSprite",
	StoreBCD:               "StoreBCD",
	StoreRegisters:         "StoreRegisters",
	ReadRegisters:          "ReadRegisters",
}

// String returns the variant name.
func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opNames[o]
}

// operand layout of a variant, used for formatting.
type operands uint8

const (
	noOperands operands = iota
	rawOperand
	addressOperand
	registerOperand
	registerDataOperands
	registerRegisterOperands
	drawOperands
)

var opOperands = [opCount]operands{
	Unknown:                rawOperand,
	NoOp:                   rawOperand,
	Jump:                   addressOperand,
	Call:                   addressOperand,
	SkipIfEqualData:        registerDataOperands,
	SkipIfNotEqualData:     registerDataOperands,
	SkipIfEqualRegister:    registerRegisterOperands,
	LoadData:               registerDataOperands,
	AddData:                registerDataOperands,
	LoadRegister:           registerRegisterOperands,
	Or:                     registerRegisterOperands,
	And:                    registerRegisterOperands,
	Xor:                    registerRegisterOperands,
	Add:                    registerRegisterOperands,
	Sub:                    registerRegisterOperands,
	ShiftRight:             registerOperand,
	NegatedSub:             registerRegisterOperands,
	ShiftLeft:              registerOperand,
	SkipIfNotEqualRegister: registerRegisterOperands,
	SetAddressRegister:     addressOperand,
	JumpFromOffset:         addressOperand,
	Random:                 registerDataOperands,
	Draw:                   drawOperands,
	SkipIfPressed:          registerOperand,
	SkipIfNotPressed:       registerOperand,
	SetRegisterFromDelay:   registerOperand,
	AwaitKeyPress:          registerOperand,
	SetDelayFromRegister:   registerOperand,
	SetSoundFromRegister:   registerOperand,
	AddAddressRegister:     registerOperand,
	LoadSprite:             registerOperand,
	StoreBCD:               registerOperand,
	StoreRegisters:         registerOperand,
	ReadRegisters:          registerOperand,
}

// Instruction is a decoded opcode. Only the operand fields used by Op are set,
// all others are zero. Raw holds the opcode for NoOp and Unknown.
type Instruction struct {
	Op      Op
	X       Register // high register, bits 8-11
	Y       Register // low register, bits 4-7
	Data    Data     // literal, bits 0-7 or the row count of Draw
	Address Address  // bits 0-11
	Raw     uint16
}

// String returns the instruction in a Name(operands) notation.
func (i Instruction) String() string {
	if i.Op >= opCount {
		return i.Op.String()
	}

	switch opOperands[i.Op] {
	case rawOperand:
		return fmt.Sprintf("%s(0x%04X)", i.Op, i.Raw)
	case addressOperand:
		return fmt.Sprintf("%s(0x%03X)", i.Op, uint16(i.Address))
	case registerOperand:
		return fmt.Sprintf("%s(V%X)", i.Op, uint8(i.X))
	case registerDataOperands:
		return fmt.Sprintf("%s(V%X, 0x%02X)", i.Op, uint8(i.X), uint8(i.Data))
	case registerRegisterOperands:
		return fmt.Sprintf("%s(V%X, V%X)", i.Op, uint8(i.X), uint8(i.Y))
	case drawOperands:
		return fmt.Sprintf("%s(V%X, V%X, %d)", i.Op, uint8(i.X), uint8(i.Y), uint8(i.Data))
	default:
		return i.Op.String()
	}
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.Op == Call
}

// IsJump returns true if the instruction is an unconditional jump to a fixed address.
func (i Instruction) IsJump() bool {
	return i.Op == Jump
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.Op == Return
}

// IsDataReference returns true if the instruction loads an address that points to data.
func (i Instruction) IsDataReference() bool {
	return i.Op == SetAddressRegister
}
