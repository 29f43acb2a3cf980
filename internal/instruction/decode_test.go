package instruction

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected Instruction
	}{
		{"clear screen", 0x00E0, Instruction{Op: ClearScreen}},
		{"return", 0x00EE, Instruction{Op: Return}},
		{"native routine", 0x0123, Instruction{Op: NoOp, Raw: 0x0123}},
		{"native routine with clear high byte", 0x01E0, Instruction{Op: ClearScreen}},
		{"jump", 0x1234, Instruction{Op: Jump, Address: 0x234}},
		{"call", 0x2ABC, Instruction{Op: Call, Address: 0xABC}},
		{"skip if equal data", 0x3A42, Instruction{Op: SkipIfEqualData, X: 0xA, Data: 0x42}},
		{"skip if not equal data", 0x4B17, Instruction{Op: SkipIfNotEqualData, X: 0xB, Data: 0x17}},
		{"skip if equal register", 0x5120, Instruction{Op: SkipIfEqualRegister, X: 1, Y: 2}},
		{"skip if equal register bad suffix", 0x5121, Instruction{Op: Unknown, Raw: 0x5121}},
		{"load data", 0x6C99, Instruction{Op: LoadData, X: 0xC, Data: 0x99}},
		{"add data", 0x7D01, Instruction{Op: AddData, X: 0xD, Data: 0x01}},
		{"load register", 0x8120, Instruction{Op: LoadRegister, X: 1, Y: 2}},
		{"or", 0x8341, Instruction{Op: Or, X: 3, Y: 4}},
		{"and", 0x8562, Instruction{Op: And, X: 5, Y: 6}},
		{"xor", 0x8783, Instruction{Op: Xor, X: 7, Y: 8}},
		{"add", 0x89A4, Instruction{Op: Add, X: 9, Y: 0xA}},
		{"sub", 0x8BC5, Instruction{Op: Sub, X: 0xB, Y: 0xC}},
		{"shift right", 0x8D06, Instruction{Op: ShiftRight, X: 0xD}},
		{"negated sub", 0x8EF7, Instruction{Op: NegatedSub, X: 0xE, Y: 0xF}},
		{"shift left", 0x800E, Instruction{Op: ShiftLeft, X: 0}},
		{"arithmetic unknown", 0x8008, Instruction{Op: Unknown, Raw: 0x8008}},
		{"skip if not equal register", 0x9AB0, Instruction{Op: SkipIfNotEqualRegister, X: 0xA, Y: 0xB}},
		{"skip if not equal register bad suffix", 0x9AB1, Instruction{Op: Unknown, Raw: 0x9AB1}},
		{"set address register", 0xA2F0, Instruction{Op: SetAddressRegister, Address: 0x2F0}},
		{"jump from offset", 0xB300, Instruction{Op: JumpFromOffset, Address: 0x300}},
		{"random", 0xC50F, Instruction{Op: Random, X: 5, Data: 0x0F}},
		{"draw", 0xD125, Instruction{Op: Draw, X: 1, Y: 2, Data: 5}},
		{"skip if pressed", 0xE39E, Instruction{Op: SkipIfPressed, X: 3}},
		{"skip if not pressed", 0xE4A1, Instruction{Op: SkipIfNotPressed, X: 4}},
		{"key group unknown", 0xE400, Instruction{Op: Unknown, Raw: 0xE400}},
		{"set register from delay", 0xF107, Instruction{Op: SetRegisterFromDelay, X: 1}},
		{"await key press", 0xF20A, Instruction{Op: AwaitKeyPress, X: 2}},
		{"set delay from register", 0xF315, Instruction{Op: SetDelayFromRegister, X: 3}},
		{"set sound from register", 0xF418, Instruction{Op: SetSoundFromRegister, X: 4}},
		{"add address register", 0xF51E, Instruction{Op: AddAddressRegister, X: 5}},
		{"load sprite", 0xF629, Instruction{Op: LoadSprite, X: 6}},
		{"store bcd", 0xF733, Instruction{Op: StoreBCD, X: 7}},
		{"store registers", 0xF855, Instruction{Op: StoreRegisters, X: 8}},
		{"read registers", 0xF965, Instruction{Op: ReadRegisters, X: 9}},
		{"misc group unknown", 0xFFFF, Instruction{Op: Unknown, Raw: 0xFFFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.opcode))
		})
	}
}

func TestDecodeTotal(t *testing.T) {
	for opcode := 0; opcode <= 0xFFFF; opcode++ {
		first := Decode(uint16(opcode))
		second := Decode(uint16(opcode))
		assert.Equal(t, first, second)
		assert.True(t, first.Op < opCount)

		if first.Op == Unknown || first.Op == NoOp {
			assert.Equal(t, uint16(opcode), first.Raw)
		}
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		ins      Instruction
		expected string
	}{
		{Instruction{Op: ClearScreen}, "ClearScreen"},
		{Instruction{Op: Jump, Address: 0x234}, "Jump(0x234)"},
		{Instruction{Op: LoadData, X: 0xA, Data: 0x05}, "LoadData(VA, 0x05)"},
		{Instruction{Op: Add, X: 0, Y: 1}, "Add(V0, V1)"},
		{Instruction{Op: ShiftLeft, X: 0xF}, "ShiftLeft(VF)"},
		{Instruction{Op: Draw, X: 1, Y: 2, Data: 15}, "Draw(V1, V2, 15)"},
		{Instruction{Op: Unknown, Raw: 0x5001}, "Unknown(0x5001)"},
		{Instruction{Op: NoOp, Raw: 0x0123}, "NoOp(0x0123)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ins.String())
		})
	}
}

func TestInstructionPredicates(t *testing.T) {
	assert.True(t, Decode(0x2300).IsCall())
	assert.False(t, Decode(0x1300).IsCall())
	assert.True(t, Decode(0x1300).IsJump())
	assert.False(t, Decode(0xB300).IsJump())
	assert.True(t, Decode(0x00EE).IsReturn())
	assert.True(t, Decode(0xA300).IsDataReference())
	assert.False(t, Decode(0xB300).IsDataReference())
}
