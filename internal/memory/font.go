package memory

// FontSpriteSize is the number of bytes of a single hex digit sprite.
const FontSpriteSize = 5

// font contains the built in 4x5 pixel sprites of the hex digits 0-F,
// stored at address 0x000.
var font = [16 * FontSpriteSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// reserved is the read only interpreter area below ProgramStart: the font
// table followed by zero bytes.
var reserved = func() [ProgramStart]byte {
	var b [ProgramStart]byte
	copy(b[:], font[:])
	return b
}()

// FontAddress returns the address of the sprite for the given hex digit.
func FontAddress(digit uint8) uint16 {
	return uint16(digit) * FontSpriteSize
}
