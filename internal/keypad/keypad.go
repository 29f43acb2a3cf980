// Package keypad maps a QWERTY keyboard to the 16 key hex keypad.
//
// The left block of a QWERTY keyboard mirrors the keypad layout:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keypad

import "unicode"

// Keys lists the keyboard characters in keypad layout order, row major.
var Keys = [16]rune{
	'1', '2', '3', '4',
	'q', 'w', 'e', 'r',
	'a', 's', 'd', 'f',
	'z', 'x', 'c', 'v',
}

// Codes lists the keypad codes in layout order, matching Keys.
var Codes = [16]uint8{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

var runeCodes = buildRuneCodes()

func buildRuneCodes() map[rune]uint8 {
	m := make(map[rune]uint8, len(Keys))
	for i, r := range Keys {
		m[r] = Codes[i]
	}
	return m
}

// Lookup returns the keypad code of a keyboard character. Letters are
// matched case insensitive.
func Lookup(r rune) (uint8, bool) {
	code, ok := runeCodes[unicode.ToLower(r)]
	return code, ok
}
