// Package display implements the monochrome 64x32 CHIP-8 display buffer.
package display

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
	Size   = Width * Height
)

// Display is a row major buffer of Size cells, each holding 0 or 1.
type Display struct {
	buffer [Size]byte
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.buffer = [Size]byte{}
}

// Draw XORs the sprite onto the buffer with its top left corner at x, y.
// Each sprite byte is one row of 8 pixels, the most significant bit being the
// leftmost pixel. Coordinates wrap around both axes. It returns whether any
// pixel was turned off.
func (d *Display) Draw(x, y uint8, sprite []byte) bool {
	var erased bool

	for row, b := range sprite {
		py := (int(y) + row) % Height

		for col := range 8 {
			px := (int(x) + col) % Width
			index := py*Width + px

			bit := (b >> (7 - col)) & 1
			old := d.buffer[index]
			d.buffer[index] = old ^ bit

			if old == 1 && bit == 1 {
				erased = true
			}
		}
	}

	return erased
}

// Pixel returns the cell value at the given coordinates.
func (d *Display) Pixel(x, y int) byte {
	return d.buffer[(y%Height)*Width+x%Width]
}

// Buffer returns a copy of the display cells.
func (d *Display) Buffer() []byte {
	buf := make([]byte, Size)
	copy(buf, d.buffer[:])
	return buf
}

// CopyTo copies the display cells into dst and returns the number of copied cells.
func (d *Display) CopyTo(dst []byte) int {
	return copy(dst, d.buffer[:])
}
