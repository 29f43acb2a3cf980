// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input program file"`
	Output string `flag:"o" usage:"output file of the scan listing (default: stdout)"`
}

// Flags contains behavior options.
type Flags struct {
	System     string  `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	ClockSpeed float64 `flag:"c" usage:"CPU clock speed in Hz" default:"700"`
	Scale      int     `flag:"scale" usage:"window pixel size of a display cell" default:"10"`
	Scan       bool    `flag:"scan" usage:"print the program listing instead of running it"`
	Terminal   bool    `flag:"term" usage:"render into the terminal instead of a window"`
	Debug      bool    `flag:"debug" usage:"enable debug logging, traces every executed instruction"`
	Quiet      bool    `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains scan listing formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcodes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in the listing"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Listing defines options to control the scan listing output.
type Listing struct {
	HexComments    bool // output the opcode as hex value
	OffsetComments bool // output the address of each opcode
}

// NewListing returns a new listing options instance with default options.
func NewListing() Listing {
	return Listing{
		HexComments:    true,
		OffsetComments: true,
	}
}
