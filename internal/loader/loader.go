// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/options"
)

// ErrEmptyProgram is returned for a program file without content.
var ErrEmptyProgram = errors.New("program file is empty")

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program image named by the options. The image is a raw
// headerless binary that is copied to the program start address.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a program image from the reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyProgram
	}
	return data, nil
}
