// Package detector handles system architecture detection.
package detector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for programs of a system other than CHIP-8.
var ErrUnsupportedSystem = errors.New("unsupported system")

// Detector handles system architecture detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture from options or file auto-detection.
// It first checks if a system is explicitly specified in options, otherwise
// attempts to detect the system from the input filename extension.
// Only CHIP-8 programs can be run, any other detected system returns an error.
func (d *Detector) Detect(opts options.Program) (arch.System, error) {
	system, _ := arch.SystemFromString(opts.System)
	if system == "" {
		if opts.System != "" {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedSystem, opts.System)
		}
		system = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected system",
			log.Stringer("system", system),
			log.String("file", opts.Input))
	}

	if system != arch.CHIP8System {
		return system, fmt.Errorf("%w: %s", ErrUnsupportedSystem, system)
	}
	return system, nil
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8, .rom and files without a known extension are raw CHIP-8 images
		return arch.CHIP8System
	}
}
