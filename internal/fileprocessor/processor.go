// Package fileprocessor handles program loading and the execution modes.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/terminal"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

const name = "chip8vm"

// ProcessFile loads the program file and either writes its scan listing or
// runs it in a window or the terminal.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, listing options.Listing) error {
	system, err := detector.New(logger).Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	program, err := loader.New().Load(opts)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	machine, err := vm.New(logger, program, opts.ClockSpeed)
	if err != nil {
		return fmt.Errorf("creating virtual machine: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Processing program",
			log.String("file", opts.Input),
			log.Stringer("system", system),
			log.Int("opcodes", machine.ProgramLength()))
	}

	switch {
	case opts.Scan:
		return writeListing(logger, opts, listing, machine)

	case opts.Terminal:
		if err := terminal.Run(ctx, logger, machine); err != nil {
			return fmt.Errorf("running program in terminal: %w", err)
		}

	default:
		title := fmt.Sprintf("%s - %s", name, filepath.Base(opts.Input))
		if err := frontend.Run(ctx, logger, machine, opts.Scale, title); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
	}
	return nil
}

// writeListing writes the scan listing of the program to the output.
// A failure to close the output file is returned, it can lose the listing.
func writeListing(logger *log.Logger, opts options.Program, listing options.Listing, machine *vm.VM) (err error) {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	if closer, ok := writer.(io.Closer); ok && opts.Output != "" {
		defer func() { err = closeOutput(closer, opts.Output, err) }()
	}

	dis := disasm.New(logger, listing)
	if err := dis.Process(writer, machine.Scan()); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// closeOutput closes the output file and returns the close error, unless an
// earlier error is passed in.
func closeOutput(closer io.Closer, name string, err error) error {
	if closeErr := closer.Close(); closeErr != nil && err == nil {
		return fmt.Errorf("closing output file %s: %w", name, closeErr)
	}
	return err
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}
