// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
)

// ErrInvalidScale is returned for a window scale below 1.
var ErrInvalidScale = errors.New("invalid window scale")

// ParseFlags parses command line flags and returns program and listing options
func ParseFlags() (options.Program, options.Listing, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, options.Listing, error) {
	flags := flag.NewFlagSet(name, flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	listing := options.NewListing()
	readListingOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, listing, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, listing, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, listing, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	listing.HexComments = !opts.NoHexComments
	listing.OffsetComments = !opts.NoOffsets

	return opts, listing, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the message of the error, if any, and the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: chip8vm [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && len(arg) > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks option values that the virtual machine can not run with
func validateOptions(opts options.Program) error {
	if _, err := vm.CyclePeriod(opts.ClockSpeed); err != nil {
		return err
	}
	if opts.Scale < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidScale, opts.Scale)
	}
	if opts.Scan && opts.Terminal {
		return errors.New("options -scan and -term can not be combined")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file of the scan listing, printed on console if no name given")
	flags.StringVar(&opts.System, "s", "", "system of the program (chip8) - if not auto-detected from file extension")
	flags.Float64Var(&opts.ClockSpeed, "c", vm.DefaultClockSpeed, "CPU clock speed in Hz")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixel size of a display cell")
	flags.BoolVar(&opts.Scan, "scan", false, "print a listing of all program opcodes instead of running it")
	flags.BoolVar(&opts.Terminal, "term", false, "render the display into the terminal instead of a window")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging, traces every executed instruction")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readListingOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcodes as hex values in comments of the scan listing")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in the scan listing")
}
