package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeProgram(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Failed to create program file: %v", err)
	}
	return path
}

func TestProcessFileScan(t *testing.T) {
	input := writeProgram(t, "test.ch8", []byte{
		0x00, 0xE0, // clear screen
		0x12, 0x00, // jump to start
	})
	output := filepath.Join(t.TempDir(), "listing.txt")

	opts := options.Program{
		Parameters: options.Parameters{Input: input, Output: output},
		Flags:      options.Flags{ClockSpeed: vm.DefaultClockSpeed, Scan: true, Quiet: true},
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, options.NewListing())
	assert.NoError(t, err)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	listing := string(data)
	assert.True(t, strings.HasPrefix(listing, "Start:\n"))
	assert.Contains(t, listing, "; ClearScreen $00E0")
	assert.Contains(t, listing, "; Jump(0x200) $1200")
}

func TestProcessFileErrors(t *testing.T) {
	logger := log.NewTestLogger(t)

	t.Run("unsupported system", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: writeProgram(t, "test.nes", []byte{0x00, 0xE0})},
			Flags:      options.Flags{ClockSpeed: vm.DefaultClockSpeed, Scan: true},
		}
		err := ProcessFile(context.Background(), logger, opts, options.NewListing())
		assert.True(t, errors.Is(err, detector.ErrUnsupportedSystem))
	})

	t.Run("missing file", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/test.ch8"},
			Flags:      options.Flags{ClockSpeed: vm.DefaultClockSpeed, Scan: true},
		}
		err := ProcessFile(context.Background(), logger, opts, options.NewListing())
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("invalid clock speed", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: writeProgram(t, "test.ch8", []byte{0x00, 0xE0})},
			Flags:      options.Flags{ClockSpeed: 0, Scan: true},
		}
		err := ProcessFile(context.Background(), logger, opts, options.NewListing())
		assert.True(t, errors.Is(err, vm.ErrInvalidClockSpeed))
	})
}

var errClose = errors.New("close failed")

type failingCloser struct {
	closed bool
}

func (c *failingCloser) Close() error {
	c.closed = true
	return errClose
}

func TestCloseOutput(t *testing.T) {
	t.Run("close error is returned", func(t *testing.T) {
		closer := &failingCloser{}
		err := closeOutput(closer, "listing.txt", nil)
		assert.True(t, closer.closed)
		assert.True(t, errors.Is(err, errClose))
		assert.ErrorContains(t, err, "listing.txt")
	})

	t.Run("earlier error is kept", func(t *testing.T) {
		errWrite := errors.New("write failed")
		closer := &failingCloser{}
		err := closeOutput(closer, "listing.txt", errWrite)
		assert.True(t, closer.closed)
		assert.True(t, errors.Is(err, errWrite))
		assert.False(t, errors.Is(err, errClose))
	})

	t.Run("successful close", func(t *testing.T) {
		file, err := os.Create(filepath.Join(t.TempDir(), "listing.txt"))
		assert.NoError(t, err)
		assert.NoError(t, closeOutput(file, file.Name(), nil))
	})
}

func TestProcessFileScanOutputError(t *testing.T) {
	opts := options.Program{
		Parameters: options.Parameters{
			Input:  writeProgram(t, "test.ch8", []byte{0x00, 0xE0}),
			Output: filepath.Join(t.TempDir(), "missing", "listing.txt"),
		},
		Flags: options.Flags{ClockSpeed: vm.DefaultClockSpeed, Scan: true},
	}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, options.NewListing())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
