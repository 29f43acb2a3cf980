// Package terminal runs the virtual machine inside a text terminal.
//
// The terminal is switched to raw mode, the display is rendered with half
// block characters so that two display rows share one text row. Terminals
// do not report key releases, a key is released after it was not repeated
// for keyHoldTime.
package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	frameInterval = time.Second / 60
	keyHoldTime   = 100 * time.Millisecond

	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// ErrNotTerminal is returned when the standard input is not a terminal.
var ErrNotTerminal = errors.New("standard input is not a terminal")

// Machine is the part of the virtual machine that the terminal drives.
type Machine interface {
	Cycle(elapsed time.Duration) error
	UpdateKey(code uint8, pressed bool) error
	CopyDisplay(dst []byte) int
}

// Run renders the machine into the terminal and feeds it keyboard input until
// Escape or Ctrl+C is pressed, the context is canceled or the machine halts.
func Run(ctx context.Context, logger *log.Logger, machine Machine) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil &&
		(width < display.Width || height < display.Height/2) {
		logger.Warn("Terminal is smaller than the display",
			log.Int("columns", width),
			log.Int("rows", height))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	_, _ = io.WriteString(os.Stdout, "\x1b[2J\x1b[?25l")
	defer func() { _, _ = io.WriteString(os.Stdout, "\x1b[?25h\r\n") }()

	s := newSession(logger, machine, readInput(os.Stdin), os.Stdout)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			done, err := s.step(now)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// readInput forwards the chunks read from the reader to the returned channel.
// A key that sends an escape sequence arrives as one chunk. The channel is
// closed when reading fails.
func readInput(reader io.Reader) <-chan []byte {
	input := make(chan []byte, 16)
	go func() {
		defer close(input)
		buf := make([]byte, 64)
		for {
			n, err := reader.Read(buf)
			if n > 0 {
				input <- bytes.Clone(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	return input
}

type session struct {
	logger  *log.Logger
	machine Machine
	input   <-chan []byte
	output  io.Writer

	releaseAt  [vm.KeyCount]time.Time
	lastUpdate time.Time

	cells    []byte
	previous []byte
	rendered bool
	frame    bytes.Buffer
}

func newSession(logger *log.Logger, machine Machine, input <-chan []byte, output io.Writer) *session {
	return &session{
		logger:   logger,
		machine:  machine,
		input:    input,
		output:   output,
		cells:    make([]byte, display.Size),
		previous: make([]byte, display.Size),
	}
}

// step handles pending input, advances the machine and renders the display
// if it changed. It returns true when the session should end.
func (s *session) step(now time.Time) (bool, error) {
	done, err := s.handleInput(now)
	if done || err != nil {
		return done, err
	}
	if err := s.releaseKeys(now); err != nil {
		return false, err
	}

	if !s.lastUpdate.IsZero() {
		if err := s.machine.Cycle(now.Sub(s.lastUpdate)); err != nil {
			return false, err
		}
	}
	s.lastUpdate = now

	s.machine.CopyDisplay(s.cells)
	if s.rendered && bytes.Equal(s.cells, s.previous) {
		return false, nil
	}
	copy(s.previous, s.cells)
	s.rendered = true

	s.frame.Reset()
	Render(&s.frame, s.cells)
	if _, err := s.output.Write(s.frame.Bytes()); err != nil {
		return false, fmt.Errorf("writing frame: %w", err)
	}
	return false, nil
}

// handleInput presses the keys of all pending input. A lone Escape or
// Ctrl+C ends the session, escape sequences of other keys are ignored.
func (s *session) handleInput(now time.Time) (bool, error) {
	for {
		select {
		case chunk, ok := <-s.input:
			if !ok || bytes.Equal(chunk, []byte{keyEscape}) || bytes.IndexByte(chunk, keyCtrlC) >= 0 {
				s.logger.Debug("Terminal session ended")
				return true, nil
			}
			if err := s.pressKeys(now, chunk); err != nil {
				return false, err
			}

		default:
			return false, nil
		}
	}
}

// pressKeys presses the keypad keys of a chunk of input, stopping at the
// start of an escape sequence.
func (s *session) pressKeys(now time.Time, chunk []byte) error {
	for _, b := range chunk {
		if b == keyEscape {
			return nil
		}

		code, ok := keypad.Lookup(rune(b))
		if !ok {
			continue
		}
		if s.releaseAt[code].IsZero() {
			if err := s.machine.UpdateKey(code, true); err != nil {
				return fmt.Errorf("pressing key: %w", err)
			}
		}
		s.releaseAt[code] = now.Add(keyHoldTime)
	}
	return nil
}

// releaseKeys releases all keys whose hold time expired.
func (s *session) releaseKeys(now time.Time) error {
	for code, at := range s.releaseAt {
		if at.IsZero() || now.Before(at) {
			continue
		}
		s.releaseAt[code] = time.Time{}
		if err := s.machine.UpdateKey(uint8(code), false); err != nil {
			return fmt.Errorf("releasing key: %w", err)
		}
	}
	return nil
}

// Render writes the display cells as half block characters, starting at the
// top left corner of the terminal.
func Render(buf *bytes.Buffer, cells []byte) {
	buf.WriteString("\x1b[H")
	for y := 0; y < display.Height; y += 2 {
		for x := range display.Width {
			top := cells[y*display.Width+x] != 0
			bottom := cells[(y+1)*display.Width+x] != 0

			switch {
			case top && bottom:
				buf.WriteRune('█')
			case top:
				buf.WriteRune('▀')
			case bottom:
				buf.WriteRune('▄')
			default:
				buf.WriteByte(' ')
			}
		}
		buf.WriteString("\r\n")
	}
}
