package frontend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestGame(t *testing.T, machine *mockMachine) (*Game, *time.Time) {
	t.Helper()
	logger := log.NewTestLogger(t)
	g := New(context.Background(), logger, machine)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestAdvance(t *testing.T) {
	machine := &mockMachine{}
	g, now := newTestGame(t, machine)

	assert.NoError(t, g.advance())
	assert.Empty(t, machine.cycles)

	*now = now.Add(16 * time.Millisecond)
	assert.NoError(t, g.advance())
	*now = now.Add(17 * time.Millisecond)
	assert.NoError(t, g.advance())

	assert.Equal(t, []time.Duration{16 * time.Millisecond, 17 * time.Millisecond}, machine.cycles)
}

func TestAdvanceReturnsMachineError(t *testing.T) {
	errHalted := errors.New("halted")
	machine := &mockMachine{err: errHalted}
	g, now := newTestGame(t, machine)

	assert.NoError(t, g.advance())
	*now = now.Add(time.Millisecond)
	assert.True(t, errors.Is(g.advance(), errHalted))
}

func TestUpdateStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	machine := &mockMachine{}
	g := New(ctx, log.NewTestLogger(t), machine)
	assert.True(t, errors.Is(g.Update(), ebiten.Termination))
	assert.Empty(t, machine.cycles)
}

func TestFillPixels(t *testing.T) {
	cells := []byte{0, 1, 1, 0}
	pixels := make([]byte, len(cells)*4)
	fillPixels(pixels, cells)

	assert.Equal(t, background[:], pixels[0:4])
	assert.Equal(t, foreground[:], pixels[4:8])
	assert.Equal(t, foreground[:], pixels[8:12])
	assert.Equal(t, background[:], pixels[12:16])
}

func TestLayout(t *testing.T) {
	g, _ := newTestGame(t, &mockMachine{})
	w, h := g.Layout(640, 320)
	assert.Equal(t, display.Width, w)
	assert.Equal(t, display.Height, h)
}

func TestKeyBindingsCoverKeypad(t *testing.T) {
	seen := map[ebiten.Key]bool{}
	for _, key := range keyBindings {
		assert.False(t, seen[key])
		seen[key] = true
	}
	assert.Equal(t, len(keypad.Codes), len(keyBindings))
}
