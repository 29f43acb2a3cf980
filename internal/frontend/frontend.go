// Package frontend runs the virtual machine in a desktop window.
package frontend

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// Machine is the part of the virtual machine that the frontend drives.
type Machine interface {
	Cycle(elapsed time.Duration) error
	UpdateKey(code uint8, pressed bool) error
	CopyDisplay(dst []byte) int
}

// Colors of lit and unlit display cells as RGBA.
var (
	foreground = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
	background = [4]byte{0x00, 0x00, 0x00, 0xFF}
)

// keyBindings maps the window keys to keypad codes, in keypad layout order.
var keyBindings = [16]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR,
	ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF,
	ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV,
}

// Game implements the ebiten game loop for a virtual machine.
type Game struct {
	ctx     context.Context
	logger  *log.Logger
	machine Machine

	cells  []byte
	pixels []byte
	image  *ebiten.Image

	lastUpdate time.Time
	now        func() time.Time
}

// New returns a game that drives the machine.
func New(ctx context.Context, logger *log.Logger, machine Machine) *Game {
	return &Game{
		ctx:     ctx,
		logger:  logger,
		machine: machine,
		cells:   make([]byte, display.Size),
		pixels:  make([]byte, display.Size*4),
		now:     time.Now,
	}
}

// Run opens a window with cells of scale pixels and runs the game loop until
// the window is closed, Escape is pressed, the context is canceled or the
// machine halts.
func Run(ctx context.Context, logger *log.Logger, machine Machine, scale int, title string) error {
	ebiten.SetWindowSize(display.Width*scale, display.Height*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Debug("Opening window",
		log.Int("width", display.Width*scale),
		log.Int("height", display.Height*scale))

	game := New(ctx, logger, machine)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update forwards key changes and advances the machine by the time passed
// since the last update.
func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.logger.Debug("Closing window")
		return ebiten.Termination
	}

	for i, key := range keyBindings {
		code := keypad.Codes[i]
		switch {
		case inpututil.IsKeyJustPressed(key):
			if err := g.machine.UpdateKey(code, true); err != nil {
				return fmt.Errorf("pressing key: %w", err)
			}
		case inpututil.IsKeyJustReleased(key):
			if err := g.machine.UpdateKey(code, false); err != nil {
				return fmt.Errorf("releasing key: %w", err)
			}
		}
	}

	return g.advance()
}

// advance runs the machine for the wall clock time since the previous call.
// The first call only starts the clock.
func (g *Game) advance() error {
	now := g.now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
		return nil
	}
	elapsed := now.Sub(g.lastUpdate)
	g.lastUpdate = now

	return g.machine.Cycle(elapsed)
}

// Draw renders the display cells.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(display.Width, display.Height)
	}

	g.machine.CopyDisplay(g.cells)
	fillPixels(g.pixels, g.cells)
	g.image.WritePixels(g.pixels)
	screen.DrawImage(g.image, nil)
}

// Layout uses the display resolution as logical screen size, ebiten scales
// it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return display.Width, display.Height
}

// fillPixels converts display cells to RGBA pixels.
func fillPixels(dst, cells []byte) {
	for i, cell := range cells {
		color := background
		if cell != 0 {
			color = foreground
		}
		copy(dst[i*4:i*4+4], color[:])
	}
}
