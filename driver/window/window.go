// Package window runs the game loop in a desktop window through ebiten
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/lixenwraith/nerteb-2d/clock"
	"github.com/lixenwraith/nerteb-2d/driver"
	"github.com/lixenwraith/nerteb-2d/vmath"
)

const titleRefresh = time.Second

// Options configures the window loop
type Options struct {
	Title      string
	Width      int
	Height     int
	TPS        int
	MaxCatchUp int
	Time       clock.TimeProvider // nil selects the monotonic clock
}

// Game adapts a driver.Handler to ebiten.Game
// ebiten calls Update once per frame, the tick gate decides how many steps that frame runs
type Game struct {
	opts   Options
	h      driver.Handler
	gate   *clock.TickGate
	pump   *driver.Pump
	frames *clock.FrameCounter
	canvas *Canvas
	cursor *driver.CursorTracker
	log    *zap.Logger

	keys      []ebiten.Key
	lastTitle time.Time
}

// NewGame wraps h
func NewGame(h driver.Handler, opts Options, log *zap.Logger) (*Game, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("window size %dx%d", opts.Width, opts.Height)
	}
	gate, err := clock.NewTickGate(opts.TPS, opts.Time)
	if err != nil {
		return nil, err
	}
	gate.SetMaxCatchUp(opts.MaxCatchUp)
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		opts:   opts,
		h:      h,
		gate:   gate,
		pump:   driver.NewPump(h, gate, log),
		frames: clock.NewFrameCounter(opts.Time),
		canvas: NewCanvas(opts.Width, opts.Height),
		cursor: driver.NewCursorTracker(float64(opts.Width), float64(opts.Height)),
		log:    log,
	}, nil
}

// Run opens the window and blocks until it closes, a quit key, or the first error
func Run(h driver.Handler, opts Options, log *zap.Logger) error {
	g, err := NewGame(h, opts, log)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	// One Update per rendered frame, simulation rate comes from the gate
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g.gate.Reset()
	g.log.Info("window loop started", zap.Int("tps", opts.TPS), zap.Int("width", opts.Width), zap.Int("height", opts.Height))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	g.log.Info("window closed")
	return nil
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	// Draw cannot return an error, a latched one surfaces here and stops the loop
	if err := g.pump.Err(); err != nil {
		return err
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, key := range g.keys {
		k := driver.KeyFromName(key.String(), ctrl)
		if driver.IsQuit(k) {
			g.log.Info("quit requested")
			return ebiten.Termination
		}
		g.h.KeyUp(k)
	}

	x, y := ebiten.CursorPosition()
	if p, ok := g.cursor.Sample(vmath.New(float64(x), float64(y))); ok {
		g.h.MouseMotion(p)
	}

	return g.pump.Step()
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.bind(screen)
	if err := g.pump.Render(g.canvas); err != nil {
		return
	}

	g.frames.Tick()
	if now := time.Now(); now.Sub(g.lastTitle) >= titleRefresh {
		g.lastTitle = now
		ebiten.SetWindowTitle(fmt.Sprintf("%s - %.0f FPS", g.opts.Title, g.frames.FPS()))
	}
}

// Layout implements ebiten.Game, the logical screen is fixed to the world size
func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}
