// Package terminal runs the game loop on a tcell screen
//
// The world is rasterized into a framebuffer with two pixel rows per terminal cell and flushed
// as upper half blocks, foreground carrying the top pixel and background the bottom one.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/nerteb-2d/clock"
	"github.com/lixenwraith/nerteb-2d/driver"
	"github.com/lixenwraith/nerteb-2d/render"
)

const (
	halfBlock   = '▀'
	eventBuffer = 100
)

// Options configures the terminal loop
type Options struct {
	Title      string
	WorldW     float64
	WorldH     float64
	TPS        int
	FrameRate  int
	MaxCatchUp int
	ShowStatus bool
	Time       clock.TimeProvider // nil selects the monotonic clock
}

// Driver owns the screen loop, the screen itself is initialized and finalized by the caller
type Driver struct {
	screen tcell.Screen
	opts   Options
	gate   *clock.TickGate
	pump   *driver.Pump
	frames *clock.FrameCounter
	fb     *render.Framebuffer
	log    *zap.Logger
}

// New prepares a driver on an initialized screen
func New(screen tcell.Screen, opts Options, log *zap.Logger) (*Driver, error) {
	if opts.FrameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %d", opts.FrameRate)
	}
	if opts.WorldW <= 0 || opts.WorldH <= 0 {
		return nil, fmt.Errorf("world size %gx%g", opts.WorldW, opts.WorldH)
	}
	gate, err := clock.NewTickGate(opts.TPS, opts.Time)
	if err != nil {
		return nil, err
	}
	gate.SetMaxCatchUp(opts.MaxCatchUp)
	if log == nil {
		log = zap.NewNop()
	}

	d := &Driver{
		screen: screen,
		opts:   opts,
		gate:   gate,
		frames: clock.NewFrameCounter(opts.Time),
		fb:     render.NewFramebuffer(0, 0, opts.WorldW, opts.WorldH),
		log:    log,
	}
	d.resize()
	return d, nil
}

// Run drives h until a quit key, context cancellation, or the first Update or Draw error
func (d *Driver) Run(ctx context.Context, h driver.Handler) error {
	d.screen.EnableMouse()
	d.screen.HideCursor()
	defer d.screen.DisableMouse()

	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(d.opts.FrameRate))
	defer ticker.Stop()

	d.pump = driver.NewPump(h, d.gate, d.log)
	d.gate.Reset()
	d.log.Info("terminal loop started",
		zap.Int("tps", d.opts.TPS),
		zap.Int("frame_rate", d.opts.FrameRate))

	for {
		select {
		case <-ctx.Done():
			d.log.Info("terminal loop cancelled")
			return nil

		case ev := <-events:
			if d.handleEvent(ev, h) {
				d.log.Info("quit requested")
				return nil
			}

		case <-ticker.C:
			if err := d.frame(); err != nil {
				return err
			}
		}
	}
}

// handleEvent dispatches one tcell event, returns true on quit
func (d *Driver) handleEvent(ev tcell.Event, h driver.Handler) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k := toKeyEvent(ev)
		if driver.IsQuit(k) {
			return true
		}
		// Terminals report presses only, a press stands in for the release
		h.KeyUp(k)

	case *tcell.EventMouse:
		x, y := ev.Position()
		h.MouseMotion(d.fb.ToWorld(float64(x)+0.5, float64(y*2)+1))

	case *tcell.EventResize:
		d.screen.Sync()
		d.resize()
		w, hh := d.fb.PixelSize()
		d.log.Debug("terminal resized", zap.Int("px_w", w), zap.Int("px_h", hh))
	}
	return false
}

// frame runs due ticks, draws, and presents
func (d *Driver) frame() error {
	if err := d.pump.Step(); err != nil {
		return err
	}
	if err := d.pump.Render(d.fb); err != nil {
		return err
	}

	d.flush()
	if d.opts.ShowStatus {
		d.drawStatus()
	}
	d.screen.Show()
	d.frames.Tick()
	return nil
}

func (d *Driver) rows() int {
	_, h := d.screen.Size()
	if d.opts.ShowStatus {
		h--
	}
	return max(h, 0)
}

func (d *Driver) resize() {
	w, _ := d.screen.Size()
	d.fb.Resize(w, d.rows()*2)
}

// flush copies the framebuffer into screen cells
func (d *Driver) flush() {
	w, _ := d.fb.PixelSize()
	rows := d.rows()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < w; cx++ {
			top := d.fb.At(cx, cy*2)
			bottom := d.fb.At(cx, cy*2+1)
			d.screen.SetContent(cx, cy, halfBlock, nil, CellStyle(top, bottom))
		}
	}
}

func (d *Driver) drawStatus() {
	w, h := d.screen.Size()
	if h <= 0 {
		return
	}
	line := fmt.Sprintf(" %s | fps %.0f | tps %d | ticks %d | q/esc quit",
		d.opts.Title, d.frames.FPS(), d.opts.TPS, d.gate.Total())
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(line)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		d.screen.SetContent(x, h-1, r, nil, style)
	}
}

// CellStyle maps a pixel pair onto half block colors
func CellStyle(top, bottom color.NRGBA) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
		Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
}

// toKeyEvent normalizes a tcell key
func toKeyEvent(ev *tcell.EventKey) driver.KeyEvent {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return driver.KeyEvent{Name: driver.KeySpace, Rune: r, Ctrl: ctrl}
		}
		return driver.KeyEvent{Name: strings.ToUpper(string(r)), Rune: r, Ctrl: ctrl}
	case tcell.KeyEscape:
		return driver.KeyEvent{Name: driver.KeyEscape}
	case tcell.KeyEnter:
		return driver.KeyEvent{Name: driver.KeyEnter, Rune: '\n'}
	case tcell.KeyCtrlC:
		return driver.KeyEvent{Name: "C", Ctrl: true}
	default:
		return driver.KeyEvent{Name: ev.Name(), Ctrl: ctrl}
	}
}
