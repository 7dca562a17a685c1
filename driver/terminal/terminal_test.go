package terminal

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/nerteb-2d/driver"
	"github.com/lixenwraith/nerteb-2d/render"
	"github.com/lixenwraith/nerteb-2d/vmath"
)

var backdrop = color.NRGBA{R: 10, G: 20, B: 30, A: 255}

type fakeHandler struct {
	mu      sync.Mutex
	updates int
	ticks   int
	draws   int
	keys    []driver.KeyEvent
	mouse   []vmath.Xy
	drawErr error
}

func (f *fakeHandler) Update(ticks int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	f.ticks += ticks
	return nil
}

func (f *fakeHandler) Draw(c render.Canvas) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draws++
	c.Clear(backdrop)
	return f.drawErr
}

func (f *fakeHandler) KeyUp(k driver.KeyEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, k)
}

func (f *fakeHandler) MouseMotion(p vmath.Xy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mouse = append(f.mouse, p)
}

func (f *fakeHandler) snapshot() fakeHandler {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeHandler{
		updates: f.updates,
		ticks:   f.ticks,
		draws:   f.draws,
		keys:    append([]driver.KeyEvent(nil), f.keys...),
		mouse:   append([]vmath.Xy(nil), f.mouse...),
	}
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)
	return screen
}

func testOptions() Options {
	return Options{
		Title:      "test",
		WorldW:     800,
		WorldH:     600,
		TPS:        60,
		FrameRate:  120,
		MaxCatchUp: 5,
		ShowStatus: true,
	}
}

func runAsync(t *testing.T, d *Driver, h driver.Handler) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(context.Background(), h) }()
	return errCh
}

func waitResult(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop")
		return nil
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	screen := newScreen(t)

	opts := testOptions()
	opts.FrameRate = 0
	_, err := New(screen, opts, nil)
	assert.Error(t, err)

	opts = testOptions()
	opts.TPS = 0
	_, err = New(screen, opts, nil)
	assert.Error(t, err)

	opts = testOptions()
	opts.WorldW = 0
	_, err = New(screen, opts, nil)
	assert.Error(t, err)
}

func TestRunDrawsFramesAndQuitsOnEscape(t *testing.T) {
	screen := newScreen(t)
	d, err := New(screen, testOptions(), nil)
	require.NoError(t, err)

	h := &fakeHandler{}
	errCh := runAsync(t, d, h)

	require.Eventually(t, func() bool { return h.snapshot().draws >= 3 }, 3*time.Second, 5*time.Millisecond)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	require.NoError(t, waitResult(t, errCh))

	snap := h.snapshot()
	assert.Equal(t, snap.draws, snap.updates, "update and draw alternate once per frame")
	assert.Empty(t, snap.keys, "quit keys are not forwarded")

	// Game area shows the cleared framebuffer, last row is the status line
	_, _, style, _ := screen.GetContent(0, 0)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(10, 20, 30), fg)
	assert.Equal(t, tcell.NewRGBColor(10, 20, 30), bg)

	r, _, _, _ := screen.GetContent(1, 24)
	assert.Equal(t, 't', r)
}

func TestRunForwardsKeysAndMouse(t *testing.T) {
	screen := newScreen(t)
	d, err := New(screen, testOptions(), nil)
	require.NoError(t, err)

	h := &fakeHandler{}
	errCh := runAsync(t, d, h)

	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	screen.InjectMouse(40, 12, tcell.ButtonNone, tcell.ModNone)
	require.Eventually(t, func() bool {
		s := h.snapshot()
		return len(s.keys) == 1 && len(s.mouse) == 1
	}, 3*time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.NoError(t, waitResult(t, errCh))

	snap := h.snapshot()
	assert.Equal(t, driver.KeyEvent{Name: "W", Rune: 'w'}, snap.keys[0])

	// 80x24 game rows -> 80x48 pixels showing 800x600
	assert.InDelta(t, 405, snap.mouse[0].X, 1e-9)
	assert.InDelta(t, 312.5, snap.mouse[0].Y, 1e-9)
}

func TestRunStopsOnDrawError(t *testing.T) {
	screen := newScreen(t)
	d, err := New(screen, testOptions(), nil)
	require.NoError(t, err)

	boom := errors.New("mesh failed")
	h := &fakeHandler{drawErr: boom}

	err = waitResult(t, runAsync(t, d, h))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, h.snapshot().draws)
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newScreen(t)
	d, err := New(screen, testOptions(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- d.Run(ctx, &fakeHandler{}) }()

	cancel()
	assert.NoError(t, waitResult(t, errCh))
}

func TestToKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want driver.KeyEvent
	}{
		{"Letter", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), driver.KeyEvent{Name: "W", Rune: 'w'}},
		{"Space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), driver.KeyEvent{Name: driver.KeySpace, Rune: ' '}},
		{"Escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), driver.KeyEvent{Name: driver.KeyEscape}},
		{"Ctrl+C", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), driver.KeyEvent{Name: "C", Ctrl: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toKeyEvent(tt.ev))
		})
	}
}

func TestCellStyle(t *testing.T) {
	style := CellStyle(color.NRGBA{R: 1, G: 2, B: 3, A: 255}, color.NRGBA{R: 4, G: 5, B: 6, A: 255})
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(1, 2, 3), fg)
	assert.Equal(t, tcell.NewRGBColor(4, 5, 6), bg)
}
