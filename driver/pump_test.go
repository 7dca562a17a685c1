package driver

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/nerteb-2d/clock"
	"github.com/lixenwraith/nerteb-2d/render"
	"github.com/lixenwraith/nerteb-2d/vmath"
)

type countingHandler struct {
	updates   int
	ticks     int
	draws     int
	updateErr error
	drawErr   error
}

func (c *countingHandler) Update(ticks int) error {
	c.updates++
	c.ticks += ticks
	return c.updateErr
}

func (c *countingHandler) Draw(canvas render.Canvas) error {
	c.draws++
	canvas.Clear(color.NRGBA{})
	return c.drawErr
}

func (c *countingHandler) KeyUp(KeyEvent)       {}
func (c *countingHandler) MouseMotion(vmath.Xy) {}

func newPump(t *testing.T, h Handler) (*Pump, *clock.MockTimeProvider, *clock.TickGate) {
	t.Helper()
	mock := clock.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	gate, err := clock.NewTickGate(60, mock)
	require.NoError(t, err)
	return NewPump(h, gate, nil), mock, gate
}

func TestPumpStepRunsDueTicks(t *testing.T) {
	h := &countingHandler{}
	p, mock, gate := newPump(t, h)

	mock.Advance(3 * gate.Interval())
	require.NoError(t, p.Step())
	assert.Equal(t, 3, h.ticks)

	// Idle frame still calls Update with zero ticks
	require.NoError(t, p.Step())
	assert.Equal(t, 2, h.updates)
	assert.Equal(t, 3, h.ticks)
}

func TestPumpRunsBacklogAcrossFrames(t *testing.T) {
	h := &countingHandler{}
	p, mock, gate := newPump(t, h)

	mock.Advance(12 * gate.Interval())
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Step())
	}
	assert.Equal(t, 12, h.ticks)
}

func TestPumpLatchesDrawError(t *testing.T) {
	boom := errors.New("mesh failed")
	h := &countingHandler{drawErr: boom}
	p, mock, gate := newPump(t, h)
	fb := render.NewFramebuffer(4, 4, 4, 4)

	require.NoError(t, p.Step())
	err := p.Render(fb)
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, p.Err(), boom)

	// Next frame stops before touching the handler
	mock.Advance(gate.Interval())
	assert.ErrorIs(t, p.Step(), boom)
	assert.ErrorIs(t, p.Render(fb), boom)
	assert.Equal(t, 1, h.updates)
	assert.Equal(t, 1, h.draws)
}

func TestPumpLatchesUpdateError(t *testing.T) {
	boom := errors.New("bad state")
	h := &countingHandler{updateErr: boom}
	p, _, _ := newPump(t, h)

	assert.ErrorIs(t, p.Step(), boom)
	assert.ErrorIs(t, p.Render(render.NewFramebuffer(4, 4, 4, 4)), boom)
	assert.Zero(t, h.draws)
}
