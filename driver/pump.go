package driver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/nerteb-2d/clock"
	"github.com/lixenwraith/nerteb-2d/render"
)

// Pump runs the per-frame update and draw calls against a tick gate
// The first error is latched; every later Step or Render returns it without calling the handler
type Pump struct {
	h    Handler
	gate *clock.TickGate
	log  *zap.Logger
	err  error
}

// NewPump binds h to gate
func NewPump(h Handler, gate *clock.TickGate, log *zap.Logger) *Pump {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pump{h: h, gate: gate, log: log}
}

// Err returns the latched error, nil while the loop is healthy
func (p *Pump) Err() error {
	return p.err
}

// Step runs the ticks due this frame
func (p *Pump) Step() error {
	if p.err != nil {
		return p.err
	}
	ticks, pending := p.gate.Drain()
	if pending > 0 {
		p.log.Debug("tick backlog", zap.Int("ran", ticks), zap.Int("pending", pending))
	}
	if err := p.h.Update(ticks); err != nil {
		p.err = fmt.Errorf("update: %w", err)
	}
	return p.err
}

// Render draws one frame onto c
func (p *Pump) Render(c render.Canvas) error {
	if p.err != nil {
		return p.err
	}
	if err := p.h.Draw(c); err != nil {
		p.err = fmt.Errorf("draw: %w", err)
	}
	return p.err
}
