package clock

import (
	"fmt"
	"time"
)

// DefaultMaxCatchUp bounds the ticks run for a single frame after a stall, the rest run on later frames
const DefaultMaxCatchUp = 5

// TickGate decouples the fixed simulation rate from the variable frame rate
// Each frame calls Advance once, then Check until it returns false
// Not safe for concurrent use, owned by the loop goroutine
type TickGate struct {
	tp         TimeProvider
	interval   time.Duration
	maxCatchUp int

	last     time.Time
	residual time.Duration
	total    uint64
}

// NewTickGate creates a gate producing tps ticks per second of provider time
func NewTickGate(tps int, tp TimeProvider) (*TickGate, error) {
	if tps <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %d", tps)
	}
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	return &TickGate{
		tp:         tp,
		interval:   time.Second / time.Duration(tps),
		maxCatchUp: DefaultMaxCatchUp,
		last:       tp.Now(),
	}, nil
}

// SetMaxCatchUp changes the per-frame tick cap, n <= 0 removes the cap
func (g *TickGate) SetMaxCatchUp(n int) {
	g.maxCatchUp = n
}

// Interval returns the duration of one tick
func (g *TickGate) Interval() time.Duration {
	return g.interval
}

// Total returns the number of ticks consumed since creation
func (g *TickGate) Total() uint64 {
	return g.total
}

// Advance adds the time elapsed since the previous Advance to the residual
func (g *TickGate) Advance() {
	now := g.tp.Now()
	if elapsed := now.Sub(g.last); elapsed > 0 {
		g.residual += elapsed
	}
	g.last = now
}

// Check consumes one tick interval from the residual, returns false when less than one remains
func (g *TickGate) Check() bool {
	if g.residual < g.interval {
		return false
	}
	g.residual -= g.interval
	g.total++
	return true
}

// Drain advances the gate and returns how many ticks to run this frame
// At most maxCatchUp run per frame, whole ticks beyond the cap stay queued for later frames
// and are reported as pending
func (g *TickGate) Drain() (ticks, pending int) {
	g.Advance()
	for g.maxCatchUp <= 0 || ticks < g.maxCatchUp {
		if !g.Check() {
			break
		}
		ticks++
	}
	return ticks, int(g.residual / g.interval)
}

// Pending returns the whole ticks elapsed but not yet consumed
func (g *TickGate) Pending() int {
	return int(g.residual / g.interval)
}

// Reset discards accumulated time, used after a pause so the game does not fast-forward
func (g *TickGate) Reset() {
	g.last = g.tp.Now()
	g.residual = 0
}
