package physics

import (
	"github.com/lixenwraith/nerteb-2d/vmath"
)

// Movable is a point body advanced once per fixed tick
// Damping is the fraction of velocity lost per tick, nominally in [0,1] and not enforced
type Movable struct {
	Pos     vmath.Xy
	Vel     vmath.Xy
	Acc     vmath.Xy
	Damping float64
}

// NewMovable creates a body with the given initial state
func NewMovable(pos, vel, acc vmath.Xy, damping float64) Movable {
	return Movable{Pos: pos, Vel: vel, Acc: acc, Damping: damping}
}

// Step performs one tick: v = (v + a) * (1 - d); p = p + v
func (m *Movable) Step() {
	m.Vel.AddAssign(m.Acc)
	m.Vel.ScaleAssign(1 - m.Damping)
	m.Pos.AddAssign(m.Vel)
}

// StepN performs n ticks, n <= 0 is a no-op
func (m *Movable) StepN(n int) {
	for i := 0; i < n; i++ {
		m.Step()
	}
}
