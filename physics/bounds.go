package physics

import "github.com/lixenwraith/nerteb-2d/vmath"

// reflectAxis keeps *pos inside [lo, hi] and flips *vel when a wall was crossed
// An empty range (lo > hi) has no room to bounce in, the body rests at its center
func reflectAxis(pos, vel *float64, lo, hi float64) bool {
	switch {
	case lo > hi:
		mid := (lo + hi) / 2
		moved := *pos != mid || *vel != 0
		*pos, *vel = mid, 0
		return moved
	case *pos < lo:
		*pos, *vel = lo, -*vel
	case *pos > hi:
		*pos, *vel = hi, -*vel
	default:
		return false
	}
	return true
}

// ReflectBounds bounces the body off the walls of the box min-max
// Returns true when either axis was corrected
func (m *Movable) ReflectBounds(min, max vmath.Xy) bool {
	hitX := reflectAxis(&m.Pos.X, &m.Vel.X, min.X, max.X)
	hitY := reflectAxis(&m.Pos.Y, &m.Vel.Y, min.Y, max.Y)
	return hitX || hitY
}
