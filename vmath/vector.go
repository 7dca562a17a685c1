package vmath

import "math"

// Xy is a 2D point or vector in world units (pixels)
type Xy struct {
	X, Y float64
}

// Zero is the origin
var Zero = Xy{}

// New builds a vector from two float64 components
// Callers holding other numeric types convert at the call site
func New(x, y float64) Xy {
	return Xy{X: x, Y: y}
}

// Add returns v + o
func (v Xy) Add(o Xy) Xy {
	return Xy{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Xy) Sub(o Xy) Xy {
	return Xy{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k
func (v Xy) Scale(k float64) Xy {
	return Xy{X: v.X * k, Y: v.Y * k}
}

// Mul returns the componentwise product, used for non-uniform scale
func (v Xy) Mul(o Xy) Xy {
	return Xy{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Xy) Neg() Xy {
	return Xy{X: -v.X, Y: -v.Y}
}

// Dot returns v.x*o.x + v.y*o.y
func (v Xy) Dot(o Xy) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns Euclidean length
func (v Xy) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns Euclidean distance between v and o
func (v Xy) Dist(o Xy) float64 {
	return v.Sub(o).Len()
}

// Rotate rotates v counter-clockwise by angle radians around the origin
// With y pointing down on screen this appears clockwise
func (v Xy) Rotate(angle float64) Xy {
	if angle == 0 {
		return v
	}
	sin, cos := math.Sincos(angle)
	return Xy{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Lerp interpolates between v (t=0) and o (t=1)
func (v Xy) Lerp(o Xy, t float64) Xy {
	return Xy{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// IsFinite reports whether both components are neither NaN nor infinite
func (v Xy) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// --- In-place variants ---

// AddAssign accumulates o into v
func (v *Xy) AddAssign(o Xy) {
	v.X += o.X
	v.Y += o.Y
}

// SubAssign subtracts o from v
func (v *Xy) SubAssign(o Xy) {
	v.X -= o.X
	v.Y -= o.Y
}

// ScaleAssign multiplies v by k
func (v *Xy) ScaleAssign(k float64) {
	v.X *= k
	v.Y *= k
}
