package render

import "github.com/lixenwraith/nerteb-2d/vmath"

// DrawParam positions a mesh on the canvas
// Local points are shifted by Offset, scaled, rotated around the origin and moved to Dest
type DrawParam struct {
	Dest     vmath.Xy
	Offset   vmath.Xy
	Scale    vmath.Xy
	Rotation float64 // Radians
}

// NewDrawParam returns the identity transform
func NewDrawParam() DrawParam {
	return DrawParam{Scale: vmath.New(1, 1)}
}

func (p DrawParam) WithDest(d vmath.Xy) DrawParam {
	p.Dest = d
	return p
}

func (p DrawParam) WithOffset(o vmath.Xy) DrawParam {
	p.Offset = o
	return p
}

func (p DrawParam) WithScale(s vmath.Xy) DrawParam {
	p.Scale = s
	return p
}

func (p DrawParam) WithRotation(r float64) DrawParam {
	p.Rotation = r
	return p
}

// Transform maps a local point to canvas coordinates
func (p DrawParam) Transform(pt vmath.Xy) vmath.Xy {
	return pt.Sub(p.Offset).Mul(p.Scale).Rotate(p.Rotation).Add(p.Dest)
}

// StrokeScale returns the factor applied to line widths under this transform
func (p DrawParam) StrokeScale() float64 {
	sx, sy := p.Scale.X, p.Scale.Y
	if sx < 0 {
		sx = -sx
	}
	if sy < 0 {
		sy = -sy
	}
	return (sx + sy) / 2
}
