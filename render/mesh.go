package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lixenwraith/nerteb-2d/vmath"
)

// ErrInvalidMesh is wrapped by every mesh constructor failure
var ErrInvalidMesh = errors.New("invalid mesh")

// Circle tessellation limits
const (
	minCircleSegments = 8
	maxCircleSegments = 256
)

// DrawMode selects between filled shapes and outlines
type DrawMode struct {
	Stroke bool
	Width  float64 // Outline width, ignored for fill
}

// Fill returns the filled draw mode
func Fill() DrawMode {
	return DrawMode{}
}

// Stroke returns an outline draw mode with the given line width
func Stroke(width float64) DrawMode {
	return DrawMode{Stroke: true, Width: width}
}

// Rect is an axis aligned rectangle, X/Y is the top-left corner
type Rect struct {
	X, Y, W, H float64
}

// NewRectInt builds a rectangle from integer coordinates
func NewRectInt(x, y, w, h int) Rect {
	return Rect{X: float64(x), Y: float64(y), W: float64(w), H: float64(h)}
}

// Mesh is drawable geometry in local coordinates
// Points form a polygon when Closed, otherwise a polyline
type Mesh struct {
	Stroke bool
	Width  float64
	Closed bool
	Points []vmath.Xy
	Color  color.NRGBA
}

// NewRectangle builds a rectangle mesh
func NewRectangle(mode DrawMode, r Rect, c color.NRGBA) (*Mesh, error) {
	if r.W <= 0 || r.H <= 0 {
		return nil, fmt.Errorf("rectangle %gx%g: %w", r.W, r.H, ErrInvalidMesh)
	}
	pts := []vmath.Xy{
		vmath.New(r.X, r.Y),
		vmath.New(r.X+r.W, r.Y),
		vmath.New(r.X+r.W, r.Y+r.H),
		vmath.New(r.X, r.Y+r.H),
	}
	return newShape(mode, pts, c)
}

// NewPolygon builds a closed polygon mesh from at least three points
func NewPolygon(mode DrawMode, points []vmath.Xy, c color.NRGBA) (*Mesh, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon needs 3 points, got %d: %w", len(points), ErrInvalidMesh)
	}
	pts := make([]vmath.Xy, len(points))
	copy(pts, points)
	return newShape(mode, pts, c)
}

// NewLine builds an open polyline of the given width
func NewLine(points []vmath.Xy, width float64, c color.NRGBA) (*Mesh, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("line needs 2 points, got %d: %w", len(points), ErrInvalidMesh)
	}
	if !(width > 0) {
		return nil, fmt.Errorf("line width %g: %w", width, ErrInvalidMesh)
	}
	if err := checkFinite(points); err != nil {
		return nil, err
	}
	pts := make([]vmath.Xy, len(points))
	copy(pts, points)
	return &Mesh{Stroke: true, Width: width, Points: pts, Color: c}, nil
}

// NewCircle builds a circle approximated by a polygon
// tolerance is the maximum distance between the true arc and a polygon edge
func NewCircle(mode DrawMode, center vmath.Xy, radius, tolerance float64, c color.NRGBA) (*Mesh, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("circle radius %g: %w", radius, ErrInvalidMesh)
	}
	n := CircleSegments(radius, tolerance)
	pts := make([]vmath.Xy, n)
	step := 2 * math.Pi / float64(n)
	for i := range pts {
		sin, cos := math.Sincos(float64(i) * step)
		pts[i] = vmath.New(center.X+radius*cos, center.Y+radius*sin)
	}
	return newShape(mode, pts, c)
}

// CircleSegments returns the polygon edge count keeping arc error within tolerance
func CircleSegments(radius, tolerance float64) int {
	if !(tolerance > 0) || tolerance >= radius {
		return minCircleSegments
	}
	n := int(math.Ceil(math.Pi / math.Acos(1-tolerance/radius)))
	return max(minCircleSegments, min(n, maxCircleSegments))
}

func newShape(mode DrawMode, pts []vmath.Xy, c color.NRGBA) (*Mesh, error) {
	if mode.Stroke && !(mode.Width > 0) {
		return nil, fmt.Errorf("stroke width %g: %w", mode.Width, ErrInvalidMesh)
	}
	if err := checkFinite(pts); err != nil {
		return nil, err
	}
	return &Mesh{Stroke: mode.Stroke, Width: mode.Width, Closed: true, Points: pts, Color: c}, nil
}

func checkFinite(pts []vmath.Xy) error {
	for i, p := range pts {
		if !p.IsFinite() {
			return fmt.Errorf("point %d is not finite: %w", i, ErrInvalidMesh)
		}
	}
	return nil
}

// Transformed returns the mesh points mapped through p
func (m *Mesh) Transformed(p DrawParam) []vmath.Xy {
	out := make([]vmath.Xy, len(m.Points))
	for i, pt := range m.Points {
		out[i] = p.Transform(pt)
	}
	return out
}

// Bounds returns the local bounding box of the mesh
func (m *Mesh) Bounds() Rect {
	if len(m.Points) == 0 {
		return Rect{}
	}
	lo, hi := m.Points[0], m.Points[0]
	for _, p := range m.Points[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	return Rect{X: lo.X, Y: lo.Y, W: hi.X - lo.X, H: hi.Y - lo.Y}
}
