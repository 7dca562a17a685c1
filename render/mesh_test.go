package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/nerteb-2d/vmath"
)

var black = color.NRGBA{A: 255}

func TestNewRectangleCorners(t *testing.T) {
	m, err := NewRectangle(Fill(), NewRectInt(10, 10, 20, 20), black)
	require.NoError(t, err)

	assert.True(t, m.Closed)
	assert.False(t, m.Stroke)
	assert.Equal(t, []vmath.Xy{
		vmath.New(10, 10), vmath.New(30, 10), vmath.New(30, 30), vmath.New(10, 30),
	}, m.Points)
	assert.Equal(t, Rect{X: 10, Y: 10, W: 20, H: 20}, m.Bounds())
}

func TestMeshConstructorsRejectBadGeometry(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		err  error
	}{
		{"Zero width rect", second(NewRectangle(Fill(), Rect{W: 0, H: 5}, black))},
		{"Negative height rect", second(NewRectangle(Fill(), Rect{W: 5, H: -1}, black))},
		{"NaN rect", second(NewRectangle(Fill(), Rect{X: nan, W: 1, H: 1}, black))},
		{"Stroke without width", second(NewRectangle(Stroke(0), Rect{W: 1, H: 1}, black))},
		{"Single point line", second(NewLine([]vmath.Xy{vmath.Zero}, 1, black))},
		{"Zero width line", second(NewLine([]vmath.Xy{vmath.Zero, vmath.New(1, 1)}, 0, black))},
		{"Infinite line point", second(NewLine([]vmath.Xy{vmath.Zero, vmath.New(math.Inf(1), 0)}, 1, black))},
		{"Zero radius circle", second(NewCircle(Fill(), vmath.Zero, 0, 0.1, black))},
		{"NaN radius circle", second(NewCircle(Fill(), vmath.Zero, nan, 0.1, black))},
		{"Two point polygon", second(NewPolygon(Fill(), []vmath.Xy{vmath.Zero, vmath.New(1, 0)}, black))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, ErrInvalidMesh)
		})
	}
}

func second(_ *Mesh, err error) error {
	return err
}

func TestNewLineCopiesPoints(t *testing.T) {
	pts := []vmath.Xy{vmath.New(1, 1), vmath.New(2, 2)}
	m, err := NewLine(pts, 2, black)
	require.NoError(t, err)

	pts[0] = vmath.New(99, 99)
	assert.Equal(t, vmath.New(1, 1), m.Points[0])
	assert.False(t, m.Closed)
	assert.True(t, m.Stroke)
}

func TestNewCirclePointsOnRadius(t *testing.T) {
	center := vmath.New(40, 30)
	m, err := NewCircle(Fill(), center, 10, 0.1, black)
	require.NoError(t, err)

	assert.Equal(t, CircleSegments(10, 0.1), len(m.Points))
	for _, p := range m.Points {
		assert.InDelta(t, 10, p.Dist(center), 1e-9)
	}
}

func TestCircleSegments(t *testing.T) {
	assert.Equal(t, minCircleSegments, CircleSegments(10, 0), "no tolerance")
	assert.Equal(t, minCircleSegments, CircleSegments(1, 5), "tolerance above radius")
	assert.Equal(t, maxCircleSegments, CircleSegments(1e9, 1e-6), "capped")

	coarse := CircleSegments(100, 1)
	fine := CircleSegments(100, 0.01)
	assert.Greater(t, fine, coarse)
}

func TestDrawParamTransform(t *testing.T) {
	p := NewDrawParam()
	assert.Equal(t, vmath.New(3, 4), p.Transform(vmath.New(3, 4)), "identity")

	p = NewDrawParam().WithDest(vmath.New(50, 60)).WithScale(vmath.New(1.5, 2))
	assert.Equal(t, vmath.New(65, 80), p.Transform(vmath.New(10, 10)))

	p = NewDrawParam().WithRotation(math.Pi / 2).WithOffset(vmath.New(1, 0))
	got := p.Transform(vmath.New(2, 0))
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
}

func TestStrokeScale(t *testing.T) {
	assert.Equal(t, 1.0, NewDrawParam().StrokeScale())
	assert.Equal(t, 1.75, NewDrawParam().WithScale(vmath.New(-1.5, 2)).StrokeScale())
}
