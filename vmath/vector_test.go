package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Xy
		want Xy
	}{
		{"Add", New(1, 2).Add(New(10, 20)), New(11, 22)},
		{"Sub", New(5, 7).Sub(New(2, 3)), New(3, 4)},
		{"Scale", New(1.5, -2).Scale(2), New(3, -4)},
		{"Mul", New(2, 3).Mul(New(4, 5)), New(8, 15)},
		{"Neg", New(2, -3).Neg(), New(-2, 3)},
		{"Lerp midpoint", New(0, 0).Lerp(New(10, 20), 0.5), New(5, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

// Y must combine with Y, never with the other operand's X
func TestAddSubUseMatchingComponents(t *testing.T) {
	a := New(1, 2)
	b := New(100, 200)

	assert.Equal(t, 202.0, a.Add(b).Y)
	assert.Equal(t, -198.0, a.Sub(b).Y)
}

func TestAddCommutes(t *testing.T) {
	pairs := [][2]Xy{
		{New(1, 2), New(3, 4)},
		{New(-7.5, 0.25), New(1e6, -1e-6)},
		{Zero, New(9, -9)},
	}
	for _, p := range pairs {
		assert.Equal(t, p[0].Add(p[1]), p[1].Add(p[0]))
	}
}

func TestSubSelfIsZero(t *testing.T) {
	for _, v := range []Xy{New(3, 4), New(-1.25, 8e9), Zero} {
		assert.Equal(t, Zero, v.Sub(v))
		assert.Equal(t, Zero, v.Add(v.Neg()))
	}
}

func TestInPlaceVariants(t *testing.T) {
	v := New(1, 1)
	v.AddAssign(New(2, 3))
	assert.Equal(t, New(3, 4), v)

	v.SubAssign(New(1, 1))
	assert.Equal(t, New(2, 3), v)

	v.ScaleAssign(0.5)
	assert.Equal(t, New(1, 1.5), v)
}

func TestLenDistDot(t *testing.T) {
	assert.Equal(t, 5.0, New(3, 4).Len())
	assert.Equal(t, 5.0, New(1, 1).Dist(New(4, 5)))
	assert.Equal(t, 11.0, New(1, 2).Dot(New(3, 4)))
}

func TestRotate(t *testing.T) {
	r := New(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0, r.X, 1e-12)
	assert.InDelta(t, 1, r.Y, 1e-12)

	assert.Equal(t, New(2, 3), New(2, 3).Rotate(0))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, New(1, 2).IsFinite())
	assert.False(t, New(math.NaN(), 0).IsFinite())
	assert.False(t, New(0, math.Inf(-1)).IsFinite())
}
