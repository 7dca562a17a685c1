package render

import (
	"errors"
	"image/color"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/nerteb-2d/vmath"
)

var _ Canvas = (*Framebuffer)(nil)

// Framebuffer is a software rasterizer over an opaque pixel grid
// World coordinates are scaled independently per axis so the whole world always fits
type Framebuffer struct {
	width, height  int
	worldW, worldH float64
	sx, sy         float64
	pix            []color.NRGBA

	// Per-draw coverage stamps so overlapping stroke pieces blend once
	mark  []uint32
	stamp uint32
}

// NewFramebuffer creates a pixel grid of pxW x pxH showing a worldW x worldH world
func NewFramebuffer(pxW, pxH int, worldW, worldH float64) *Framebuffer {
	f := &Framebuffer{worldW: worldW, worldH: worldH}
	f.Resize(pxW, pxH)
	return f
}

// Resize changes the pixel grid, contents are discarded
func (f *Framebuffer) Resize(pxW, pxH int) {
	f.width, f.height = max(pxW, 0), max(pxH, 0)
	n := f.width * f.height
	f.pix = make([]color.NRGBA, n)
	f.mark = make([]uint32, n)
	f.stamp = 0
	f.sx, f.sy = 0, 0
	if f.worldW > 0 {
		f.sx = float64(f.width) / f.worldW
	}
	if f.worldH > 0 {
		f.sy = float64(f.height) / f.worldH
	}
}

// PixelSize returns the grid dimensions
func (f *Framebuffer) PixelSize() (w, h int) {
	return f.width, f.height
}

// Size returns the world extent
func (f *Framebuffer) Size() (w, h float64) {
	return f.worldW, f.worldH
}

// At returns the pixel at x, y, transparent black outside the grid
func (f *Framebuffer) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return color.NRGBA{}
	}
	return f.pix[y*f.width+x]
}

// ToWorld maps a pixel-space coordinate back to world units
func (f *Framebuffer) ToWorld(px, py float64) vmath.Xy {
	if f.sx == 0 || f.sy == 0 {
		return vmath.Zero
	}
	return vmath.New(px/f.sx, py/f.sy)
}

// Clear fills every pixel with c as an opaque color
func (f *Framebuffer) Clear(c color.NRGBA) {
	c.A = 255
	for i := range f.pix {
		f.pix[i] = c
	}
}

// Draw rasterizes a mesh
func (f *Framebuffer) Draw(m *Mesh, p DrawParam) error {
	if m == nil {
		return errors.New("draw: nil mesh")
	}
	if len(f.pix) == 0 || len(m.Points) == 0 {
		return nil
	}

	pts := m.Transformed(p)
	for i := range pts {
		pts[i] = vmath.New(pts[i].X*f.sx, pts[i].Y*f.sy)
	}

	f.nextStamp()
	if m.Stroke {
		width := m.Width * p.StrokeScale() * (f.sx + f.sy) / 2
		f.strokePolyline(pts, m.Closed, width, m.Color)
	} else {
		f.fillPolygon(pts, m.Color)
	}
	return nil
}

func (f *Framebuffer) nextStamp() {
	f.stamp++
	if f.stamp == 0 {
		clear(f.mark)
		f.stamp = 1
	}
}

// plot blends c into the pixel once per draw call
func (f *Framebuffer) plot(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	i := y*f.width + x
	if f.mark[i] == f.stamp {
		return
	}
	f.mark[i] = f.stamp
	f.pix[i] = Blend(f.pix[i], c)
}

// fillPolygon performs even-odd scanline fill sampling pixel centers
func (f *Framebuffer) fillPolygon(pts []vmath.Xy, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	y0 := max(int(math.Floor(minY)), 0)
	y1 := min(int(math.Ceil(maxY)), f.height)

	xs := make([]float64, 0, 8)
	for y := y0; y < y1; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y <= yc) != (b.Y <= yc) {
				xs = append(xs, a.X+(yc-a.Y)*(b.X-a.X)/(b.Y-a.Y))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xa := max(int(math.Ceil(xs[i]-0.5)), 0)
			xb := min(int(math.Ceil(xs[i+1]-0.5)), f.width)
			for x := xa; x < xb; x++ {
				f.plot(x, y, c)
			}
		}
	}
}

// strokePolyline draws each segment as a quad, hairlines fall back to DDA stepping
func (f *Framebuffer) strokePolyline(pts []vmath.Xy, closed bool, width float64, c color.NRGBA) {
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		if width <= 1 {
			f.lineDDA(a, b, c)
			continue
		}
		d := b.Sub(a)
		l := d.Len()
		if l == 0 {
			f.lineDDA(a, a, c)
			continue
		}
		nrm := vmath.New(-d.Y, d.X).Scale(width / 2 / l)
		f.fillPolygon([]vmath.Xy{a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm)}, c)
	}
}

// lineDDA steps a hairline, clipped first so the work is bounded by the grid size
func (f *Framebuffer) lineDDA(a, b vmath.Xy, c color.NRGBA) {
	a, b, ok := clipSegment(a, b, vmath.New(-1, -1), vmath.New(float64(f.width)+1, float64(f.height)+1))
	if !ok {
		return
	}
	d := b.Sub(a)
	steps := int(math.Ceil(max(math.Abs(d.X), math.Abs(d.Y))))
	if steps == 0 {
		f.plot(int(math.Floor(a.X)), int(math.Floor(a.Y)), c)
		return
	}
	for i := 0; i <= steps; i++ {
		p := a.Lerp(b, float64(i)/float64(steps))
		f.plot(int(math.Floor(p.X)), int(math.Floor(p.Y)), c)
	}
}

// clipSegment clips a-b to the box lo-hi (Liang-Barsky), ok is false when no part is inside
func clipSegment(a, b, lo, hi vmath.Xy) (vmath.Xy, vmath.Xy, bool) {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, a.X - lo.X},
		{d.X, hi.X - a.X},
		{-d.Y, a.Y - lo.Y},
		{d.Y, hi.Y - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			// Parallel to this edge
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = min(t1, r)
		}
	}
	return a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), true
}

// Blend composites straight-alpha src over an opaque dst
func Blend(dst, src color.NRGBA) color.NRGBA {
	switch src.A {
	case 255:
		return src
	case 0:
		return dst
	}
	d := colorful.Color{R: float64(dst.R) / 255, G: float64(dst.G) / 255, B: float64(dst.B) / 255}
	s := colorful.Color{R: float64(src.R) / 255, G: float64(src.G) / 255, B: float64(src.B) / 255}
	r, g, b := d.BlendRgb(s, float64(src.A)/255).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
