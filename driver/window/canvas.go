package window

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/nerteb-2d/render"
)

var _ render.Canvas = (*Canvas)(nil)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// source returns a 1x1 white texture sampled by every triangle
func source() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Canvas draws meshes onto an ebiten image with world units equal to screen pixels
type Canvas struct {
	target *ebiten.Image
	w, h   float64

	vs []ebiten.Vertex
	is []uint16
}

// NewCanvas creates a canvas for a w x h logical screen
func NewCanvas(w, h int) *Canvas {
	return &Canvas{w: float64(w), h: float64(h)}
}

// bind sets the image drawn into for the current frame
func (c *Canvas) bind(target *ebiten.Image) {
	c.target = target
}

func (c *Canvas) Size() (w, h float64) {
	return c.w, c.h
}

func (c *Canvas) Clear(col color.NRGBA) {
	col.A = 255
	c.target.Fill(col)
}

// Draw tessellates the transformed mesh into triangles
func (c *Canvas) Draw(m *render.Mesh, p render.DrawParam) error {
	if m == nil {
		return errors.New("draw: nil mesh")
	}
	if c.target == nil {
		return errors.New("draw: canvas not bound to a frame")
	}
	pts := m.Transformed(p)
	if len(pts) == 0 {
		return nil
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	if m.Closed {
		path.Close()
	}

	c.vs, c.is = c.vs[:0], c.is[:0]
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	}
	if m.Stroke {
		c.vs, c.is = path.AppendVerticesAndIndicesForStroke(c.vs, c.is, &vector.StrokeOptions{
			Width:    float32(m.Width * p.StrokeScale()),
			LineJoin: vector.LineJoinRound,
			LineCap:  vector.LineCapRound,
		})
	} else {
		c.vs, c.is = path.AppendVerticesAndIndicesForFilling(c.vs, c.is)
		op.FillRule = ebiten.FillRuleNonZero
	}

	r := float32(m.Color.R) / 255
	g := float32(m.Color.G) / 255
	b := float32(m.Color.B) / 255
	a := float32(m.Color.A) / 255
	for i := range c.vs {
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = r
		c.vs[i].ColorG = g
		c.vs[i].ColorB = b
		c.vs[i].ColorA = a
	}

	c.target.DrawTriangles(c.vs, c.is, source(), op)
	return nil
}
