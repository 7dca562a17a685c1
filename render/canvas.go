package render

import "image/color"

// Canvas is the draw surface a backend hands to the game once per frame
// Coordinates are world units, the backend maps them onto its output
type Canvas interface {
	// Clear fills the whole surface, alpha is ignored
	Clear(c color.NRGBA)
	// Draw renders one mesh with the given transform
	Draw(m *Mesh, p DrawParam) error
	// Size returns the world extent visible on the surface
	Size() (w, h float64)
}

// ToNRGBA converts any color to straight-alpha 8-bit channels
func ToNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
