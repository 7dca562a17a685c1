package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/nerteb-2d/render"
)

// Color accepts a named color, #rgb, #rrggbb, #rrggbbaa or a [r, g, b(, a)] list in [0,1]
type Color struct {
	color.NRGBA
}

// ParseColor parses the scalar forms of Color
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{NRGBA: render.ToNRGBA(named)}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}

	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q alpha: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{NRGBA: color.NRGBA{R: r, G: g, B: b, A: alpha}}, nil
}

// FromFloats builds a color from 3 or 4 channels in [0,1]
func FromFloats(ch []float64) (Color, error) {
	if len(ch) != 3 && len(ch) != 4 {
		return Color{}, fmt.Errorf("color needs 3 or 4 channels, got %d", len(ch))
	}
	out := [4]uint8{0, 0, 0, 255}
	for i, v := range ch {
		if v < 0 || v > 1 {
			return Color{}, fmt.Errorf("color channel %d value %g outside [0,1]", i, v)
		}
		out[i] = uint8(v*255 + 0.5)
	}
	return Color{NRGBA: color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseColor(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var ch []float64
		if err := node.Decode(&ch); err != nil {
			return err
		}
		parsed, err := FromFloats(ch)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("line %d: color must be a string or a list", node.Line)
	}
}

// MarshalYAML emits the #rrggbbaa form
func (c Color) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}
