package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/nerteb-2d/vmath"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Backend names
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// Config is the complete runtime configuration
type Config struct {
	Backend string        `yaml:"backend"`
	Window  WindowConfig  `yaml:"window"`
	Timing  TimingConfig  `yaml:"timing"`
	Physics PhysicsConfig `yaml:"physics"`
	Scene   SceneConfig   `yaml:"scene"`
	Colors  ColorConfig   `yaml:"colors"`
	Audio   AudioConfig   `yaml:"audio"`
	Log     LogConfig     `yaml:"log"`
}

// WindowConfig sets the world size, which is also the window size in pixels
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// TimingConfig controls the fixed simulation rate and the render rate
type TimingConfig struct {
	TPS        int `yaml:"tps"`
	FrameRate  int `yaml:"frame_rate"` // Terminal backend only, window follows vsync
	MaxCatchUp int `yaml:"max_catch_up"`
}

// PhysicsConfig is the initial state of the movable body
type PhysicsConfig struct {
	Position     Vec     `yaml:"position"`
	Velocity     Vec     `yaml:"velocity"`
	Acceleration Vec     `yaml:"acceleration"`
	Damping      float64 `yaml:"damping"`
	Bounce       bool    `yaml:"bounce"`
	Radius       float64 `yaml:"radius"`
}

// SceneConfig describes the shared point list and segments between its points
type SceneConfig struct {
	Points    []Vec    `yaml:"points"`
	Segments  [][2]int `yaml:"segments"`
	Tether    int      `yaml:"tether"` // Point index following the body, -1 disables
	LineWidth float64  `yaml:"line_width"`
}

// ColorConfig holds draw colors
type ColorConfig struct {
	Background Color `yaml:"background"`
	Rectangle  Color `yaml:"rectangle"`
	Lines      Color `yaml:"lines"`
	Body       Color `yaml:"body"`
	Cursor     Color `yaml:"cursor"`
}

// AudioConfig controls the key blip
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
	Frequency  float64 `yaml:"frequency"`
}

// LogConfig controls the file logger, an empty File disables logging
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Vec is a YAML friendly [x, y] pair
type Vec [2]float64

// Xy converts to the math type
func (v Vec) Xy() vmath.Xy {
	return vmath.New(v[0], v[1])
}

// Load builds configuration from defaults, an optional YAML file and the environment
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		// Empty file leaves defaults in place
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// Validate checks cross-field constraints, damping is deliberately unchecked
func (c *Config) Validate() error {
	var err error
	invalid := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig))
	}

	switch c.Backend {
	case BackendWindow, BackendTerminal:
	default:
		invalid("unknown backend %q", c.Backend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Timing.TPS <= 0 {
		invalid("tps %d", c.Timing.TPS)
	}
	if c.Timing.FrameRate <= 0 {
		invalid("frame rate %d", c.Timing.FrameRate)
	}
	if !(c.Physics.Radius > 0) {
		invalid("body radius %g", c.Physics.Radius)
	}
	if c.Physics.Bounce && (2*c.Physics.Radius > float64(c.Window.Width) || 2*c.Physics.Radius > float64(c.Window.Height)) {
		invalid("body radius %g does not fit a %dx%d window", c.Physics.Radius, c.Window.Width, c.Window.Height)
	}
	finite := !math.IsNaN(c.Physics.Damping) && !math.IsInf(c.Physics.Damping, 0)
	for _, v := range []Vec{c.Physics.Position, c.Physics.Velocity, c.Physics.Acceleration} {
		finite = finite && v.Xy().IsFinite()
	}
	if !finite {
		invalid("physics state must be finite")
	}
	if !(c.Scene.LineWidth > 0) {
		invalid("line width %g", c.Scene.LineWidth)
	}
	n := len(c.Scene.Points)
	for i, s := range c.Scene.Segments {
		if s[0] < 0 || s[0] >= n || s[1] < 0 || s[1] >= n {
			invalid("segment %d references point outside [0,%d)", i, n)
		}
	}
	if c.Scene.Tether < -1 || c.Scene.Tether >= n {
		invalid("tether %d outside point list", c.Scene.Tether)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		invalid("audio volume %g outside [0,1]", c.Audio.Volume)
	}
	if c.Audio.SampleRate <= 0 {
		invalid("sample rate %d", c.Audio.SampleRate)
	}
	return err
}
