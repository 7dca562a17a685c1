package config

import "image/color"

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Backend: BackendWindow,
		Window: WindowConfig{
			Title:  "NERTEB-2D",
			Width:  800,
			Height: 600,
		},
		Timing: TimingConfig{
			TPS:        60,
			FrameRate:  60,
			MaxCatchUp: 5,
		},
		Physics: PhysicsConfig{
			Position: Vec{100, 100},
			Velocity: Vec{5, 0},
			Damping:  0.01,
			Bounce:   true,
			Radius:   10,
		},
		Scene: SceneConfig{
			Points: []Vec{
				{200, 450},
				{350, 520},
				{500, 450},
				{100, 100},
			},
			Segments: [][2]int{
				{0, 1},
				{1, 2},
				{2, 0},
				{0, 3},
				{2, 3},
			},
			Tether:    3,
			LineWidth: 2,
		},
		Colors: ColorConfig{
			Background: Color{NRGBA: color.NRGBA{R: 153, G: 153, B: 153, A: 153}},
			Rectangle:  Color{NRGBA: color.NRGBA{A: 255}},
			Lines:      Color{NRGBA: color.NRGBA{R: 25, G: 25, B: 112, A: 255}},
			Body:       Color{NRGBA: color.NRGBA{R: 220, G: 20, B: 60, A: 255}},
			Cursor:     Color{NRGBA: color.NRGBA{R: 255, G: 255, B: 255, A: 200}},
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
			Frequency:  880,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
