package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvBackend      = "NERTEB_BACKEND"
	EnvTPS          = "NERTEB_TPS"
	EnvDamping      = "NERTEB_DAMPING"
	EnvBackground   = "NERTEB_BACKGROUND"
	EnvAudioEnabled = "NERTEB_AUDIO_ENABLED"
	EnvMasterVolume = "NERTEB_MASTER_VOLUME"
	EnvLogFile      = "NERTEB_LOG_FILE"
	EnvLogLevel     = "NERTEB_LOG_LEVEL"
)

// ApplyEnv overrides fields from environment variables, unset variables are skipped
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}

	if v := os.Getenv(EnvTPS); v != "" {
		tps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTPS, err)
		}
		c.Timing.TPS = tps
	}

	if v := os.Getenv(EnvDamping); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDamping, err)
		}
		c.Physics.Damping = d
	}

	if v := os.Getenv(EnvBackground); v != "" {
		col, err := ParseColor(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBackground, err)
		}
		c.Colors.Background = col
	}

	if v := os.Getenv(EnvAudioEnabled); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAudioEnabled, err)
		}
		c.Audio.Enabled = enabled
	}

	// Master volume 0-100 converted to 0.0-1.0
	if v := os.Getenv(EnvMasterVolume); v != "" {
		vol, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMasterVolume, err)
		}
		c.Audio.Volume = min(max(float64(vol)/100.0, 0), 1)
	}

	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}
