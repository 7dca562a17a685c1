package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// blip is a sine tone with a linear fade-out, finite length
type blip struct {
	freq     float64
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

// NewBlipGenerator creates a short sine tone that fades to silence over its duration
func NewBlipGenerator(rate beep.SampleRate, freq float64, duration time.Duration) beep.Streamer {
	return &blip{
		freq:  freq,
		total: rate.N(duration),
		rate:  rate,
	}
}

func (b *blip) Stream(samples [][2]float64) (n int, ok bool) {
	if b.position >= b.total {
		return 0, false
	}
	for i := range samples {
		if b.position >= b.total {
			return i, true
		}

		fade := 1 - float64(b.position)/float64(b.total)
		val := math.Sin(2*math.Pi*b.phase) * fade
		samples[i][0] = val
		samples[i][1] = val

		b.phase += b.freq / float64(b.rate)
		b.phase -= math.Floor(b.phase)
		b.position++
	}
	return len(samples), true
}

func (b *blip) Err() error { return nil }

// newVolume wraps s with a linear gain, math.Log2(0) is -Inf so zero maps to silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
