package clock

import "time"

const frameSamples = 200

// FrameCounter keeps a rolling window of frame durations for FPS display
type FrameCounter struct {
	tp      TimeProvider
	last    time.Time
	samples [frameSamples]time.Duration
	next    int
	count   int
	sum     time.Duration
}

// NewFrameCounter creates a counter reading time from tp, nil selects the monotonic clock
func NewFrameCounter(tp TimeProvider) *FrameCounter {
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	return &FrameCounter{tp: tp, last: tp.Now()}
}

// Tick records the duration since the previous Tick
func (f *FrameCounter) Tick() {
	now := f.tp.Now()
	d := now.Sub(f.last)
	f.last = now

	if f.count == frameSamples {
		f.sum -= f.samples[f.next]
	} else {
		f.count++
	}
	f.samples[f.next] = d
	f.sum += d
	f.next = (f.next + 1) % frameSamples
}

// FPS returns frames per second averaged over the window, zero before any frame
func (f *FrameCounter) FPS() float64 {
	if f.count == 0 || f.sum <= 0 {
		return 0
	}
	avg := f.sum / time.Duration(f.count)
	return float64(time.Second) / float64(avg)
}
