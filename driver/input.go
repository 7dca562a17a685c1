package driver

import (
	"strings"

	"github.com/lixenwraith/nerteb-2d/vmath"
)

// KeyFromName normalizes a backend key name such as "W", "Digit1" or "Space"
func KeyFromName(name string, ctrl bool) KeyEvent {
	ev := KeyEvent{Name: name, Ctrl: ctrl}
	if d, ok := strings.CutPrefix(name, "Digit"); ok && len(d) == 1 {
		ev.Name = d
	}

	switch {
	case len(ev.Name) == 1 && ev.Name[0] >= 'A' && ev.Name[0] <= 'Z':
		ev.Rune = rune(ev.Name[0]) + ('a' - 'A')
	case len(ev.Name) == 1 && ev.Name[0] >= '0' && ev.Name[0] <= '9':
		ev.Rune = rune(ev.Name[0])
	case ev.Name == KeySpace:
		ev.Rune = ' '
	case ev.Name == KeyEnter:
		ev.Rune = '\n'
	}
	return ev
}

// CursorTracker turns polled cursor positions into motion events
// The first sample only primes the tracker, a position reported before the cursor
// ever moved is not a real one. Samples outside the w x h area are not forwarded.
type CursorTracker struct {
	w, h   float64
	last   vmath.Xy
	primed bool
}

// NewCursorTracker tracks a cursor over a w x h surface
func NewCursorTracker(w, h float64) *CursorTracker {
	return &CursorTracker{w: w, h: h}
}

// Sample records p, ok reports whether it should be forwarded as motion
func (c *CursorTracker) Sample(p vmath.Xy) (vmath.Xy, bool) {
	if !c.primed {
		c.last, c.primed = p, true
		return p, false
	}
	if p == c.last {
		return p, false
	}
	c.last = p
	return p, p.X >= 0 && p.Y >= 0 && p.X < c.w && p.Y < c.h
}
