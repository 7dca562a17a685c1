// Package driver defines the contract between a backend event loop and the game
//
// A backend owns the loop goroutine. Per frame it polls the tick gate, calls Update with the
// number of ticks due, then calls Draw once. Input callbacks run on the same goroutine between
// frames, so a Handler never needs locking.
package driver

import (
	"github.com/lixenwraith/nerteb-2d/render"
	"github.com/lixenwraith/nerteb-2d/vmath"
)

// Handler receives loop callbacks
type Handler interface {
	// Update advances the simulation by ticks fixed steps, ticks may be zero
	Update(ticks int) error
	// Draw renders the current state
	Draw(c render.Canvas) error
	// KeyUp is called when a key is released
	KeyUp(k KeyEvent)
	// MouseMotion reports the cursor position in world coordinates
	MouseMotion(p vmath.Xy)
}

// KeyEvent is a backend independent key
// Name is an upper-case letter or digit for printable keys, otherwise a key name such as "Escape"
type KeyEvent struct {
	Name string
	Rune rune
	Ctrl bool
}

// Key names shared by the backends
const (
	KeyEscape = "Escape"
	KeySpace  = "Space"
	KeyEnter  = "Enter"
)

// IsQuit reports whether k ends the loop
func IsQuit(k KeyEvent) bool {
	switch {
	case k.Name == KeyEscape:
		return true
	case k.Ctrl && k.Name == "C":
		return true
	case k.Name == "Q" && !k.Ctrl:
		return true
	}
	return false
}
