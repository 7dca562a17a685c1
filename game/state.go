// Package game holds the demo scene: one damped body, a rotated rectangle,
// segments over a shared point list and a cursor marker
package game

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/nerteb-2d/config"
	"github.com/lixenwraith/nerteb-2d/driver"
	"github.com/lixenwraith/nerteb-2d/physics"
	"github.com/lixenwraith/nerteb-2d/render"
	"github.com/lixenwraith/nerteb-2d/vmath"
)

const (
	circleTolerance = 0.1
	cursorRadius    = 6.0
	cursorWidth     = 1.0
)

// Rectangle placement, the local rect is drawn through a fixed transform
var (
	rectLocal    = render.NewRectInt(10, 10, 20, 20)
	rectDest     = vmath.New(50, 60)
	rectRotation = math.Pi / 6
	rectScale    = vmath.New(1.5, 2)
)

// SoundPlayer plays the key blip, implemented by audio.SoundManager
type SoundPlayer interface {
	PlayBlip()
}

type nopSound struct{}

func (nopSound) PlayBlip() {}

var _ driver.Handler = (*State)(nil)

// State is the complete game state, owned by the driver goroutine
type State struct {
	cfg   *config.Config
	log   *zap.Logger
	sound SoundPlayer

	body    physics.Movable
	initial physics.Movable

	points   *vmath.Arena
	segments []vmath.Segment
	tether   vmath.PointID
	tethered bool

	mouse     vmath.Xy
	mouseSeen bool

	ticks  int
	paused bool

	rect *render.Mesh
}

// New builds the scene from cfg, a nil sound player is silent
func New(cfg *config.Config, sound SoundPlayer, log *zap.Logger) (*State, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if sound == nil {
		sound = nopSound{}
	}

	rect, err := render.NewRectangle(render.Fill(), rectLocal, cfg.Colors.Rectangle.NRGBA)
	if err != nil {
		return nil, fmt.Errorf("rectangle mesh: %w", err)
	}

	body := physics.NewMovable(
		cfg.Physics.Position.Xy(),
		cfg.Physics.Velocity.Xy(),
		cfg.Physics.Acceleration.Xy(),
		cfg.Physics.Damping,
	)

	points := vmath.NewArena()
	for _, p := range cfg.Scene.Points {
		points.Add(p.Xy())
	}
	segments := make([]vmath.Segment, 0, len(cfg.Scene.Segments))
	for i, s := range cfg.Scene.Segments {
		seg := vmath.Segment{A: vmath.PointID(s[0]), B: vmath.PointID(s[1])}
		if !points.Valid(seg.A) || !points.Valid(seg.B) {
			return nil, fmt.Errorf("segment %d: point index out of range", i)
		}
		segments = append(segments, seg)
	}

	s := &State{
		cfg:      cfg,
		log:      log,
		sound:    sound,
		body:     body,
		initial:  body,
		points:   points,
		segments: segments,
		rect:     rect,
	}
	if cfg.Scene.Tether >= 0 {
		s.tether = vmath.PointID(cfg.Scene.Tether)
		if !points.Valid(s.tether) {
			return nil, fmt.Errorf("tether %d: point index out of range", cfg.Scene.Tether)
		}
		s.tethered = true
		points.Set(s.tether, body.Pos)
	}
	return s, nil
}

// Body returns the current body state
func (s *State) Body() physics.Movable {
	return s.body
}

// Ticks returns the number of simulation steps taken
func (s *State) Ticks() int {
	return s.ticks
}

// Paused reports whether simulation steps are skipped
func (s *State) Paused() bool {
	return s.paused
}

// Mouse returns the last cursor position and whether one was seen
func (s *State) Mouse() (vmath.Xy, bool) {
	return s.mouse, s.mouseSeen
}

// Points exposes the shared point list
func (s *State) Points() *vmath.Arena {
	return s.points
}

// Update runs the due fixed steps
func (s *State) Update(ticks int) error {
	if s.paused {
		return nil
	}
	for i := 0; i < ticks; i++ {
		s.step()
	}
	return nil
}

func (s *State) step() {
	s.body.Step()
	if s.cfg.Physics.Bounce {
		r := s.cfg.Physics.Radius
		w, h := float64(s.cfg.Window.Width), float64(s.cfg.Window.Height)
		if s.body.ReflectBounds(vmath.New(r, r), vmath.New(w-r, h-r)) {
			s.log.Debug("body bounced", zap.Float64("x", s.body.Pos.X), zap.Float64("y", s.body.Pos.Y))
		}
	}
	if s.tethered {
		s.points.Set(s.tether, s.body.Pos)
	}
	s.ticks++
}

// Draw renders the scene, the first mesh error aborts the frame
func (s *State) Draw(c render.Canvas) error {
	c.Clear(s.cfg.Colors.Background.NRGBA)

	param := render.NewDrawParam().
		WithDest(rectDest).
		WithRotation(rectRotation).
		WithScale(rectScale)
	if err := c.Draw(s.rect, param); err != nil {
		return fmt.Errorf("rectangle: %w", err)
	}

	for i, seg := range s.segments {
		a, b := seg.Ends(s.points)
		line, err := render.NewLine([]vmath.Xy{a, b}, s.cfg.Scene.LineWidth, s.cfg.Colors.Lines.NRGBA)
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		if err := c.Draw(line, render.NewDrawParam()); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}

	body, err := render.NewCircle(render.Fill(), s.body.Pos, s.cfg.Physics.Radius, circleTolerance, s.cfg.Colors.Body.NRGBA)
	if err != nil {
		return fmt.Errorf("body: %w", err)
	}
	if err := c.Draw(body, render.NewDrawParam()); err != nil {
		return fmt.Errorf("body: %w", err)
	}

	if s.mouseSeen {
		cursor, err := render.NewCircle(render.Stroke(cursorWidth), s.mouse, cursorRadius, circleTolerance, s.cfg.Colors.Cursor.NRGBA)
		if err != nil {
			return fmt.Errorf("cursor: %w", err)
		}
		if err := c.Draw(cursor, render.NewDrawParam()); err != nil {
			return fmt.Errorf("cursor: %w", err)
		}
	}
	return nil
}

// KeyUp logs every released key and handles the few bound ones
func (s *State) KeyUp(k driver.KeyEvent) {
	s.log.Debug("key released", zap.String("key", k.Name), zap.Bool("ctrl", k.Ctrl))

	switch k.Name {
	case "W":
		s.log.Info("W was pressed")
		s.sound.PlayBlip()
	case "R":
		s.reset()
	case driver.KeySpace:
		s.paused = !s.paused
		s.log.Info("pause toggled", zap.Bool("paused", s.paused))
	}
}

// MouseMotion records the cursor position in world units
func (s *State) MouseMotion(p vmath.Xy) {
	s.mouse = p
	s.mouseSeen = true
}

func (s *State) reset() {
	s.body = s.initial
	s.ticks = 0
	if s.tethered {
		s.points.Set(s.tether, s.body.Pos)
	}
	s.log.Info("body reset")
}
