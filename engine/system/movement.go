package system

import (
	"math"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/project"
)

type behaviorFunc func(w *engine.World, e *engine.Entity, solids []*engine.Entity)

// Movements without an entry here (Static, Path, Platform, Race Car) do not
// move.
var behaviors = map[project.Movement]behaviorFunc{
	project.MovementPlayer:   movePlayer,
	project.MovementBouncing: moveBouncing,
	project.MovementEightDir: moveEightDir,
}

// MovementSystem advances every alive entity by its movement behavior, then
// ticks its flash timer down.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Update(w *engine.World) {
	if w == nil {
		return
	}

	var solids []*engine.Entity
	for _, e := range w.Entities() {
		if e.Alive && e.Solid {
			solids = append(solids, e)
		}
	}

	for _, e := range w.Entities() {
		if !e.Alive {
			continue
		}
		if move, ok := behaviors[e.Movement]; ok {
			move(w, e, solids)
		}
		if e.FlashTimer > 0 {
			e.FlashTimer--
		}
	}
}

// movePlayer is the platformer controller: run, jump, gravity, then X and Y
// resolved against solids one axis at a time.
func movePlayer(w *engine.World, e *engine.Entity, solids []*engine.Entity) {
	t := w.Tuning
	in := w.Input

	switch {
	case in.AnyHeld(t.Keys.Left):
		e.Vel.X = -e.Speed
	case in.AnyHeld(t.Keys.Right):
		e.Vel.X = e.Speed
	default:
		e.Vel.X *= t.Friction
		if math.Abs(e.Vel.X) < t.StopThreshold {
			e.Vel.X = 0
		}
	}

	if in.AnyHeld(t.Keys.Jump) && e.Grounded {
		e.Vel.Y = t.JumpImpulse
		e.Grounded = false
	}

	e.Vel.Y = math.Min(e.Vel.Y+t.Gravity, t.MaxFallSpeed)

	e.X += e.Vel.X
	for _, s := range solids {
		if s.ID == e.ID || !e.Overlaps(s) {
			continue
		}
		if e.Vel.X > 0 {
			e.X = s.X - e.W
		} else if e.Vel.X < 0 {
			e.X = s.X + s.W
		}
		e.Vel.X = 0
	}

	e.Y += e.Vel.Y
	e.Grounded = false
	for _, s := range solids {
		if s.ID == e.ID || !e.Overlaps(s) {
			continue
		}
		if e.Vel.Y > 0 {
			e.Y = s.Y - e.H
			e.Vel.Y = 0
			e.Grounded = true
		} else if e.Vel.Y < 0 {
			e.Y = s.Y + s.H
			e.Vel.Y = 0
		}
	}

	// Falling out of the frame puts the player back at the top.
	if e.Y > w.Height+t.FallMargin {
		e.Y = 0
		e.Vel.Y = 0
	}
	e.X = clamp(e.X, -e.W, w.Width)
}

// moveBouncing patrols horizontally, turning at the frame edges and on
// solids. The solid push-out is a fixed nudge of twice the speed.
func moveBouncing(w *engine.World, e *engine.Entity, solids []*engine.Entity) {
	e.X += e.Speed * e.DirX
	if e.X <= 0 || e.X+e.W >= w.Width {
		e.DirX = -e.DirX
	}
	for _, s := range solids {
		if s.ID == e.ID || !e.Overlaps(s) {
			continue
		}
		e.DirX = -e.DirX
		e.X += e.Speed * e.DirX * 2
	}
	e.Vel.X = e.Speed * e.DirX
}

func moveEightDir(w *engine.World, e *engine.Entity, _ []*engine.Entity) {
	k := w.Tuning.Keys
	var dx, dy float64
	if w.Input.AnyHeld(k.Left) {
		dx -= e.Speed
	}
	if w.Input.AnyHeld(k.Right) {
		dx += e.Speed
	}
	if w.Input.AnyHeld(k.Up) {
		dy -= e.Speed
	}
	if w.Input.AnyHeld(k.Down) {
		dy += e.Speed
	}
	e.X += dx
	e.Y += dy
	e.Vel.X, e.Vel.Y = dx, dy
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
