package system

import (
	"testing"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/project"
)

func TestPlayerRestingOnPlatform(t *testing.T) {
	w := newTestWorld(player("p", 100, 268), platform("ground", 0, 300, 800))
	NewMovementSystem().Update(w)

	p := mustEntity(w, "p")
	if !p.Grounded || p.Vel.Y != 0 || p.Y != 300-p.H {
		t.Fatalf("expected grounded at y=%v, got grounded=%v vy=%v y=%v", 300-p.H, p.Grounded, p.Vel.Y, p.Y)
	}
}

func TestPlayerMovement(t *testing.T) {
	cases := []struct {
		name  string
		objs  []project.Object
		held  map[string]bool
		ticks int
		setup func(p *engine.Entity)
		check func(t *testing.T, p *engine.Entity)
	}{
		{
			name:  "runs_right",
			objs:  []project.Object{player("p", 100, 268), platform("ground", 0, 300, 800)},
			held:  map[string]bool{"Right": true},
			ticks: 1,
			check: func(t *testing.T, p *engine.Entity) {
				if p.X != 105 || p.Vel.X != 5 {
					t.Fatalf("got x=%v vx=%v", p.X, p.Vel.X)
				}
			},
		},
		{
			name:  "friction_snaps_to_zero",
			objs:  []project.Object{player("p", 100, 268), platform("ground", 0, 300, 800)},
			ticks: 1,
			setup: func(p *engine.Entity) { p.Vel.X = 0.6 },
			check: func(t *testing.T, p *engine.Entity) {
				if p.Vel.X != 0 {
					t.Fatalf("expected vx snapped to 0, got %v", p.Vel.X)
				}
			},
		},
		{
			name:  "friction_decays",
			objs:  []project.Object{player("p", 100, 268), platform("ground", 0, 300, 800)},
			ticks: 1,
			setup: func(p *engine.Entity) { p.Vel.X = 10 },
			check: func(t *testing.T, p *engine.Entity) {
				if p.Vel.X != 7 || p.X != 107 {
					t.Fatalf("got vx=%v x=%v", p.Vel.X, p.X)
				}
			},
		},
		{
			name:  "blocked_by_wall",
			objs:  []project.Object{player("p", 100, 268), platform("ground", 0, 300, 800), platform("wall", 134, 250, 32)},
			held:  map[string]bool{"Right": true},
			ticks: 1,
			check: func(t *testing.T, p *engine.Entity) {
				if p.X != 134-p.W || p.Vel.X != 0 {
					t.Fatalf("expected push back to %v, got x=%v vx=%v", 134-p.W, p.X, p.Vel.X)
				}
			},
		},
		{
			name:  "jump_from_ground",
			objs:  []project.Object{player("p", 100, 268), platform("ground", 0, 300, 800)},
			held:  map[string]bool{"space": true},
			ticks: 1,
			setup: func(p *engine.Entity) { p.Grounded = true },
			check: func(t *testing.T, p *engine.Entity) {
				if p.Vel.Y != -12+0.6 || p.Grounded {
					t.Fatalf("got vy=%v grounded=%v", p.Vel.Y, p.Grounded)
				}
			},
		},
		{
			name:  "no_jump_in_air",
			objs:  []project.Object{player("p", 100, 100)},
			held:  map[string]bool{"Up": true},
			ticks: 1,
			check: func(t *testing.T, p *engine.Entity) {
				if p.Vel.Y != 0.6 {
					t.Fatalf("got vy=%v", p.Vel.Y)
				}
			},
		},
		{
			name:  "fall_speed_capped",
			objs:  []project.Object{player("p", 100, -2000)},
			ticks: 60,
			check: func(t *testing.T, p *engine.Entity) {
				if p.Vel.Y != 15 {
					t.Fatalf("got vy=%v", p.Vel.Y)
				}
			},
		},
		{
			name:  "head_bump",
			objs:  []project.Object{player("p", 100, 340), platform("ceiling", 0, 300, 800)},
			ticks: 1,
			setup: func(p *engine.Entity) { p.Vel.Y = -12 },
			check: func(t *testing.T, p *engine.Entity) {
				if p.Y != 332 || p.Vel.Y != 0 || p.Grounded {
					t.Fatalf("got y=%v vy=%v grounded=%v", p.Y, p.Vel.Y, p.Grounded)
				}
			},
		},
		{
			name:  "falls_through_bottom",
			objs:  []project.Object{player("p", 100, 645)},
			ticks: 1,
			setup: func(p *engine.Entity) { p.Vel.Y = 10 },
			check: func(t *testing.T, p *engine.Entity) {
				if p.Y != 0 || p.Vel.Y != 0 {
					t.Fatalf("got y=%v vy=%v", p.Y, p.Vel.Y)
				}
			},
		},
		{
			name:  "clamped_left",
			objs:  []project.Object{player("p", -30, 100)},
			held:  map[string]bool{"Left": true},
			ticks: 1,
			check: func(t *testing.T, p *engine.Entity) {
				if p.X != -32 {
					t.Fatalf("got x=%v", p.X)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld(c.objs...)
			w.Input = engine.Input{Held: c.held}
			p := mustEntity(w, "p")
			if c.setup != nil {
				c.setup(p)
			}
			ms := NewMovementSystem()
			for i := 0; i < c.ticks; i++ {
				ms.Update(w)
			}
			c.check(t, p)
		})
	}
}

func TestBouncingMovement(t *testing.T) {
	enemy := func(x float64) project.Object {
		o := testObj("e", project.TypeEnemy, x, 100, 32, 32)
		o.Movement = project.MovementBouncing
		o.Speed = 2
		return o
	}

	t.Run("patrols", func(t *testing.T) {
		w := newTestWorld(enemy(100))
		NewMovementSystem().Update(w)
		if e := mustEntity(w, "e"); e.X != 102 || e.DirX != 1 {
			t.Fatalf("got x=%v dir=%v", e.X, e.DirX)
		}
	})

	t.Run("turns_at_edge", func(t *testing.T) {
		w := newTestWorld(enemy(767))
		NewMovementSystem().Update(w)
		if e := mustEntity(w, "e"); e.X != 769 || e.DirX != -1 {
			t.Fatalf("got x=%v dir=%v", e.X, e.DirX)
		}
	})

	t.Run("turns_on_solid_with_nudge", func(t *testing.T) {
		w := newTestWorld(enemy(100), platform("wall", 133, 90, 32))
		NewMovementSystem().Update(w)
		e := mustEntity(w, "e")
		if e.DirX != -1 || e.X != 98 {
			t.Fatalf("expected x=98 dir=-1, got x=%v dir=%v", e.X, e.DirX)
		}
	})
}

func TestEightDirMovement(t *testing.T) {
	cases := []struct {
		name   string
		held   map[string]bool
		dx, dy float64
	}{
		{"idle", nil, 0, 0},
		{"diagonal", map[string]bool{"Right": true, "Down": true}, 4, 4},
		{"opposites_cancel", map[string]bool{"Left": true, "Right": true, "Up": true}, 0, -4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := testObj("m", project.TypeActive, 100, 100, 16, 16)
			o.Movement = project.MovementEightDir
			o.Speed = 4
			w := newTestWorld(o, platform("wall", 100, 100, 32))
			w.Input = engine.Input{Held: c.held}
			NewMovementSystem().Update(w)
			m := mustEntity(w, "m")
			if m.X != 100+c.dx || m.Y != 100+c.dy {
				t.Fatalf("expected (%v,%v), got (%v,%v)", 100+c.dx, 100+c.dy, m.X, m.Y)
			}
		})
	}
}

func TestUnimplementedMovementsAreInert(t *testing.T) {
	for _, mv := range []project.Movement{project.MovementStatic, project.MovementPath, project.MovementPlatform, project.MovementRaceCar, "Teleport"} {
		t.Run(string(mv), func(t *testing.T) {
			o := testObj("o", project.TypeActive, 10, 10, 16, 16)
			o.Movement = mv
			o.Speed = 3
			w := newTestWorld(o)
			NewMovementSystem().Update(w)
			if e := mustEntity(w, "o"); e.X != 10 || e.Y != 10 {
				t.Fatalf("entity moved to (%v,%v)", e.X, e.Y)
			}
		})
	}
}

func TestFlashTimerCountsDown(t *testing.T) {
	w := newTestWorld(testObj("a", project.TypeActive, 0, 0, 10, 10))
	a := mustEntity(w, "a")
	a.FlashTimer = 2
	ms := NewMovementSystem()
	for i := 0; i < 3; i++ {
		ms.Update(w)
	}
	if a.FlashTimer != 0 {
		t.Fatalf("expected 0, got %d", a.FlashTimer)
	}
}
