package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/project"
	"github.com/milk9111/acengine/render"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTermInputHoldAndEdges(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	in := newTermInput(100 * time.Millisecond)
	in.now = clock.now

	in.press("Left")
	got := in.Sample()
	if !got.Held["Left"] || !got.Pressed["Left"] {
		t.Fatalf("first sample = %+v, want held and pressed", got)
	}

	clock.t = clock.t.Add(50 * time.Millisecond)
	got = in.Sample()
	if !got.Held["Left"] || got.Pressed["Left"] {
		t.Fatalf("second sample = %+v, want held only", got)
	}

	clock.t = clock.t.Add(100 * time.Millisecond)
	got = in.Sample()
	if got.Held["Left"] || !got.Released["Left"] {
		t.Fatalf("third sample = %+v, want released", got)
	}

	got = in.Sample()
	if got.Released["Left"] {
		t.Fatalf("release reported twice")
	}
}

func TestTermInputClickLastsOneSample(t *testing.T) {
	in := newTermInput(time.Second)
	in.click(15, 30)

	got := in.Sample()
	if !got.ButtonHeld(engine.MouseButtonPrimary) || got.MouseX != 15 || got.MouseY != 30 {
		t.Fatalf("click sample = %+v", got)
	}
	if in.Sample().ButtonHeld(engine.MouseButtonPrimary) {
		t.Fatalf("click should only last one sample")
	}
}

func TestCellSpan(t *testing.T) {
	c := cellSize{W: 10, H: 20}
	tests := []struct {
		name       string
		x, w       float64
		start, end int
	}{
		{name: "aligned", x: 0, w: 30, start: 0, end: 3},
		{name: "partial", x: 5, w: 10, start: 0, end: 2},
		{name: "tiny", x: 12, w: 1, start: 1, end: 2},
		{name: "zero_width", x: 40, w: 0, start: 4, end: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := c.span(tt.x, tt.w, c.W)
			if s != tt.start || e != tt.end {
				t.Fatalf("span(%v, %v) = %d..%d, want %d..%d", tt.x, tt.w, s, e, tt.start, tt.end)
			}
		})
	}

	x, y := c.toWorld(2, 1)
	if x != 25 || y != 30 {
		t.Fatalf("toWorld(2, 1) = %v, %v, want 25, 30", x, y)
	}
}

func TestScreenRendererDrawsItemsAndHUD(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 10)

	r := &screenRenderer{screen: screen, cell: cellSize{W: 10, H: 20}}
	r.Render(render.Snapshot{
		Width: 400, Height: 180, Background: "#000000",
		Items: []render.Item{
			{Type: project.TypePlayer, X: 20, Y: 40, W: 10, H: 20, Fill: "#ff0000"},
			{Type: project.TypeCoin, X: 100, Y: 40, W: 10, H: 20, Hidden: true},
		},
		HUD: render.HUD{ScoreText: "Score: 5", LivesText: "Lives: 2", FrameText: "Frame 1/1"},
	})

	if ch, _, _, _ := screen.GetContent(2, 2); ch != '@' {
		t.Fatalf("player cell = %q, want '@'", ch)
	}
	if ch, _, _, _ := screen.GetContent(10, 2); ch == '$' {
		t.Fatalf("hidden coin should not be drawn")
	}
	if ch, _, _, _ := screen.GetContent(0, 9); ch != 'S' {
		t.Fatalf("hud start = %q, want 'S'", ch)
	}
}
