package render

import (
	"image/color"
	"testing"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/project"
)

func testWorld(layers []project.Layer, objs ...project.Object) *engine.World {
	p := &project.Project{FPS: 60, Score: 10, Lives: 2, Frames: make([]project.Frame, 3)}
	w := engine.NewWorld(p, 1, engine.DefaultTuning())
	w.LoadFrame(&project.Frame{Width: 640, Height: 480, BgColor: "#87CEEB", Layers: layers, Objects: objs}, 1)
	return w
}

func item(id string, typ project.ObjectType, layer int) project.Object {
	return project.Object{ID: id, Name: id, Type: typ, Layer: layer, Visible: true, W: 10, H: 10, Color: "#ffffff"}
}

func ids(items []Item) string {
	s := ""
	for _, it := range items {
		s += it.ID
	}
	return s
}

func TestBuildOrdersByLayerStably(t *testing.T) {
	w := testWorld(nil,
		item("a", project.TypeActive, 2),
		item("b", project.TypeActive, 0),
		item("c", project.TypeActive, 2),
		item("d", project.TypeActive, 1),
		item("e", project.TypeActive, 0),
	)
	snap := Build(w)
	if got := ids(snap.Items); got != "bedac" {
		t.Fatalf("expected bedac, got %s", got)
	}
}

func TestBuildFilters(t *testing.T) {
	invisible := item("inv", project.TypeActive, 0)
	invisible.Visible = false

	w := testWorld(
		[]project.Layer{{Name: "bg", Visible: true}, {Name: "hidden", Visible: false}},
		item("keep", project.TypeActive, 0),
		invisible,
		item("onhidden", project.TypeActive, 1),
		item("dead", project.TypeActive, 0),
		item("undeclared", project.TypeActive, 5),
	)
	e, _ := w.Entity("dead")
	e.Alive = false

	if got := ids(Build(w).Items); got != "keepundeclared" {
		t.Fatalf("expected keep and undeclared only, got %s", got)
	}
}

func TestFlashSuppression(t *testing.T) {
	w := testWorld(nil, item("f", project.TypeActive, 0))
	e, _ := w.Entity("f")
	e.FlashTimer = 10

	cases := []struct {
		tick   int
		hidden bool
	}{
		{0, true}, {1, true}, {2, false}, {3, false}, {4, true}, {7, false},
	}
	for _, c := range cases {
		w.Tick = c.tick
		if got := Build(w).Items[0].Hidden; got != c.hidden {
			t.Fatalf("tick %d: expected hidden=%v, got %v", c.tick, c.hidden, got)
		}
	}

	e.FlashTimer = 0
	w.Tick = 0
	if Build(w).Items[0].Hidden {
		t.Fatalf("no flash should never hide")
	}
}

func TestLabelsAndHUD(t *testing.T) {
	counter := item("cnt", project.TypeCounter, 0)
	counter.CounterValue = 2.5
	text := item("txt", project.TypeText, 0)
	text.TextContent = "Hello"

	w := testWorld(nil,
		item("p", project.TypePlayer, 0),
		item("e", project.TypeEnemy, 0),
		counter,
		text,
		item("l", project.TypeLives, 0),
		item("a", project.TypeActive, 0),
	)
	snap := Build(w)

	want := map[string]string{"p": "P", "e": "E", "cnt": "2.5", "txt": "Hello", "l": "2", "a": ""}
	for _, it := range snap.Items {
		if it.Label != want[it.ID] {
			t.Fatalf("%s: expected label %q, got %q", it.ID, want[it.ID], it.Label)
		}
	}

	if snap.HUD.ScoreText != "Score: 10" || snap.HUD.LivesText != "Lives: 2" || snap.HUD.FrameText != "Frame 2/3" {
		t.Fatalf("unexpected HUD: %+v", snap.HUD)
	}
	if snap.Background != "#87CEEB" || snap.Width != 640 {
		t.Fatalf("unexpected frame data: %+v", snap)
	}
}

func TestColor(t *testing.T) {
	fallback := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	if got := Color("", fallback); got != fallback {
		t.Fatalf("empty should fall back")
	}
	if got := Color("bogus!", fallback); got != fallback {
		t.Fatalf("invalid should fall back")
	}
	if got := Color("#ff0000", fallback); got != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("got %v", got)
	}
}
