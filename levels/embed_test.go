package levels

import (
	"testing"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/project"
	"github.com/milk9111/acengine/session"
)

func TestNamesIncludesDemo(t *testing.T) {
	names := Names()
	found := false
	for _, n := range names {
		if n == Default {
			found = true
		}
	}
	if !found {
		t.Fatalf("Names() = %v, want %q", names, Default)
	}
}

func TestLoadDemoProject(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty_uses_default", in: ""},
		{name: "basename", in: "demo"},
		{name: "with_extension", in: "demo.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LoadProjectFromFS(tt.in)
			if err != nil {
				t.Fatalf("LoadProjectFromFS(%q): %v", tt.in, err)
			}
			if len(p.Frames) != 2 {
				t.Fatalf("frames = %d, want 2", len(p.Frames))
			}
			if p.Frames[0].Objects[0].Type != project.TypePlatform {
				t.Fatalf("first object = %s, want Platform", p.Frames[0].Objects[0].Type)
			}
		})
	}
}

func TestLoadMissingProject(t *testing.T) {
	if _, err := LoadProjectFromFS("nope"); err == nil {
		t.Fatalf("expected error for missing project")
	}
}

func TestDemoRoundTripsThroughYAML(t *testing.T) {
	p, err := LoadProjectFromFS(Default)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	data, err := project.Encode(p, project.FormatYAML)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := project.Decode(data, project.FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(back.Frames) != len(p.Frames) || len(back.Frames[1].Events) != len(p.Frames[1].Events) {
		t.Fatalf("yaml round trip lost frames or events")
	}
}

func TestDemoPlaysWithoutInput(t *testing.T) {
	p, err := LoadProjectFromFS(Default)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s, err := session.New(p, session.WithSeed(7))
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	if err := s.Start(0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 120; i++ {
		if _, err := s.Step(engine.Input{}); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	snap := s.Snapshot()
	if snap.FrameIndex != 0 || snap.Ended {
		t.Fatalf("idle demo left the first frame: %+v", snap.HUD)
	}

	var hero *engine.Entity
	s.Inspect(func(w *engine.World) {
		if found := w.Find("Hero"); len(found) == 1 {
			hero = found[0]
		}
		if hero != nil && !hero.Grounded {
			t.Errorf("hero should rest on the ground after two seconds")
		}
	})
	if hero == nil {
		t.Fatalf("hero missing from live world")
	}
}

func TestResolvePrefersDisk(t *testing.T) {
	p := project.NewProject("on disk")
	path := t.TempDir() + "/game.yaml"
	if err := project.Save(path, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(disk): %v", err)
	}
	if got.Name != "on disk" {
		t.Fatalf("name = %q, want on disk", got.Name)
	}

	got, err = Resolve("demo")
	if err != nil {
		t.Fatalf("Resolve(embedded): %v", err)
	}
	if got.Name != "Coin Meadow" {
		t.Fatalf("name = %q, want Coin Meadow", got.Name)
	}
}
