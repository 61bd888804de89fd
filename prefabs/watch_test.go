package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsRelevantFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}
	target := filepath.Join(dir, "game.json")
	if err := os.WriteFile(target, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}

	select {
	case c := <-w.Changes:
		if filepath.Base(c.Path) != "game.json" {
			t.Fatalf("change for %q, want game.json", c.Path)
		}
		if c.Kind != ChangeProject {
			t.Fatalf("kind = %v, want project", c.Kind)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no watcher event")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		want bool
	}{
		{path: "prefabs/runtime.yaml", kind: ChangeRuntime, want: true},
		{path: "prefabs/objects.yaml", kind: ChangeTemplates, want: true},
		{path: "a/b.YML", kind: ChangeTemplates, want: true},
		{path: "scripts/spawn_wave.tengo", kind: ChangeScript, want: true},
		{path: "demo.json", kind: ChangeProject, want: true},
		{path: "game.acp", kind: ChangeProject, want: true},
		{path: "readme.md", want: false},
	}
	for _, tt := range tests {
		kind, ok := Classify(tt.path)
		if ok != tt.want {
			t.Fatalf("%s watched = %v, want %v", tt.path, ok, tt.want)
		}
		if ok && kind != tt.kind {
			t.Fatalf("%s kind = %v, want %v", tt.path, kind, tt.kind)
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
