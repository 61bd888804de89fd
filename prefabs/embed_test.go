package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSourceRelPath(t *testing.T) {
	tests := []struct {
		name string
		src  source
		in   string
		want string
	}{
		{"spec_bare", specSource, "runtime", "runtime.yaml"},
		{"spec_with_ext", specSource, "objects.yaml", "objects.yaml"},
		{"spec_with_dir", specSource, "prefabs/runtime.yaml", "runtime.yaml"},
		{"script_bare", scriptSource, "spawn_wave", "scripts/spawn_wave.tengo"},
		{"script_with_subdir", scriptSource, "scripts/spawn_wave.tengo", "scripts/spawn_wave.tengo"},
		{"script_full", scriptSource, "prefabs/scripts/bonus_round", "scripts/bonus_round.tengo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.src.relPath(tt.in)
			if err != nil {
				t.Fatalf("relPath(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("relPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "../secrets"} {
		if _, err := specSource.relPath(bad); err == nil {
			t.Fatalf("relPath(%q) should fail", bad)
		}
	}
}

func TestLoadPrefersDiskCopy(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	defer func() { Dir = old }()

	embedded, err := LoadScript("spawn_wave")
	if err != nil {
		t.Fatalf("embedded script: %v", err)
	}
	if len(embedded) == 0 {
		t.Fatalf("embedded script is empty")
	}

	if err := os.WriteFile(filepath.Join(dir, "runtime.yaml"), []byte("fps: 12\n"), 0o644); err != nil {
		t.Fatalf("write runtime: %v", err)
	}
	rt, err := LoadRuntimeSpec()
	if err != nil {
		t.Fatalf("LoadRuntimeSpec: %v", err)
	}
	if rt.FPS != 12 {
		t.Fatalf("fps = %d, want disk override 12", rt.FPS)
	}

	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", "spawn_wave.tengo"), []byte("score += 7"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	data, err := LoadScript("spawn_wave")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if !strings.Contains(string(data), "score += 7") {
		t.Fatalf("script = %q, want disk copy", data)
	}
}

func TestLoadSpecReportsMissingFile(t *testing.T) {
	type anything struct{}
	if _, err := LoadSpec[anything]("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing spec")
	}
}
