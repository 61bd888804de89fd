package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Dir is the directory searched for on-disk overrides, relative to the
// working directory.
var Dir = "prefabs"

// source reads one kind of prefab file. A copy under Dir wins over the
// embedded one so files can be edited while a session is running.
type source struct {
	embedded fs.FS
	subdir   string
	ext      string
}

var (
	specSource   = source{embedded: PrefabsFS, ext: ".yaml"}
	scriptSource = source{embedded: ScriptsFS, subdir: "scripts", ext: ".tengo"}
)

func (s source) read(name string) ([]byte, error) {
	rel, err := s.relPath(name)
	if err != nil {
		return nil, err
	}
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return fs.ReadFile(s.embedded, rel)
}

// relPath turns "runtime", "prefabs/runtime.yaml" or "scripts/wave" into the
// slash-separated path of the file inside the prefab tree.
func (s source) relPath(name string) (string, error) {
	p := strings.TrimPrefix(filepath.ToSlash(name), Dir+"/")
	if s.subdir != "" {
		p = strings.TrimPrefix(p, s.subdir+"/")
	}
	if p == "" || strings.Contains(p, "..") {
		return "", errors.New("prefabs: bad file name " + name)
	}
	if path.Ext(p) == "" {
		p += s.ext
	}
	if s.subdir != "" {
		p = s.subdir + "/" + p
	}
	return p, nil
}

// Load returns a YAML prefab file by name.
func Load(name string) ([]byte, error) {
	return specSource.read(name)
}

// LoadScript returns a tengo script by name; the extension is optional.
func LoadScript(name string) ([]byte, error) {
	return scriptSource.read(name)
}
