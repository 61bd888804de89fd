// Package levels embeds the sample projects shipped with the runtime.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/acengine/project"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is the project the hosts play when none is given.
const Default = "demo"

// Names lists the embedded projects without their extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// LoadProjectFromFS decodes the embedded project called name (.json optional).
func LoadProjectFromFS(name string) (*project.Project, error) {
	if name == "" {
		name = Default
	}
	if path.Ext(name) == "" {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	p, err := project.Decode(data, project.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("decode level %s: %w", name, err)
	}
	return p, nil
}

// Resolve loads name from disk when such a file exists and from the embedded
// projects otherwise.
func Resolve(name string) (*project.Project, error) {
	if name != "" {
		if _, err := os.Stat(name); err == nil {
			return project.Load(name)
		}
	}
	return LoadProjectFromFS(name)
}
