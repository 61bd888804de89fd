package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says what a changed file means to a running session.
type ChangeKind int

const (
	ChangeRuntime   ChangeKind = iota // runtime.yaml: tuning, keys, fps
	ChangeTemplates                   // any other prefab YAML
	ChangeScript                      // a tengo script
	ChangeProject                     // a project document
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeRuntime:
		return "runtime"
	case ChangeTemplates:
		return "templates"
	case ChangeScript:
		return "script"
	case ChangeProject:
		return "project"
	default:
		return "unknown"
	}
}

type Change struct {
	Path string
	Kind ChangeKind
}

// Classify reports the kind of change an edit to path represents, or false
// when the file is of no interest to a session.
func Classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if strings.EqualFold(filepath.Base(path), "runtime.yaml") {
			return ChangeRuntime, true
		}
		return ChangeTemplates, true
	case ".tengo":
		return ChangeScript, true
	case ".json", ".acp":
		return ChangeProject, true
	}
	return 0, false
}

const debounce = 100 * time.Millisecond

// Watcher turns filesystem notifications in the watched directories into
// Changes. Editors often write a file several times in a row, so repeats for
// the same path within the debounce window are dropped.
type Watcher struct {
	fsw     *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:     fsw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.Changes)
	defer close(w.Errors)

	seen := make(map[string]time.Time)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			kind, ok := Classify(ev.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if prev, ok := seen[ev.Name]; ok && now.Sub(prev) < debounce {
				continue
			}
			seen[ev.Name] = now
			select {
			case w.Changes <- Change{Path: ev.Name, Kind: kind}:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}
