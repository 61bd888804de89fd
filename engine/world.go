// Package engine holds the live simulation state of a play session: the
// World (score, lives, globals, tick, rng and the ordered entity list), the
// per-tick input snapshot, status events and the System/Scheduler contract
// the rule and physics systems implement.
package engine

import (
	"encoding/json"
	"math/rand/v2"
	"slices"

	"github.com/milk9111/acengine/project"
)

type TransitionKind int

const (
	TransitionFrame TransitionKind = iota + 1
	TransitionEnd
)

const (
	EndReasonApplication = "end_application"
	EndReasonLives       = "out_of_lives"
	EndReasonOutOfRange  = "frame_out_of_range"
	EndReasonStopped     = "stopped"
	EndReasonQuitKey     = "quit_key"
)

// Transition is a scene change requested during a tick. It is applied by the
// session once the tick's systems have all run.
type Transition struct {
	Kind   TransitionKind
	Frame  int
	Reason string
}

// World is the simulation context handed to every system.
type World struct {
	entities []*Entity
	byID     map[string]*Entity
	events   EventQueue
	pending  *Transition

	Score         int
	Lives         int
	Globals       []float64
	GlobalStrings []string

	Tick        int
	FrameMS     int
	FrameIndex  int
	FrameCount  int
	Width       float64
	Height      float64
	Background  string
	Layers      []project.Layer
	JustStarted bool
	Paused      bool

	Input  Input
	Rand   *rand.Rand
	Tuning Tuning
}

// NewWorld seeds session state from p. Score, lives and globals live for the
// whole session; frame loads leave them alone.
func NewWorld(p *project.Project, seed int64, tuning Tuning) *World {
	fps := project.DefaultFPS
	if p != nil {
		fps = p.EffectiveFPS()
	}
	w := &World{
		byID:          map[string]*Entity{},
		Globals:       make([]float64, project.NumGlobalValues),
		GlobalStrings: make([]string, project.NumGlobalStrings),
		FrameMS:       FrameDuration(fps),
		Rand:          rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		Tuning:        tuning,
	}
	if p != nil {
		w.Score = p.Score
		w.Lives = p.Lives
		copy(w.Globals, p.GlobalValues)
		copy(w.GlobalStrings, p.GlobalStrings)
		w.FrameCount = len(p.Frames)
	}
	return w
}

// FrameDuration is the tick length in whole milliseconds, never below 1.
func FrameDuration(fps int) int {
	if fps <= 0 {
		fps = project.DefaultFPS
	}
	return max(1, 1000/fps)
}

// LoadFrame replaces the live entities with fresh copies of f's objects and
// restarts the frame clock.
func (w *World) LoadFrame(f *project.Frame, index int) {
	w.entities = nil
	clear(w.byID)
	w.pending = nil

	w.FrameIndex = index
	w.Tick = 0
	w.JustStarted = true
	if f == nil {
		return
	}
	w.Width = f.Width
	w.Height = f.Height
	w.Background = f.BgColor
	w.Layers = slices.Clone(f.Layers)
	for _, obj := range f.Objects {
		w.add(NewEntity(obj))
	}
	w.Emit(EventFrameLoaded, "", f.Name)
}

// Spawn adds a runtime-created object. It faces right and ignores gravity
// regardless of its movement.
func (w *World) Spawn(obj project.Object) *Entity {
	e := newSpawnedEntity(obj)
	w.add(e)
	return e
}

func (w *World) add(e *Entity) {
	if w.byID == nil {
		w.byID = map[string]*Entity{}
	}
	for e.ID == "" || w.byID[e.ID] != nil {
		e.ID = project.NewID()
	}
	w.byID[e.ID] = e
	w.entities = append(w.entities, e)
}

// Entities returns the live list in draw order, dead-but-unpruned entries
// included.
func (w *World) Entities() []*Entity {
	return w.entities
}

func (w *World) Entity(id string) (*Entity, bool) {
	e, ok := w.byID[id]
	return e, ok
}

// Find returns the alive entities whose name or type equals selector, in list
// order. An empty selector matches any alive entity.
func (w *World) Find(selector string) []*Entity {
	var out []*Entity
	for _, e := range w.entities {
		if e.Alive && e.Matches(selector) {
			out = append(out, e)
		}
	}
	return out
}

// Count is len(Find(selector)) without the allocation.
func (w *World) Count(selector string) int {
	n := 0
	for _, e := range w.entities {
		if e.Alive && e.Matches(selector) {
			n++
		}
	}
	return n
}

// Prune drops dead entities and returns how many were removed.
func (w *World) Prune() int {
	before := len(w.entities)
	w.entities = slices.DeleteFunc(w.entities, func(e *Entity) bool {
		if e.Alive {
			return false
		}
		delete(w.byID, e.ID)
		return true
	})
	return before - len(w.entities)
}

func (w *World) BringToFront(e *Entity) {
	w.reorder(e, true)
}

func (w *World) SendToBack(e *Entity) {
	w.reorder(e, false)
}

func (w *World) reorder(e *Entity, front bool) {
	idx := slices.Index(w.entities, e)
	if idx < 0 {
		return
	}
	w.entities = slices.Delete(w.entities, idx, idx+1)
	if front {
		w.entities = append(w.entities, e)
		return
	}
	w.entities = slices.Insert(w.entities, 0, e)
}

// ElapsedMS is the time since the frame was loaded.
func (w *World) ElapsedMS() int {
	return w.Tick * w.FrameMS
}

// LayerVisible reports whether entities on layer idx are drawn.
func (w *World) LayerVisible(idx int) bool {
	if idx < 0 || idx >= len(w.Layers) {
		return true
	}
	return w.Layers[idx].Visible
}

// RequestFrame asks for frame idx to be loaded at the end of the tick. The
// last request wins unless the session is already ending.
func (w *World) RequestFrame(idx int) {
	if w.pending != nil && w.pending.Kind == TransitionEnd {
		return
	}
	w.pending = &Transition{Kind: TransitionFrame, Frame: idx}
}

// RequestEnd ends the session at the end of the tick. It cannot be undone.
func (w *World) RequestEnd(reason string) {
	if w.pending != nil && w.pending.Kind == TransitionEnd {
		return
	}
	w.pending = &Transition{Kind: TransitionEnd, Reason: reason}
}

func (w *World) Pending() (Transition, bool) {
	if w.pending == nil {
		return Transition{}, false
	}
	return *w.pending, true
}

func (w *World) ClearPending() {
	w.pending = nil
}

// Global returns global value idx. Out of range indices report false.
func (w *World) Global(idx int) (float64, bool) {
	if idx < 0 || idx >= len(w.Globals) {
		return 0, false
	}
	return w.Globals[idx], true
}

func (w *World) SetGlobal(idx int, v float64) bool {
	if idx < 0 || idx >= len(w.Globals) {
		return false
	}
	w.Globals[idx] = v
	return true
}

func (w *World) Events() *EventQueue {
	return &w.events
}

// Emit queues a status event stamped with the current tick and frame.
func (w *World) Emit(typ EventType, entityID string, data any) {
	w.events.Push(Event{Type: typ, Tick: w.Tick, Frame: w.FrameIndex, EntityID: entityID, Data: data})
}

type worldDump struct {
	Frame    int       `json:"frame"`
	Tick     int       `json:"tick"`
	Score    int       `json:"score"`
	Lives    int       `json:"lives"`
	Globals  []float64 `json:"globals"`
	Paused   bool      `json:"paused"`
	Entities []*Entity `json:"entities"`
}

// DumpJSON renders the live state for debugging.
func (w *World) DumpJSON() ([]byte, error) {
	return json.MarshalIndent(worldDump{
		Frame:    w.FrameIndex,
		Tick:     w.Tick,
		Score:    w.Score,
		Lives:    w.Lives,
		Globals:  w.Globals,
		Paused:   w.Paused,
		Entities: w.entities,
	}, "", "  ")
}
