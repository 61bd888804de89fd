package project

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/milk9111/acengine/prefabs"
)

const (
	NumGlobalValues  = 26
	NumGlobalStrings = 10
	NumAltValues     = 10
	NumAltStrings    = 3
	DefaultFPS       = 60
)

// NewID returns a short random id in the form the editor writes.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func NewProject(name string) *Project {
	if name == "" {
		name = "Untitled Application"
	}
	return &Project{
		Name:          name,
		Author:        "Team Flames",
		Version:       "1.0",
		WindowWidth:   800,
		WindowHeight:  600,
		FPS:           DefaultFPS,
		GlobalValues:  make([]float64, NumGlobalValues),
		GlobalStrings: make([]string, NumGlobalStrings),
		Lives:         3,
		Frames:        []Frame{NewFrame("Frame 1", 0)},
		BuildType:     "Standalone",
		BuildSettings: BuildSettings{Resizable: true},
	}
}

// EffectiveFPS is the project fps, or DefaultFPS when unset.
func (p *Project) EffectiveFPS() int {
	if p == nil || p.FPS <= 0 {
		return DefaultFPS
	}
	return p.FPS
}

func NewFrame(name string, index int) Frame {
	return Frame{
		ID:            NewID(),
		Name:          name,
		Index:         index,
		Width:         800,
		Height:        600,
		BgColor:       "#87CEEB",
		Layers:        []Layer{{Name: "Layer 1", Visible: true, Opacity: 255}},
		TransitionIn:  "None",
		TransitionOut: "None",
	}
}

func NewEventGroup() EventGroup {
	return EventGroup{ID: NewID(), Active: true}
}

func NewCondition(typ ConditionType, target string) Condition {
	return Condition{ID: NewID(), Type: typ, Target: target, Params: Params{}}
}

func NewAction(typ ActionType, target string) Action {
	return Action{ID: NewID(), Type: typ, Target: target, Params: Params{}}
}

// NewObject builds an object of typ at (x, y) from the type's template in
// prefabs/objects.yaml.
func NewObject(typ ObjectType, x, y float64) (Object, error) {
	lib, err := prefabs.LoadObjectLibrarySpec()
	if err != nil {
		return Object{}, fmt.Errorf("project: new object: %w", err)
	}
	return NewObjectFromSpec(lib.Template(string(typ)), typ, x, y), nil
}

// NewObjectFromSpec is NewObject with an already loaded template.
func NewObjectFromSpec(spec prefabs.ObjectSpec, typ ObjectType, x, y float64) Object {
	id := NewID()
	movement := Movement(spec.Movement)
	if movement == "" {
		movement = MovementStatic
	}
	shape := Shape(spec.Shape)
	if shape == "" {
		shape = ShapeRect
	}
	obj := Object{
		ID:               id,
		Type:             typ,
		Name:             fmt.Sprintf("%s_%s", typ, id[:4]),
		X:                x,
		Y:                y,
		W:                spec.W,
		H:                spec.H,
		Visible:          !spec.Hidden,
		Color:            spec.Color.Hex(),
		Outline:          spec.Outline.Hex(),
		Speed:            spec.Speed,
		Movement:         movement,
		Values:           make([]float64, NumAltValues),
		Strings:          make([]string, NumAltStrings),
		TextContent:      spec.TextContent,
		TextFont:         "Arial",
		TextSize:         14,
		LivesCount:       spec.LivesCount,
		Opacity:          255,
		ScaleX:           1,
		ScaleY:           1,
		Solid:            spec.Solid,
		ScoreValue:       spec.ScoreValue,
		DestroyOnCollect: spec.DestroyOnCollect,
		Shape:            shape,
		AnimSpeed:        100,
		CurrentAnim:      "Stopped",
		Animations: map[string][]int{
			"Stopped": {0},
			"Walking": {0, 1, 2, 1},
			"Running": {0, 1, 2, 3, 2, 1},
			"Jump":    {4},
		},
		Flags: map[string]any{},
	}
	if obj.W <= 0 {
		obj.W = 32
	}
	if obj.H <= 0 {
		obj.H = 32
	}
	if obj.Color == "" {
		obj.Color = "#888888"
	}
	if obj.Outline == "" {
		obj.Outline = "#666666"
	}
	return obj
}
