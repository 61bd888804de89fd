// Package render turns the live world into the draw list a host paints each
// tick. Nothing in here draws; hosts own their own backends.
package render

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/prefabs"
	"github.com/milk9111/acengine/project"
)

// Item is one entity ready to draw.
type Item struct {
	ID      string
	Name    string
	Type    project.ObjectType
	X, Y    float64
	W, H    float64
	Layer   int
	Shape   project.Shape
	Fill    string
	Outline string
	// Hidden is set on the flash ticks where the entity must not be drawn.
	Hidden bool
	Label  string
}

type HUD struct {
	Score     int
	Lives     int
	ScoreText string
	LivesText string
	FrameText string
}

type Snapshot struct {
	Tick       int
	FrameIndex int
	FrameCount int
	Width      float64
	Height     float64
	Background string
	Items      []Item
	HUD        HUD
	Ended      bool
	Paused     bool
}

// Build captures w. Items are ordered by layer, keeping list order within a
// layer. Dead, invisible and hidden-layer entities are left out.
func Build(w *engine.World) Snapshot {
	if w == nil {
		return Snapshot{}
	}

	snap := Snapshot{
		Tick:       w.Tick,
		FrameIndex: w.FrameIndex,
		FrameCount: w.FrameCount,
		Width:      w.Width,
		Height:     w.Height,
		Background: w.Background,
		Paused:     w.Paused,
		HUD: HUD{
			Score:     w.Score,
			Lives:     w.Lives,
			ScoreText: fmt.Sprintf("Score: %d", w.Score),
			LivesText: fmt.Sprintf("Lives: %d", w.Lives),
			FrameText: fmt.Sprintf("Frame %d/%d", w.FrameIndex+1, w.FrameCount),
		},
	}

	for _, e := range w.Entities() {
		if !e.Alive || !e.Visible || !w.LayerVisible(e.Layer) {
			continue
		}
		snap.Items = append(snap.Items, Item{
			ID:      e.ID,
			Name:    e.Name,
			Type:    e.Type,
			X:       e.X,
			Y:       e.Y,
			W:       e.W,
			H:       e.H,
			Layer:   e.Layer,
			Shape:   e.Shape,
			Fill:    e.Color,
			Outline: e.Outline,
			Hidden:  e.FlashTimer > 0 && w.Tick%4 < 2,
			Label:   label(w, e),
		})
	}
	slices.SortStableFunc(snap.Items, func(a, b Item) int {
		return a.Layer - b.Layer
	})
	return snap
}

func label(w *engine.World, e *engine.Entity) string {
	switch e.Type {
	case project.TypePlayer:
		return "P"
	case project.TypeEnemy:
		return "E"
	case project.TypeCounter:
		return strconv.FormatFloat(e.CounterValue, 'f', -1, 64)
	case project.TypeText:
		if e.TextContent == "" {
			return "Text"
		}
		return e.TextContent
	case project.TypeLives:
		return strconv.Itoa(w.Lives)
	case project.TypeTimer:
		return strconv.Itoa(w.ElapsedMS() / 1000)
	default:
		return ""
	}
}

// Color parses a stored colour, falling back when it is empty or invalid.
func Color(v string, fallback color.NRGBA) color.NRGBA {
	if v == "" {
		return fallback
	}
	c, err := prefabs.ParseColor(v)
	if err != nil {
		return fallback
	}
	return c
}
