package engine

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/acengine/project"
)

// Entity is a live copy of an authored object plus the state that only
// exists while a frame is playing.
type Entity struct {
	project.Object

	Vel        cp.Vector `json:"vel"`
	Grounded   bool      `json:"grounded"`
	Alive      bool      `json:"alive"`
	FlashTimer int       `json:"flash_timer"`
	DirX       float64   `json:"dir_x"`
	Gravity    bool      `json:"gravity"`
}

// NewEntity clones obj for play. Everything but Static movement starts facing
// right, and Player/Platform movers fall under gravity.
func NewEntity(obj project.Object) *Entity {
	e := &Entity{Object: obj.Clone(), Alive: true}
	if obj.Movement != project.MovementStatic {
		e.DirX = 1
	}
	e.Gravity = obj.Movement == project.MovementPlayer || obj.Movement == project.MovementPlatform
	return e
}

// newSpawnedEntity is used for objects created by rules at runtime.
func newSpawnedEntity(obj project.Object) *Entity {
	return &Entity{Object: obj.Clone(), Alive: true, DirX: 1}
}

func (e *Entity) Bounds() cp.BB {
	return BoundsOf(e.X, e.Y, e.W, e.H)
}

func (e *Entity) Overlaps(o *Entity) bool {
	if e == nil || o == nil {
		return false
	}
	return Overlaps(e.Bounds(), o.Bounds())
}

// Matches reports whether selector names this entity by name or by type. An
// empty selector matches every entity.
func (e *Entity) Matches(selector string) bool {
	if selector == "" {
		return true
	}
	return e.Name == selector || string(e.Type) == selector
}

func (e *Entity) Top() float64    { return e.Y }
func (e *Entity) Bottom() float64 { return e.Y + e.H }
