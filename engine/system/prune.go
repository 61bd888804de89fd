package system

import "github.com/milk9111/acengine/engine"

// PruneSystem drops entities marked dead during the tick.
type PruneSystem struct {
	pruned int
}

func NewPruneSystem() *PruneSystem { return &PruneSystem{} }

func (s *PruneSystem) Update(w *engine.World) {
	if w == nil {
		return
	}
	s.pruned = w.Prune()
}

// Pruned returns how many entities the last Update removed.
func (s *PruneSystem) Pruned() int {
	return s.pruned
}
