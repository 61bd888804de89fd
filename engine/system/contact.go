package system

import (
	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/project"
)

// ContactSystem applies the built-in Player contacts after movement: coins
// are collected, and enemies are either stomped or hurt the player.
type ContactSystem struct{}

func NewContactSystem() *ContactSystem { return &ContactSystem{} }

func (s *ContactSystem) Update(w *engine.World) {
	if w == nil {
		return
	}

	players := w.Find(string(project.TypePlayer))
	if len(players) == 0 {
		return
	}

	for _, p := range players {
		for _, c := range w.Entities() {
			if !c.Alive || c.Type != project.TypeCoin || !p.Overlaps(c) {
				continue
			}
			w.Score += c.ScoreValue
			if c.DestroyOnCollect {
				c.Alive = false
			}
			w.Emit(engine.EventCoinCollected, c.ID, c.ScoreValue)
		}
	}

	t := w.Tuning
	for _, p := range players {
		for _, en := range w.Entities() {
			if !en.Alive || en.Type != project.TypeEnemy || !p.Overlaps(en) {
				continue
			}
			if p.Vel.Y > 0 && p.Bottom()-t.StompTolerance < en.Top() {
				en.Alive = false
				p.Vel.Y = t.StompBounce
				w.Score += t.StompBonus
				w.Emit(engine.EventEnemyStomped, en.ID, t.StompBonus)
				continue
			}

			w.Lives--
			p.X, p.Y = t.RespawnX, t.RespawnY
			p.Vel.Y = 0
			w.Emit(engine.EventPlayerDamaged, p.ID, w.Lives)
			endIfOutOfLives(w)
		}
	}
}
