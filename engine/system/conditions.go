package system

import (
	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/project"
)

type conditionFunc func(s *RuleSystem, w *engine.World, c *ruleCondition) bool

var conditionHandlers = map[project.ConditionType]conditionFunc{
	project.CondAlways:             func(*RuleSystem, *engine.World, *ruleCondition) bool { return true },
	project.CondNever:              func(*RuleSystem, *engine.World, *ruleCondition) bool { return false },
	project.CondOnce:               condOnce,
	project.CondAtStartOfFrame:     condAtStartOfFrame,
	project.CondAtEndOfFrame:       condAtEndOfFrame,
	project.CondKeyPressed:         condKeyPressed,
	project.CondKeyReleased:        condKeyReleased,
	project.CondEveryNMs:           condEveryNMs,
	project.CondTimerEquals:        condTimerEquals,
	project.CondCollidesWith:       condCollidesWith,
	project.CondOverlaps:           condCollidesWith,
	project.CondOverlapsBackdrop:   condOverlapsBackdrop,
	project.CondCompareCounter:     compareField(func(e *engine.Entity) float64 { return e.CounterValue }),
	project.CondCompareX:           compareField(func(e *engine.Entity) float64 { return e.X }),
	project.CondCompareY:           compareField(func(e *engine.Entity) float64 { return e.Y }),
	project.CondCompareSpeed:       compareField(func(e *engine.Entity) float64 { return e.Speed }),
	project.CondObjectVisible:      anyMatch(func(e *engine.Entity) bool { return e.Visible }),
	project.CondObjectInvisible:    anyMatch(func(e *engine.Entity) bool { return !e.Visible }),
	project.CondObjectCount:        condObjectCount,
	project.CondOutOfPlayfield:     condOutOfPlayfield,
	project.CondMouseClicked:       condMouseClicked,
	project.CondMouseOnObject:      condMouseOnObject,
	project.CondPickRandom:         condPickRandom,
	project.CondCompareGlobal:      condCompareGlobal,
	project.CondEvaluateExpression: condEvaluateExpression,
}

// condOnce is true the first time it is evaluated after a frame load.
func condOnce(_ *RuleSystem, _ *engine.World, c *ruleCondition) bool {
	if c.fired {
		return false
	}
	c.fired = true
	return true
}

func condAtStartOfFrame(_ *RuleSystem, w *engine.World, _ *ruleCondition) bool {
	return w.JustStarted
}

// condAtEndOfFrame holds once something earlier in the tick asked to leave
// the frame.
func condAtEndOfFrame(_ *RuleSystem, w *engine.World, _ *ruleCondition) bool {
	_, pending := w.Pending()
	return pending
}

func condKeyPressed(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	return w.Input.IsHeld(c.Params.String("key", ""))
}

func condKeyReleased(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	return w.Input.WasReleased(c.Params.String("key", ""))
}

func condEveryNMs(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	n, ok := c.Params.Int("ms", 1000)
	if !ok || n <= 0 {
		return false
	}
	return w.ElapsedMS()%n < w.FrameMS
}

func condTimerEquals(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	ms, ok := c.Params.Int("ms", 0)
	if !ok {
		return false
	}
	elapsed := w.ElapsedMS()
	return elapsed >= ms && elapsed < ms+w.FrameMS
}

// condCollidesWith pairs every target match with every "other" match. Only
// an entity paired with itself is excluded.
func condCollidesWith(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	src := w.Find(c.Target)
	if len(src) == 0 {
		return false
	}
	dst := w.Find(c.Params.String("other", ""))
	for _, a := range src {
		for _, b := range dst {
			if a.ID != b.ID && a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

func condOverlapsBackdrop(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	src := w.Find(c.Target)
	if len(src) == 0 {
		return false
	}
	backdrops := w.Find(string(project.TypeBackdrop))
	for _, a := range src {
		for _, b := range backdrops {
			if a.ID != b.ID && a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// compareField builds a condition that holds when any target match satisfies
// "field op value".
func compareField(field func(*engine.Entity) float64) conditionFunc {
	return func(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
		op := c.Params.String("op", "==")
		value, ok := c.Params.Number("value", 0)
		if !ok {
			return false
		}
		for _, e := range w.Find(c.Target) {
			if compare(field(e), op, value) {
				return true
			}
		}
		return false
	}
}

func anyMatch(pred func(*engine.Entity) bool) conditionFunc {
	return func(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
		for _, e := range w.Find(c.Target) {
			if pred(e) {
				return true
			}
		}
		return false
	}
}

func condObjectCount(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	value, ok := c.Params.Number("value", 0)
	if !ok {
		return false
	}
	return compare(float64(w.Count(c.Target)), c.Params.String("op", "=="), value)
}

func condOutOfPlayfield(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	margin := w.Tuning.PlayfieldMargin
	for _, e := range w.Find(c.Target) {
		if engine.OutsideRect(e.Bounds(), w.Width, w.Height, margin) {
			return true
		}
	}
	return false
}

func condMouseClicked(_ *RuleSystem, w *engine.World, _ *ruleCondition) bool {
	return w.Input.ButtonHeld(engine.MouseButtonPrimary)
}

func condMouseOnObject(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	for _, e := range w.Find(c.Target) {
		if engine.ContainsPoint(e.Bounds(), w.Input.MouseX, w.Input.MouseY) {
			return true
		}
	}
	return false
}

// condPickRandom takes a chance in [0, 1]. Values above 1 are read as a
// percentage.
func condPickRandom(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	chance, ok := c.Params.Number("chance", 0.5)
	if !ok || w.Rand == nil {
		return false
	}
	if chance > 1 {
		chance /= 100
	}
	return w.Rand.Float64() < chance
}

func condCompareGlobal(_ *RuleSystem, w *engine.World, c *ruleCondition) bool {
	idx, ok := c.Params.Int("index", 0)
	if !ok {
		return false
	}
	value, ok := c.Params.Number("value", 0)
	if !ok {
		return false
	}
	current, ok := w.Global(idx)
	if !ok {
		return false
	}
	return compare(current, c.Params.String("op", "=="), value)
}

func condEvaluateExpression(s *RuleSystem, w *engine.World, c *ruleCondition) bool {
	expr := c.Params.String("expr", "")
	if expr == "" {
		return false
	}
	return s.scripts.evalBool(w, expr)
}
