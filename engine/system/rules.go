// Package system holds the per-tick systems of a play session: the rule
// engine, movement and physics, built-in contact consequences and pruning.
package system

import (
	"context"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/logging"
	"github.com/milk9111/acengine/project"
)

// RuleSet is the compiled form of one frame's event groups. It owns the
// per-condition state (the Once flag) and is rebuilt on every frame load.
type RuleSet struct {
	groups []ruleGroup
}

type ruleGroup struct {
	id         string
	active     bool
	comment    bool
	conditions []*ruleCondition
	actions    []project.Action
}

type ruleCondition struct {
	project.Condition
	fired bool
}

func CompileRules(f *project.Frame) *RuleSet {
	rs := &RuleSet{}
	if f == nil {
		return rs
	}
	rs.groups = make([]ruleGroup, 0, len(f.Events))
	for _, g := range f.Events {
		g = g.Clone()
		rg := ruleGroup{
			id:      g.ID,
			active:  g.Active,
			comment: g.IsComment(),
			actions: g.Actions,
		}
		for _, c := range g.Conditions {
			rg.conditions = append(rg.conditions, &ruleCondition{Condition: c})
		}
		rs.groups = append(rs.groups, rg)
	}
	return rs
}

// RuleSystem runs the loaded rule set against the world once per tick.
type RuleSystem struct {
	rules   *RuleSet
	scripts *scriptHost
	logger  logging.Logger
	fired   int
}

func NewRuleSystem(logger logging.Logger) *RuleSystem {
	if logger == nil {
		logger = logging.Noop()
	}
	return &RuleSystem{
		rules:   &RuleSet{},
		scripts: newScriptHost(logger),
		logger:  logger,
	}
}

// Load replaces the active rules, resetting every Once condition.
func (s *RuleSystem) Load(rs *RuleSet) {
	if rs == nil {
		rs = &RuleSet{}
	}
	s.rules = rs
}

// Fired returns how many groups ran their actions during the last Update.
func (s *RuleSystem) Fired() int {
	return s.fired
}

// Update evaluates groups in authored order. Conditions short-circuit on the
// first false one, and a group without conditions never fires.
func (s *RuleSystem) Update(w *engine.World) {
	s.fired = 0
	if w == nil || s.rules == nil {
		return
	}

	for i := range s.rules.groups {
		g := &s.rules.groups[i]
		if !g.active || g.comment || len(g.conditions) == 0 {
			continue
		}

		matched := true
		for _, c := range g.conditions {
			met := s.evalCondition(w, c)
			if c.Negated {
				met = !met
			}
			if !met {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		s.fired++
		for _, a := range g.actions {
			s.runAction(w, a)
		}
	}
}

func (s *RuleSystem) evalCondition(w *engine.World, c *ruleCondition) bool {
	fn, ok := conditionHandlers[c.Type]
	if !ok {
		s.logger.Debug(context.Background(), "unknown condition", logging.String("type", string(c.Type)))
		return false
	}
	return fn(s, w, c)
}

func (s *RuleSystem) runAction(w *engine.World, a project.Action) {
	fn, ok := actionHandlers[a.Type]
	if !ok {
		s.logger.Debug(context.Background(), "unknown action", logging.String("type", string(a.Type)))
		return
	}
	fn(s, w, a)
}

// compare applies a comparison operator from the editor's op list. Unknown
// operators are false.
func compare(a float64, op string, b float64) bool {
	switch op {
	case "==", "=":
		return a == b
	case "!=", "<>":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	default:
		return false
	}
}
