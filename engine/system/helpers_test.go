package system

import (
	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/project"
)

func newTestWorld(objs ...project.Object) *engine.World {
	p := &project.Project{FPS: 60, Lives: 3, Frames: make([]project.Frame, 2)}
	w := engine.NewWorld(p, 1, engine.DefaultTuning())
	w.LoadFrame(&project.Frame{ID: "f", Width: 800, Height: 600, Objects: objs}, 0)
	w.Events().Drain()
	return w
}

func testObj(id string, typ project.ObjectType, x, y, width, height float64) project.Object {
	return project.Object{
		ID: id, Name: id, Type: typ, X: x, Y: y, W: width, H: height,
		Visible: true, Movement: project.MovementStatic,
	}
}

func player(id string, x, y float64) project.Object {
	o := testObj(id, project.TypePlayer, x, y, 32, 32)
	o.Movement = project.MovementPlayer
	o.Speed = 5
	return o
}

func platform(id string, x, y, width float64) project.Object {
	o := testObj(id, project.TypePlatform, x, y, width, 32)
	o.Solid = true
	return o
}

func cond(typ project.ConditionType, target string, params project.Params) project.Condition {
	return project.Condition{ID: string(typ), Type: typ, Target: target, Params: params}
}

func act(typ project.ActionType, target string, params project.Params) project.Action {
	return project.Action{ID: string(typ), Type: typ, Target: target, Params: params}
}

func group(conds []project.Condition, acts ...project.Action) project.EventGroup {
	return project.EventGroup{ID: "g", Active: true, Conditions: conds, Actions: acts}
}

func rulesFor(groups ...project.EventGroup) *RuleSystem {
	rs := NewRuleSystem(nil)
	rs.Load(CompileRules(&project.Frame{Events: groups}))
	return rs
}

// tick runs one rule pass and advances the frame clock the way the session
// does.
func tick(rs *RuleSystem, w *engine.World) {
	rs.Update(w)
	w.JustStarted = false
	w.Tick++
}

func mustEntity(w *engine.World, id string) *engine.Entity {
	e, ok := w.Entity(id)
	if !ok {
		panic("missing entity " + id)
	}
	return e
}
