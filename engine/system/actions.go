package system

import (
	"context"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/logging"
	"github.com/milk9111/acengine/prefabs"
	"github.com/milk9111/acengine/project"
)

type actionFunc func(s *RuleSystem, w *engine.World, a project.Action)

var actionHandlers = map[project.ActionType]actionFunc{
	project.ActCreateObject: actCreateObject,
	project.ActDestroy:      eachTarget(func(_ *engine.World, e *engine.Entity, _ project.Params) { e.Alive = false }),
	project.ActSetPosition:  actSetPosition,
	project.ActSetX:         setNumber("value", 0, func(e *engine.Entity, v float64) { e.X = v }),
	project.ActSetY:         setNumber("value", 0, func(e *engine.Entity, v float64) { e.Y = v }),
	project.ActSetSpeed:     setNumber("value", 0, func(e *engine.Entity, v float64) { e.Speed = v }),
	project.ActSetDirection: setNumber("value", 0, setDirection),
	project.ActBounce: eachTarget(func(_ *engine.World, e *engine.Entity, _ project.Params) {
		e.DirX = -e.DirX
		e.Vel.X = -e.Vel.X
	}),
	project.ActStop: eachTarget(func(_ *engine.World, e *engine.Entity, _ project.Params) { e.Vel = cp.Vector{} }),
	project.ActReverse: eachTarget(func(_ *engine.World, e *engine.Entity, _ project.Params) {
		e.DirX = -e.DirX
		e.Vel = cp.Vector{X: -e.Vel.X, Y: -e.Vel.Y}
	}),
	project.ActMakeInvisible:       eachTarget(func(_ *engine.World, e *engine.Entity, _ project.Params) { e.Visible = false }),
	project.ActMakeVisible:         eachTarget(func(_ *engine.World, e *engine.Entity, _ project.Params) { e.Visible = true }),
	project.ActFlash:               setNumber("duration", 30, func(e *engine.Entity, v float64) { e.FlashTimer = int(v) }),
	project.ActSetCounter:          setNumber("value", 0, func(e *engine.Entity, v float64) { e.CounterValue = v }),
	project.ActAddToCounter:        setNumber("value", 1, func(e *engine.Entity, v float64) { e.CounterValue += v }),
	project.ActSubtractFromCounter: setNumber("value", 1, func(e *engine.Entity, v float64) { e.CounterValue -= v }),
	project.ActSetText: eachTarget(func(_ *engine.World, e *engine.Entity, p project.Params) {
		e.TextContent = p.String("value", "")
	}),
	project.ActSetColor:          actSetColor,
	project.ActSetLayer:          setNumber("value", 0, func(e *engine.Entity, v float64) { e.Layer = int(v) }),
	project.ActSetAlterableValue: actSetAlterableValue,
	project.ActBringToFront:      eachTarget(func(w *engine.World, e *engine.Entity, _ project.Params) { w.BringToFront(e) }),
	project.ActSendToBack:        eachTarget(func(w *engine.World, e *engine.Entity, _ project.Params) { w.SendToBack(e) }),

	project.ActSetScore:   worldNumber("value", 0, func(w *engine.World, v float64) { w.Score = int(v) }),
	project.ActAddToScore: worldNumber("value", 100, func(w *engine.World, v float64) { w.Score += int(v) }),
	project.ActSetLives: worldNumber("value", 3, func(w *engine.World, v float64) {
		w.Lives = int(v)
		endIfOutOfLives(w)
	}),
	project.ActAddLife: func(_ *RuleSystem, w *engine.World, _ project.Action) { w.Lives++ },
	project.ActSubtractLife: func(_ *RuleSystem, w *engine.World, _ project.Action) {
		w.Lives = max(0, w.Lives-1)
		endIfOutOfLives(w)
	},
	project.ActSetGlobalValue:   actGlobal(0, false),
	project.ActAddToGlobalValue: actGlobal(1, true),

	project.ActGoToFrame: func(_ *RuleSystem, w *engine.World, a project.Action) {
		if idx, ok := a.Params.Int("frame", 0); ok {
			w.RequestFrame(idx)
		}
	},
	project.ActNextFrame:      func(_ *RuleSystem, w *engine.World, _ project.Action) { w.RequestFrame(w.FrameIndex + 1) },
	project.ActPreviousFrame:  func(_ *RuleSystem, w *engine.World, _ project.Action) { w.RequestFrame(w.FrameIndex - 1) },
	project.ActRestartFrame:   func(_ *RuleSystem, w *engine.World, _ project.Action) { w.RequestFrame(w.FrameIndex) },
	project.ActEndApplication: func(_ *RuleSystem, w *engine.World, _ project.Action) { w.RequestEnd(engine.EndReasonApplication) },
	project.ActPause:          func(_ *RuleSystem, w *engine.World, _ project.Action) { w.Paused = true },
	project.ActUnpause:        func(_ *RuleSystem, w *engine.World, _ project.Action) { w.Paused = false },

	project.ActRunScript: actRunScript,
}

// eachTarget applies fn to every alive entity the action's target selects.
func eachTarget(fn func(w *engine.World, e *engine.Entity, p project.Params)) actionFunc {
	return func(_ *RuleSystem, w *engine.World, a project.Action) {
		for _, e := range w.Find(a.Target) {
			fn(w, e, a.Params)
		}
	}
}

// setNumber reads one numeric parameter and applies it to every target. A
// malformed value makes the whole action a no-op.
func setNumber(key string, def float64, fn func(e *engine.Entity, v float64)) actionFunc {
	return func(_ *RuleSystem, w *engine.World, a project.Action) {
		v, ok := a.Params.Number(key, def)
		if !ok {
			return
		}
		for _, e := range w.Find(a.Target) {
			fn(e, v)
		}
	}
}

func worldNumber(key string, def float64, fn func(w *engine.World, v float64)) actionFunc {
	return func(_ *RuleSystem, w *engine.World, a project.Action) {
		v, ok := a.Params.Number(key, def)
		if !ok {
			return
		}
		fn(w, v)
	}
}

// actSetPosition leaves an axis alone when its parameter is missing.
func actSetPosition(_ *RuleSystem, w *engine.World, a project.Action) {
	if _, ok := a.Params.Number("x", 0); !ok {
		return
	}
	if _, ok := a.Params.Number("y", 0); !ok {
		return
	}
	for _, e := range w.Find(a.Target) {
		e.X, _ = a.Params.Number("x", e.X)
		e.Y, _ = a.Params.Number("y", e.Y)
	}
}

// setDirection stores the authored direction and faces the entity along its
// sign.
func setDirection(e *engine.Entity, v float64) {
	e.Direction = v
	switch {
	case v < 0:
		e.DirX = -1
	case v > 0:
		e.DirX = 1
	}
}

func actSetColor(_ *RuleSystem, w *engine.World, a project.Action) {
	c, err := prefabs.ParseColor(a.Params.String("value", ""))
	if err != nil {
		return
	}
	hex := prefabs.YAMLColor{Color: c}.Hex()
	for _, e := range w.Find(a.Target) {
		e.Color = hex
	}
}

func actSetAlterableValue(_ *RuleSystem, w *engine.World, a project.Action) {
	idx, ok := a.Params.Int("index", 0)
	if !ok || idx < 0 || idx >= project.NumAltValues {
		return
	}
	v, ok := a.Params.Number("value", 0)
	if !ok {
		return
	}
	for _, e := range w.Find(a.Target) {
		for len(e.Values) < project.NumAltValues {
			e.Values = append(e.Values, 0)
		}
		e.Values[idx] = v
	}
}

// actGlobal sets or adds to a global value. Out of range indices are
// ignored.
func actGlobal(def float64, add bool) actionFunc {
	return func(_ *RuleSystem, w *engine.World, a project.Action) {
		idx, ok := a.Params.Int("index", 0)
		if !ok {
			return
		}
		v, ok := a.Params.Number("value", def)
		if !ok {
			return
		}
		if add {
			cur, ok := w.Global(idx)
			if !ok {
				return
			}
			v += cur
		}
		w.SetGlobal(idx, v)
	}
}

func actCreateObject(s *RuleSystem, w *engine.World, a project.Action) {
	x, okX := a.Params.Number("x", 0)
	y, okY := a.Params.Number("y", 0)
	if !okX || !okY {
		return
	}
	typ := project.ObjectType(a.Params.String("obj_type", string(project.TypeActive)))
	if _, err := spawnObject(w, typ, x, y); err != nil {
		s.logger.Warn(context.Background(), "create object failed",
			logging.String("type", string(typ)), logging.Err(err))
	}
}

// spawnObject builds a default object of typ and adds it to the world.
func spawnObject(w *engine.World, typ project.ObjectType, x, y float64) (*engine.Entity, error) {
	var obj project.Object
	if w.Tuning.Templates != nil {
		obj = project.NewObjectFromSpec(w.Tuning.Templates.Template(string(typ)), typ, x, y)
	} else {
		var err error
		obj, err = project.NewObject(typ, x, y)
		if err != nil {
			return nil, err
		}
	}
	return w.Spawn(obj), nil
}

func endIfOutOfLives(w *engine.World) {
	if w.Lives <= 0 {
		w.RequestEnd(engine.EndReasonLives)
	}
}

func actRunScript(s *RuleSystem, w *engine.World, a project.Action) {
	src := a.Params.String("script", "")
	name := a.Params.String("file", "")
	if src == "" && name != "" {
		data, err := prefabs.LoadScript(name)
		if err != nil {
			s.logger.Warn(context.Background(), "load script failed",
				logging.String("file", name), logging.Err(err))
			return
		}
		src = string(data)
	}
	if src == "" {
		return
	}
	s.scripts.run(w, src, a.Target)
}
