package system

import (
	"context"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/logging"
	"github.com/milk9111/acengine/project"
)

const (
	scriptTimeout = 50 * time.Millisecond
	exprResultVar = "__result"
)

// Modules scripts may import. os and the like stay out of reach.
var scriptModules = []string{"math", "text", "times", "rand", "fmt", "enum", "json"}

type compiledScript struct {
	compiled *tengo.Compiled
	err      error
}

// scriptHost compiles and runs tengo sources for "Evaluate expression" and
// "Run script". Compiled programs are cached by source text; the world they
// act on is bound for the duration of one run.
type scriptHost struct {
	logger logging.Logger
	cache  map[string]*compiledScript
	world  *engine.World
}

func newScriptHost(logger logging.Logger) *scriptHost {
	return &scriptHost{logger: logger, cache: map[string]*compiledScript{}}
}

func (h *scriptHost) compile(src string) (*tengo.Compiled, error) {
	if c, ok := h.cache[src]; ok {
		return c.compiled, c.err
	}

	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap(scriptModules...))
	_ = script.Add("score", 0)
	_ = script.Add("lives", 0)
	_ = script.Add("tick", 0)
	_ = script.Add("frame", 0)
	_ = script.Add("elapsed_ms", 0)
	_ = script.Add("target", "")
	for name, fn := range h.functions() {
		_ = script.Add(name, fn)
	}

	compiled, err := script.Compile()
	h.cache[src] = &compiledScript{compiled: compiled, err: err}
	if err != nil {
		h.logger.Warn(context.Background(), "script compile failed", logging.Err(err))
	}
	return compiled, err
}

func (h *scriptHost) bind(w *engine.World, c *tengo.Compiled, target string) error {
	vars := map[string]any{
		"score":      w.Score,
		"lives":      w.Lives,
		"tick":       w.Tick,
		"frame":      w.FrameIndex,
		"elapsed_ms": w.ElapsedMS(),
		"target":     target,
	}
	for name, v := range vars {
		if !c.IsDefined(name) {
			continue
		}
		if err := c.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

func (h *scriptHost) exec(w *engine.World, c *tengo.Compiled, target string) error {
	if err := h.bind(w, c, target); err != nil {
		return err
	}
	h.world = w
	defer func() { h.world = nil }()

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	return c.RunContext(ctx)
}

// run executes src and writes score and lives back to the world.
func (h *scriptHost) run(w *engine.World, src, target string) bool {
	c, err := h.compile(src)
	if err != nil {
		return false
	}
	if err := h.exec(w, c, target); err != nil {
		h.logger.Warn(context.Background(), "script run failed", logging.Err(err))
		return false
	}

	if c.IsDefined("score") {
		w.Score = c.Get("score").Int()
	}
	if c.IsDefined("lives") {
		if lives := c.Get("lives").Int(); lives != w.Lives {
			w.Lives = lives
			endIfOutOfLives(w)
		}
	}
	return true
}

// evalBool evaluates a single expression for its truthiness.
func (h *scriptHost) evalBool(w *engine.World, expr string) bool {
	c, err := h.compile(exprResultVar + " := (" + expr + ")")
	if err != nil {
		return false
	}
	if err := h.exec(w, c, ""); err != nil {
		h.logger.Warn(context.Background(), "expression failed",
			logging.String("expr", expr), logging.Err(err))
		return false
	}
	return c.Get(exprResultVar).Bool()
}

func (h *scriptHost) functions() map[string]*tengo.UserFunction {
	fn := func(name string, f tengo.CallableFunc) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: f}
	}

	return map[string]*tengo.UserFunction{
		"count": fn("count", func(args ...tengo.Object) (tengo.Object, error) {
			if h.world == nil {
				return &tengo.Int{}, nil
			}
			return &tengo.Int{Value: int64(h.world.Count(argString(args, 0)))}, nil
		}),

		"destroy": fn("destroy", func(args ...tengo.Object) (tengo.Object, error) {
			if h.world == nil {
				return &tengo.Int{}, nil
			}
			n := 0
			for _, e := range h.world.Find(argString(args, 0)) {
				e.Alive = false
				n++
			}
			return &tengo.Int{Value: int64(n)}, nil
		}),

		"spawn": fn("spawn", func(args ...tengo.Object) (tengo.Object, error) {
			if h.world == nil || len(args) < 1 {
				return tengo.UndefinedValue, nil
			}
			x, _ := argFloat(args, 1)
			y, _ := argFloat(args, 2)
			e, err := spawnObject(h.world, project.ObjectType(argString(args, 0)), x, y)
			if err != nil {
				return &tengo.Error{Value: &tengo.String{Value: err.Error()}}, nil
			}
			return &tengo.String{Value: e.ID}, nil
		}),

		"get_global": fn("get_global", func(args ...tengo.Object) (tengo.Object, error) {
			if h.world == nil {
				return tengo.UndefinedValue, nil
			}
			idx, ok := argFloat(args, 0)
			if !ok {
				return tengo.UndefinedValue, nil
			}
			v, ok := h.world.Global(int(idx))
			if !ok {
				return tengo.UndefinedValue, nil
			}
			return &tengo.Float{Value: v}, nil
		}),

		"set_global": fn("set_global", func(args ...tengo.Object) (tengo.Object, error) {
			if h.world == nil {
				return tengo.FalseValue, nil
			}
			idx, okIdx := argFloat(args, 0)
			v, okV := argFloat(args, 1)
			if !okIdx || !okV || !h.world.SetGlobal(int(idx), v) {
				return tengo.FalseValue, nil
			}
			return tengo.TrueValue, nil
		}),

		"key": fn("key", func(args ...tengo.Object) (tengo.Object, error) {
			if h.world != nil && h.world.Input.IsHeld(argString(args, 0)) {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}),

		"random": fn("random", func(args ...tengo.Object) (tengo.Object, error) {
			if h.world == nil || h.world.Rand == nil {
				return &tengo.Float{}, nil
			}
			return &tengo.Float{Value: h.world.Rand.Float64()}, nil
		}),
	}
}

func argString(args []tengo.Object, i int) string {
	if i >= len(args) || args[i] == nil {
		return ""
	}
	if s, ok := args[i].(*tengo.String); ok {
		return s.Value
	}
	return strings.Trim(args[i].String(), "\"")
}

func argFloat(args []tengo.Object, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	switch v := args[i].(type) {
	case *tengo.Int:
		return float64(v.Value), true
	case *tengo.Float:
		return v.Value, true
	default:
		return 0, false
	}
}
