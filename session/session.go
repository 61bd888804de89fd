// Package session is the scene controller of a play session. It owns the live
// World, loads frames into it, runs the per-tick systems in their fixed order
// and applies the transitions rules request.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/engine/system"
	"github.com/milk9111/acengine/logging"
	"github.com/milk9111/acengine/project"
	"github.com/milk9111/acengine/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNoFrames   = errors.New("session: project has no frames")
	ErrNotStarted = errors.New("session: not started")
	ErrEnded      = errors.New("session: ended")
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// InputSource is sampled once per tick by Run.
type InputSource interface {
	Sample() engine.Input
}

// Renderer receives the snapshot of every tick Run performs.
type Renderer interface {
	Render(render.Snapshot)
}

type InputFunc func() engine.Input

func (f InputFunc) Sample() engine.Input { return f() }

type RenderFunc func(render.Snapshot)

func (f RenderFunc) Render(s render.Snapshot) { f(s) }

// Session plays one project. All methods are safe for concurrent use; ticks
// themselves are serialised.
type Session struct {
	mu sync.Mutex

	project *project.Project
	world   *engine.World

	rules     *system.RuleSystem
	scheduler *engine.Scheduler

	state     State
	endReason string
	last      render.Snapshot
	events    []engine.Event

	ctx     context.Context
	logger  logging.Logger
	metrics MetricsRecorder
	tracer  trace.Tracer
	seed    int64
	tuning  engine.Tuning
	quitKey string
}

// New prepares a session over a private copy of p. Nothing is loaded until
// Start.
func New(p *project.Project, opts ...Option) (*Session, error) {
	if p == nil || len(p.Frames) == 0 {
		return nil, ErrNoFrames
	}

	s := &Session{
		project: p.Clone(),
		logger:  logging.Noop(),
		tracer:  otel.Tracer("github.com/milk9111/acengine/session"),
		seed:    time.Now().UnixNano(),
		tuning:  engine.DefaultTuning(),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rules = system.NewRuleSystem(s.logger)
	s.scheduler = engine.NewScheduler(
		s.rules,
		system.NewMovementSystem(),
		system.NewContactSystem(),
		system.NewPruneSystem(),
	)
	s.world = engine.NewWorld(s.project, s.seed, s.tuning)
	return s, nil
}

// Start begins a fresh play session at frame initial. Score, lives and
// globals are reseeded from the project. An out of range frame ends the
// session.
func (s *Session) Start(initial int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, l := logging.WithSessionLogger(context.Background(), s.logger)
	s.ctx = logging.ContextWithLogger(ctx, l)

	s.world = engine.NewWorld(s.project, s.seed, s.tuning)
	s.events = nil
	s.endReason = ""
	s.state = StateRunning

	s.log().Info(s.ctx, "session started",
		logging.String("project", s.project.Name),
		logging.Int("frame", initial),
	)
	s.loadScene(initial)
	return nil
}

// LoadScene jumps to frame index immediately, keeping score, lives and
// globals. Loading into an idle session starts it.
func (s *Session) LoadScene(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateEnded {
		return ErrEnded
	}
	if s.state == StateIdle {
		s.state = StateRunning
	}
	s.loadScene(index)
	return nil
}

func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning {
		return
	}
	s.state = StatePaused
	s.world.Paused = true
	s.last.Paused = true
	s.log().Debug(s.ctx, "session paused", logging.Int("tick", s.world.Tick))
}

func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePaused {
		return
	}
	s.state = StateRunning
	s.world.Paused = false
	s.last.Paused = false
	s.log().Debug(s.ctx, "session resumed", logging.Int("tick", s.world.Tick))
}

// Stop ends the session. Later calls are no-ops.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEnded {
		return
	}
	s.end(engine.EndReasonStopped)
}

// Step runs exactly one tick with in as the input snapshot and returns what
// should be drawn. A paused session returns the previous snapshot unchanged.
func (s *Session) Step(in engine.Input) (render.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateIdle:
		return render.Snapshot{}, ErrNotStarted
	case StateEnded:
		return s.last, ErrEnded
	}

	if s.quitKey != "" && in.WasPressed(s.quitKey) {
		s.end(engine.EndReasonQuitKey)
		return s.last, nil
	}

	if s.world.Paused && s.state == StateRunning {
		// A Pause action fired on the previous tick.
		s.state = StatePaused
	}
	if s.state == StatePaused {
		s.last.Paused = true
		return s.last, nil
	}

	began := time.Now()
	s.world.Input = in.Clone()
	s.scheduler.Update(s.world)
	loaded := s.applyPending()

	s.last = render.Build(s.world)
	s.last.Ended = s.state == StateEnded
	if s.world.Paused {
		s.last.Paused = true
	}
	if !loaded && s.state != StateEnded {
		s.world.JustStarted = false
		s.world.Tick++
	}

	if s.metrics != nil {
		s.metrics.ObserveTick(time.Since(began), s.rules.Fired(), s.world.Count(""))
	}
	s.collectEvents()
	return s.last, nil
}

// Run drives the session from a ticker at the project's frame rate until ctx
// is cancelled or the session ends. The session must have been started.
func (s *Session) Run(ctx context.Context, src InputSource, sink Renderer) error {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return ErrNotStarted
	}
	interval := time.Duration(s.world.FrameMS) * time.Millisecond
	s.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		var in engine.Input
		if src != nil {
			in = src.Sample()
		}
		snap, err := s.Step(in)
		if err != nil {
			if errors.Is(err, ErrEnded) {
				return nil
			}
			return err
		}
		if sink != nil {
			sink.Render(snap)
		}
		if snap.Ended {
			return nil
		}
	}
}

// Events drains the status events emitted since the previous call.
func (s *Session) Events() []engine.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.events
	s.events = nil
	return out
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// EndReason is empty until the session has ended.
func (s *Session) EndReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endReason
}

// Snapshot returns the most recent render snapshot.
func (s *Session) Snapshot() render.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Session) Project() *project.Project {
	return s.project
}

// DumpJSON renders the live world state for debugging.
func (s *Session) DumpJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.DumpJSON()
}

// Inspect runs fn against the live world under the session lock. fn must
// not retain the world or its entities.
func (s *Session) Inspect(fn func(w *engine.World)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.world)
}

func (s *Session) loadScene(index int) bool {
	_, span := s.tracer.Start(s.ctx, "scene.load", trace.WithAttributes(
		attribute.Int("frame.index", index),
		attribute.Int("frame.count", len(s.project.Frames)),
	))
	defer span.End()

	src, ok := s.project.Frame(index)
	if !ok {
		span.SetAttributes(attribute.Bool("frame.out_of_range", true))
		s.log().Warn(s.ctx, "frame out of range",
			logging.Int("frame", index),
			logging.Int("frames", len(s.project.Frames)),
		)
		s.end(engine.EndReasonOutOfRange)
		return false
	}

	f := src.Clone()
	s.world.LoadFrame(&f, index)
	s.rules.Load(system.CompileRules(&f))
	s.last = render.Build(s.world)

	span.SetAttributes(
		attribute.String("frame.name", f.Name),
		attribute.Int("frame.entities", len(f.Objects)),
		attribute.Int("frame.rule_groups", len(f.Events)),
	)
	s.log().Info(s.ctx, "frame loaded",
		logging.Int("frame", index),
		logging.String("name", f.Name),
		logging.Int("entities", len(f.Objects)),
	)
	if s.metrics != nil {
		s.metrics.SceneLoaded(index)
	}
	s.collectEvents()
	return true
}

// applyPending performs the transition rules asked for during the tick and
// reports whether a frame was loaded.
func (s *Session) applyPending() bool {
	t, ok := s.world.Pending()
	if !ok {
		return false
	}
	s.world.ClearPending()

	switch t.Kind {
	case engine.TransitionEnd:
		s.end(t.Reason)
		return false
	case engine.TransitionFrame:
		s.log().Debug(s.ctx, "frame transition",
			logging.Int("from", s.world.FrameIndex),
			logging.Int("to", t.Frame),
		)
		return s.loadScene(t.Frame)
	}
	return false
}

func (s *Session) end(reason string) {
	_, span := s.tracer.Start(s.ctx, "session.end", trace.WithAttributes(
		attribute.String("session.end_reason", reason),
		attribute.Int("session.score", s.world.Score),
	))
	defer span.End()

	s.state = StateEnded
	s.endReason = reason
	s.world.ClearPending()
	s.world.Emit(engine.EventSessionEnded, "", reason)
	s.last.Ended = true

	s.log().Info(s.ctx, "session ended",
		logging.String("reason", reason),
		logging.Int("score", s.world.Score),
		logging.Int("lives", s.world.Lives),
		logging.Int("frame", s.world.FrameIndex),
	)
	if s.metrics != nil {
		s.metrics.SessionEnded(reason)
	}
	s.collectEvents()
}

func (s *Session) collectEvents() {
	s.events = append(s.events, s.world.Events().Drain()...)
}

func (s *Session) log() logging.Logger {
	if l := logging.LoggerFromContext(s.ctx); l != nil {
		return l
	}
	return s.logger
}
