package session

import (
	"time"

	"github.com/milk9111/acengine/engine"
	"github.com/milk9111/acengine/logging"
	"github.com/milk9111/acengine/prefabs"
	"go.opentelemetry.io/otel/trace"
)

// MetricsRecorder receives per-tick and lifecycle measurements.
// observability.Collector satisfies it.
type MetricsRecorder interface {
	ObserveTick(d time.Duration, fired, live int)
	SceneLoaded(frame int)
	SessionEnded(reason string)
}

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m MetricsRecorder) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Session) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithQuitKey ends the session on the tick key is first pressed, before any
// rule sees it. Player windows pass "Escape".
func WithQuitKey(key string) Option {
	return func(s *Session) {
		s.quitKey = key
	}
}

// WithSeed fixes the random source so runs are reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

func WithTuning(t engine.Tuning) Option {
	return func(s *Session) {
		s.tuning = t
	}
}

// WithTemplates sets the object templates "Create object" draws from.
func WithTemplates(lib *prefabs.ObjectLibrarySpec) Option {
	return func(s *Session) {
		s.tuning.Templates = lib
	}
}

// WithRuntimeSpec applies the tuning, seed and fps override of spec.
func WithRuntimeSpec(spec *prefabs.RuntimeSpec) Option {
	return func(s *Session) {
		if spec == nil {
			return
		}
		templates := s.tuning.Templates
		s.tuning = engine.TuningFromSpec(spec)
		s.tuning.Templates = templates
		if spec.Seed != 0 {
			s.seed = spec.Seed
		}
		if spec.FPS > 0 {
			s.project.FPS = spec.FPS
		}
	}
}
