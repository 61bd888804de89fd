package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/milk9111/acengine/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics a running session reports.
type Collector struct {
	gatherer prometheus.Gatherer

	Ticks        prometheus.Counter
	RuleFirings  prometheus.Counter
	SceneLoads   *prometheus.CounterVec
	SessionEnds  *prometheus.CounterVec
	LiveEntities prometheus.Gauge
	TickDuration prometheus.Histogram
}

// NewCollector registers runtime metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "acengine_ticks_total",
		Help: "Total number of simulated ticks.",
	}), "acengine_ticks_total")
	if err != nil {
		return nil, err
	}

	firings, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "acengine_rule_firings_total",
		Help: "Total number of event groups whose conditions all held.",
	}), "acengine_rule_firings_total")
	if err != nil {
		return nil, err
	}

	loads, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "acengine_scene_loads_total",
		Help: "Total number of frame loads, labeled by frame index.",
	}, []string{"frame"}), "acengine_scene_loads_total")
	if err != nil {
		return nil, err
	}

	ends, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "acengine_session_ends_total",
		Help: "Total number of ended sessions, labeled by end reason.",
	}, []string{"reason"}), "acengine_session_ends_total")
	if err != nil {
		return nil, err
	}

	live, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "acengine_live_entities",
		Help: "Number of alive entities after the most recent tick.",
	}), "acengine_live_entities")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "acengine_tick_duration_seconds",
		Help:    "Wall time spent simulating one tick.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.0166, 0.033, 0.1},
	}), "acengine_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:     gatherer,
		Ticks:        ticks,
		RuleFirings:  firings,
		SceneLoads:   loads,
		SessionEnds:  ends,
		LiveEntities: live,
		TickDuration: durations,
	}, nil
}

// ObserveTick records one completed tick.
func (c *Collector) ObserveTick(d time.Duration, fired, live int) {
	if c == nil {
		return
	}
	c.Ticks.Inc()
	if fired > 0 {
		c.RuleFirings.Add(float64(fired))
	}
	c.LiveEntities.Set(float64(live))
	c.TickDuration.Observe(d.Seconds())
}

func (c *Collector) SceneLoaded(frame int) {
	if c == nil {
		return
	}
	c.SceneLoads.WithLabelValues(strconv.Itoa(frame)).Inc()
}

func (c *Collector) SessionEnded(reason string) {
	if c == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	c.SessionEnds.WithLabelValues(reason).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Serve runs a /metrics endpoint on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, log logging.Logger) error {
	if log == nil {
		log = logging.Noop()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "metrics endpoint listening", logging.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
