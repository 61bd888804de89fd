package observability

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel"
)

func TestObserveTickRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	collector.ObserveTick(2*time.Millisecond, 3, 7)
	collector.ObserveTick(time.Millisecond, 0, 5)

	if got := testutil.ToFloat64(collector.Ticks); got != 2 {
		t.Fatalf("acengine_ticks_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.RuleFirings); got != 3 {
		t.Fatalf("acengine_rule_firings_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(collector.LiveEntities); got != 5 {
		t.Fatalf("acengine_live_entities = %v, want 5", got)
	}
	if count := histogramSampleCount(t, reg, "acengine_tick_duration_seconds", nil); count != 2 {
		t.Fatalf("acengine_tick_duration_seconds sample_count = %d, want 2", count)
	}
}

func TestSceneAndSessionCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	collector.SceneLoaded(0)
	collector.SceneLoaded(0)
	collector.SceneLoaded(1)
	collector.SessionEnded("out_of_lives")
	collector.SessionEnded("")

	if got := testutil.ToFloat64(collector.SceneLoads.WithLabelValues("0")); got != 2 {
		t.Fatalf("scene loads frame 0 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.SceneLoads.WithLabelValues("1")); got != 1 {
		t.Fatalf("scene loads frame 1 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.SessionEnds.WithLabelValues("out_of_lives")); got != 1 {
		t.Fatalf("session ends out_of_lives = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.SessionEnds.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("session ends unknown = %v, want 1", got)
	}
}

func TestNewCollectorReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector first: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector second: %v", err)
	}

	first.ObserveTick(time.Millisecond, 1, 1)
	if got := testutil.ToFloat64(second.Ticks); got != 1 {
		t.Fatalf("shared ticks counter = %v, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveTick(time.Millisecond, 1, 1)
	c.SceneLoaded(0)
	c.SessionEnded("stopped")
	if c.Handler() == nil {
		t.Fatalf("expected default handler for nil collector")
	}
}

func TestMetricsHandlerExposesRuntimeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	collector.ObserveTick(time.Millisecond, 2, 4)
	collector.SceneLoaded(0)
	collector.SessionEnded("end_application")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"acengine_ticks_total",
		"acengine_rule_firings_total",
		"acengine_scene_loads_total",
		"acengine_session_ends_total",
		"acengine_live_entities 4",
		"acengine_tick_duration_seconds",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
}

func TestInitTracingDisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	_, span := otel.Tracer("test").Start(context.Background(), "noop")
	if span.SpanContext().IsValid() {
		t.Fatalf("expected invalid span context from noop provider")
	}
	span.End()
	ShutdownWithTimeout(context.Background(), shutdown, nil)
}

func TestInitTracingStdoutExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracing(context.Background(), TracingConfig{
		Enabled:     true,
		ServiceName: "acengine-test",
		Exporter:    "stdout",
		SampleRatio: 1,
		Output:      &buf,
	}, nil)
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	t.Cleanup(func() {
		_, _ = InitTracing(context.Background(), TracingConfig{}, nil)
	})

	_, span := otel.Tracer("test").Start(context.Background(), "scene.load")
	span.End()
	ShutdownWithTimeout(context.Background(), shutdown, nil)

	if !strings.Contains(buf.String(), "scene.load") {
		t.Fatalf("expected exported span in output, got %q", buf.String())
	}
}

func TestInitTracingRejectsUnknownExporter(t *testing.T) {
	_, err := InitTracing(context.Background(), TracingConfig{Enabled: true, Exporter: "zipkin"}, nil)
	if err == nil {
		t.Fatalf("expected error for unsupported exporter")
	}
}

func TestTracingConfigFromEnv(t *testing.T) {
	t.Setenv("ACENGINE_TRACING_ENABLED", "TRUE")
	t.Setenv("ACENGINE_TRACING_SAMPLE_RATIO", "0.25")
	t.Setenv("ACENGINE_TRACING_SERVICE_NAME", "")
	t.Setenv("ACENGINE_TRACING_EXPORTER", "")

	cfg := TracingConfigFromEnv()
	if !cfg.Enabled || cfg.SampleRatio != 0.25 || cfg.ServiceName != "acengine" || cfg.Exporter != "stdout" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	t.Setenv("ACENGINE_TRACING_SAMPLE_RATIO", "7")
	if got := TracingConfigFromEnv().SampleRatio; got != 1 {
		t.Fatalf("out of range ratio = %v, want 1", got)
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
