package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "default is valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "batch is valid",
			mutate: func(c *Config) { *c = *BatchConfig() },
		},
		{
			name:    "missing service name",
			mutate:  func(c *Config) { c.ServiceName = "" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: true,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name: "unknown trace exporter",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Exporter = "jaeger"
			},
			wantErr: true,
		},
		{
			name:    "sampling rate out of range",
			mutate:  func(c *Config) { c.Tracing.SamplingRate = 1.5 },
			wantErr: true,
		},
		{
			name: "metrics enabled without address",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.ListenAddress = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("Expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestNewTelemetry_Default(t *testing.T) {
	tel, err := NewTelemetry(DefaultConfig())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if tel.Logger == nil || tel.Tracer == nil || tel.Metrics == nil {
		t.Fatalf("Expected a fully populated bundle, got %+v", tel)
	}

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("Expected clean shutdown, got: %v", err)
	}
}

func TestNewTelemetry_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"

	if _, err := NewTelemetry(cfg); err == nil {
		t.Fatalf("Expected error for invalid config")
	}
}

func TestTelemetry_ContextRoundTrip(t *testing.T) {
	tel, err := NewTelemetry(DefaultConfig())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	ctx := tel.WithContext(context.Background())
	if got := FromTelemetryContext(ctx); got != tel {
		t.Errorf("Expected the stored bundle back, got %v", got)
	}
	if got := FromTelemetryContext(context.Background()); got != nil {
		t.Errorf("Expected nil for a bare context, got %v", got)
	}
}

func TestLogger_NewComponentLogger(t *testing.T) {
	cfg := DefaultConfig().Logging
	cfg.Format = "json"

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var buf bytes.Buffer
	child := logger.NewComponentLogger("engine").WithRunID("run-1")
	zl := child.Zerolog().Output(&buf)
	zl.Info().Msg("started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got: %v", err)
	}
	if entry["component"] != "engine" {
		t.Errorf("Expected component field, got %v", entry)
	}
	if entry["run_id"] != "run-1" {
		t.Errorf("Expected run_id field, got %v", entry)
	}
}

func TestMetrics_DisabledIsNoOp(t *testing.T) {
	m, err := NewMetrics(MetricsConfig{Enabled: false})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// None of these may panic without a backing registry.
	m.RecordRunStarted("publish")
	m.RecordRunCompleted("publish", "Success", time.Second)
	m.RecordOperation("modeling.History", "check", "Success", time.Millisecond)
	m.SetFeedbackCount("modeling.History", "Naming", 3)
	m.RecordError("execution")

	if m.Handler() == nil {
		t.Errorf("Expected a handler even when disabled")
	}
}

func TestMetrics_RecordRunStarted(t *testing.T) {
	m, err := NewMetrics(MetricsConfig{Enabled: true, ListenAddress: ":0", Namespace: "prevet"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	m.RecordRunStarted("publish")
	m.RecordRunStarted("publish")

	got := testutil.ToFloat64(m.runsStarted.WithLabelValues("publish"))
	if got != 2 {
		t.Errorf("Expected 2 started runs, got %v", got)
	}
}

func TestTimer_Duration(t *testing.T) {
	timer := NewTimer()
	first := timer.Duration()
	second := timer.Duration()

	if first < 0 {
		t.Errorf("Expected non-negative duration, got %v", first)
	}
	if second < first {
		t.Errorf("Expected durations to grow, got %v then %v", first, second)
	}
}
