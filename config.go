package loom

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/fiber"
)

// Config is the main application configuration.
type Config struct {
	// ContainerTag is the element tag of the mount container.
	// Default: "div".
	ContainerTag string

	// TimeSlice is the scheduler's cooperative work budget per
	// callback. Default: fiber.DefaultTimeSlice.
	TimeSlice time.Duration

	// Scheduler overrides the runtime's host scheduler. If nil, the
	// runtime owns a FrameScheduler. Tests use a ManualScheduler here
	// for deterministic render passes.
	Scheduler fiber.Scheduler

	// DevMode enables pretty-printed HTML snapshots and hook-order
	// assertions. Never use in production.
	DevMode bool

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Observer receives scheduler lifecycle signals in addition to the
	// app's built-in metrics collector and live hub.
	Observer fiber.Observer

	// Tracer records a span per commit pass when set.
	Tracer trace.Tracer

	// Metrics configures the Prometheus surface.
	Metrics MetricsConfig

	// Live configures the commit stream.
	Live LiveConfig
}

// MetricsConfig configures the /metrics endpoint.
type MetricsConfig struct {
	// Disabled turns off metric collection and the /metrics route.
	Disabled bool

	// Namespace for the exported metrics. Default: "loom".
	Namespace string

	// Registry to register collectors on. If nil, the app creates a
	// private registry so multiple apps don't collide.
	Registry *prometheus.Registry
}

// LiveConfig configures the WebSocket commit stream.
type LiveConfig struct {
	// Disabled turns off the hub and the /live routes.
	Disabled bool

	// QueueSize is the per-client frame buffer. Default: 16.
	QueueSize int

	// WriteTimeout bounds each WebSocket write. Default: 10s.
	WriteTimeout time.Duration

	// PingInterval is the keepalive ping period. Default: 30s.
	PingInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ContainerTag: "div",
		TimeSlice:    fiber.DefaultTimeSlice,
	}
}

func (c *Config) applyDefaults() {
	if c.ContainerTag == "" {
		c.ContainerTag = "div"
	}
	if c.TimeSlice <= 0 {
		c.TimeSlice = fiber.DefaultTimeSlice
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "loom"
	}
}
