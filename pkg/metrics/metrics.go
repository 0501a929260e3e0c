// Package metrics exports scheduler and commit metrics to Prometheus.
//
// Collector implements fiber.Observer; wire it into a Runtime via
// Config.Observer (or fiber.MultiObserver to combine with others):
//
//	col := metrics.NewCollector(metrics.WithNamespace("myapp"))
//	rt := fiber.New(fiber.Config{Observer: col})
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/loomui/loom/pkg/fiber"
)

// Config configures the Prometheus collector.
type Config struct {
	// Namespace is the metrics namespace (default: "loom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for commit duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the commit-duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "loom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records scheduler lifecycle signals as Prometheus metrics.
type Collector struct {
	rendersScheduled prometheus.Counter
	workUnits        prometheus.Counter
	yields           prometheus.Counter
	commits          prometheus.Counter
	commitDuration   prometheus.Histogram
	mutations        *prometheus.CounterVec
	effectsFlushed   prometheus.Counter
}

// NewCollector creates and registers a Collector.
func NewCollector(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		rendersScheduled: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_scheduled_total",
			Help:        "Total number of render passes armed on the scheduler",
			ConstLabels: config.ConstLabels,
		}),

		workUnits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "work_units_total",
			Help:        "Total number of fiber work units performed",
			ConstLabels: config.ConstLabels,
		}),

		yields: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "yields_total",
			Help:        "Total number of cooperative yields with work remaining",
			ConstLabels: config.ConstLabels,
		}),

		commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commits_total",
			Help:        "Total number of committed render passes",
			ConstLabels: config.ConstLabels,
		}),

		commitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commit_duration_seconds",
			Help:        "Commit pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_total",
			Help:        "Total number of output-tree mutations by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		effectsFlushed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects_flushed_total",
			Help:        "Total number of effects flushed after commit",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RenderScheduled implements fiber.Observer.
func (c *Collector) RenderScheduled() {
	c.rendersScheduled.Inc()
}

// WorkPerformed implements fiber.Observer.
func (c *Collector) WorkPerformed(units int) {
	c.workUnits.Add(float64(units))
}

// Yielded implements fiber.Observer.
func (c *Collector) Yielded() {
	c.yields.Inc()
}

// Committed implements fiber.Observer.
func (c *Collector) Committed(stats fiber.CommitStats) {
	c.commits.Inc()
	c.commitDuration.Observe(stats.Duration.Seconds())
	c.effectsFlushed.Add(float64(stats.Effects))

	c.mutations.WithLabelValues("placement").Add(float64(stats.Placements))
	c.mutations.WithLabelValues("update").Add(float64(stats.Updates))
	c.mutations.WithLabelValues("move").Add(float64(stats.Moves))
	c.mutations.WithLabelValues("deletion").Add(float64(stats.Deletions))
}

var _ fiber.Observer = (*Collector)(nil)

// ObserveDuration is a convenience for timing arbitrary sections
// against the commit-duration histogram.
func (c *Collector) ObserveDuration(d time.Duration) {
	c.commitDuration.Observe(d.Seconds())
}
