// Package metrics provides Prometheus counters for a resolution run.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics of a run. A nil *Collector is valid
// and records nothing, so the engine can call it unconditionally.
type Collector struct {
	registry *prometheus.Registry

	ModulesLoaded  prometheus.Counter
	TasksSpawned   *prometheus.CounterVec
	SchedulerTurns prometheus.Counter
	Suspensions    prometheus.Counter
	SchemasEmitted prometheus.Counter
	Deadlocks      prometheus.Counter
	RunDuration    prometheus.Histogram
}

// New creates a collector backed by its own registry.
func New() *Collector {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates a collector whose metrics are registered with reg.
func NewWithRegistry(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		ModulesLoaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "typecollect",
			Name:      "modules_loaded_total",
			Help:      "Total number of source files loaded",
		}),
		TasksSpawned: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "typecollect",
			Name:      "tasks_spawned_total",
			Help:      "Total number of resolution tasks spawned",
		}, []string{"group"}),
		SchedulerTurns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "typecollect",
			Name:      "scheduler_turns_total",
			Help:      "Total number of task steps taken by the scheduler",
		}),
		Suspensions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "typecollect",
			Name:      "suspensions_total",
			Help:      "Total number of times a task suspended waiting for a name",
		}),
		SchemasEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "typecollect",
			Name:      "schemas_emitted_total",
			Help:      "Total number of schemas appended to the output",
		}),
		Deadlocks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "typecollect",
			Name:      "deadlocks_total",
			Help:      "Total number of runs aborted by deadlock detection",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "typecollect",
			Name:      "run_duration_seconds",
			Help:      "Duration of a full generation run in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
	}
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ModuleLoaded counts one loaded source file.
func (c *Collector) ModuleLoaded() {
	if c == nil {
		return
	}
	c.ModulesLoaded.Inc()
}

// TaskSpawned counts one task spawned for the named extractor group.
func (c *Collector) TaskSpawned(group string) {
	if c == nil {
		return
	}
	c.TasksSpawned.WithLabelValues(group).Inc()
}

// Turns adds n scheduler steps.
func (c *Collector) Turns(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.SchedulerTurns.Add(float64(n))
}

// Suspended counts one task suspension.
func (c *Collector) Suspended() {
	if c == nil {
		return
	}
	c.Suspensions.Inc()
}

// SchemaEmitted counts one schema appended to the output.
func (c *Collector) SchemaEmitted() {
	if c == nil {
		return
	}
	c.SchemasEmitted.Inc()
}

// Deadlock counts one run aborted by deadlock detection.
func (c *Collector) Deadlock() {
	if c == nil {
		return
	}
	c.Deadlocks.Inc()
}

// ObserveRun records the duration of one run in seconds.
func (c *Collector) ObserveRun(seconds float64) {
	if c == nil {
		return
	}
	c.RunDuration.Observe(seconds)
}

// WriteFile writes the text exposition of all metrics to path.
func (c *Collector) WriteFile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// Handler returns the HTTP handler serving the metrics in the Prometheus
// exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
