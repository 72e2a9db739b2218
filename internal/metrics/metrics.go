package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// PipelineRun describes one recomputation of the shopping pipeline.
type PipelineRun struct {
	Recipes     int
	Ingredients int
	Score       int
	Available   bool
	Duration    time.Duration
	Cached      bool
}

// Recorder collects pipeline metrics on its own registry so several
// recorders (one per test, say) never collide.
type Recorder struct {
	registry *prometheus.Registry

	runs        prometheus.Counter
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	score       prometheus.Gauge
	ingredients prometheus.Gauge
	recipes     prometheus.Gauge
	duration    prometheus.Histogram
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smart_pantry_pipeline_runs_total",
			Help: "Total number of shopping pipeline evaluations",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smart_pantry_aggregation_cache_hits_total",
			Help: "Total number of evaluations served from the memoized aggregation",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smart_pantry_aggregation_cache_misses_total",
			Help: "Total number of evaluations that re-aggregated the selection",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smart_pantry_efficiency_score",
			Help: "Efficiency score of the most recent evaluation (0-100)",
		}),
		ingredients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smart_pantry_distinct_ingredients",
			Help: "Distinct ingredients on the most recent shopping list",
		}),
		recipes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smart_pantry_selected_recipes",
			Help: "Recipes selected in the most recent evaluation",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "smart_pantry_pipeline_duration_seconds",
			Help:    "Duration of shopping pipeline evaluations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
	r.registry.MustRegister(r.runs, r.cacheHits, r.cacheMisses, r.score, r.ingredients, r.recipes, r.duration)
	return r
}

// Observe records a pipeline run.
func (r *Recorder) Observe(run PipelineRun) {
	r.runs.Inc()
	if run.Cached {
		r.cacheHits.Inc()
	} else {
		r.cacheMisses.Inc()
	}
	r.recipes.Set(float64(run.Recipes))
	r.ingredients.Set(float64(run.Ingredients))
	if run.Available {
		r.score.Set(float64(run.Score))
	} else {
		r.score.Set(0)
	}
	r.duration.Observe(run.Duration.Seconds())
}

// Registry exposes the underlying registry, e.g. for promhttp or testutil.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteText dumps every metric in the Prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
