package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// labeling pipeline.
type Metrics struct {
	ObservationsConsumed prometheus.Counter
	EventsProduced       prometheus.Counter
	TransformErrors      prometheus.Counter
	PipelineRunning      prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Labeling metrics.
	FloodLabels      *prometheus.CounterVec // labels: region={coastal,deltaic}, flood={true,false}
	UnmappedStations prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ObservationsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_etl",
			Name:      "observations_consumed_total",
			Help:      "Total observation rows read from the source topic.",
		}),
		EventsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_etl",
			Name:      "events_produced_total",
			Help:      "Total labeled events written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_etl",
			Name:      "transform_errors_total",
			Help:      "Total labeling failures (malformed or out-of-domain rows).",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_etl",
			Name:      "batch_size",
			Help:      "Number of rows per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		FloodLabels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_etl",
			Name:      "flood_labels_total",
			Help:      "Assigned labels by region and outcome.",
		}, []string{"region", "flood"}),
		UnmappedStations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_etl",
			Name:      "unmapped_stations_total",
			Help:      "Rows whose station fell through to the Deltaic default.",
		}),
	}

	prometheus.MustRegister(
		m.ObservationsConsumed,
		m.EventsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.FloodLabels,
		m.UnmappedStations,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ObservationsConsumed:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_etl", Name: "observations_consumed_total"}),
		EventsProduced:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_etl", Name: "events_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_etl", Name: "batch_processing_duration_seconds"}),
		FloodLabels:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_etl", Name: "flood_labels_total"}, []string{"region", "flood"}),
		UnmappedStations:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_etl", Name: "unmapped_stations_total"}),
	}
}
