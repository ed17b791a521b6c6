package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// bulletin ETL pipeline and the decode endpoint.
type Metrics struct {
	MessagesConsumed  prometheus.Counter
	MessagesProduced  prometheus.Counter
	TransformErrors   prometheus.Counter
	DecodeWarnings    prometheus.Counter
	DuplicatesSkipped prometheus.Counter
	PipelineRunning   prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Decoder metrics.
	BulletinsDecoded *prometheus.CounterVec // labels: product={airmet,sigmet,sigc,pirep}
	DecodeDuration   prometheus.Histogram

	// HTTP decode endpoint metrics.
	DecodeRequests *prometheus.CounterVec // labels: outcome={success,bad_request,malformed,rate_limited}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.DecodeWarnings,
		m.DuplicatesSkipped,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.BulletinsDecoded,
		m.DecodeDuration,
		m.DecodeRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_etl",
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_etl",
			Name:      "messages_produced_total",
			Help:      "Total messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_etl",
			Name:      "transform_errors_total",
			Help:      "Total transformation failures.",
		}),
		DecodeWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_etl",
			Name:      "decode_warnings_total",
			Help:      "Total data-quality notes attached to decoded bulletins.",
		}),
		DuplicatesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_etl",
			Name:      "duplicates_skipped_total",
			Help:      "Total re-published bulletins skipped by the dedupe cache.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hazard_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hazard_etl",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hazard_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		BulletinsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_etl",
			Name:      "bulletins_decoded_total",
			Help:      "Bulletins decoded by product kind.",
		}, []string{"product"}),
		DecodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hazard_etl",
			Name:      "decode_duration_seconds",
			Help:      "Duration of a single bulletin decode.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		DecodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_etl",
			Name:      "decode_requests_total",
			Help:      "HTTP decode requests by outcome.",
		}, []string{"outcome"}),
	}
}
