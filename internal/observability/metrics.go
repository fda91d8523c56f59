package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nyc_events"

// Metrics holds the Prometheus counters, histograms, and gauges for the event
// service.
type Metrics struct {
	// Loader metrics.
	LoaderRequests *prometheus.CounterVec   // labels: source={api,corpus}, outcome={success,error,empty}
	LoaderDuration *prometheus.HistogramVec // labels: source={api,corpus}
	CorpusSkipped  prometheus.Counter
	SnapshotEvents *prometheus.GaugeVec // labels: origin={api,corpus,synthetic}
	Refreshes      *prometheus.CounterVec

	// Live feed metrics.
	FeedEvents       prometheus.Counter
	FeedSinkErrors   *prometheus.CounterVec // labels: sink
	FeedRunning      prometheus.Gauge
	FeedTickDuration prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.LoaderRequests,
		m.LoaderDuration,
		m.CorpusSkipped,
		m.SnapshotEvents,
		m.Refreshes,
		m.FeedEvents,
		m.FeedSinkErrors,
		m.FeedRunning,
		m.FeedTickDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		LoaderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loader_requests_total",
			Help:      "Remote event loads by source and outcome.",
		}, []string{"source", "outcome"}),
		LoaderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "loader_duration_seconds",
			Help:      "Duration of remote event loads in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 3, 10},
		}, []string{"source"}),
		CorpusSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "corpus_skipped_records_total",
			Help:      "Corpus records dropped for lacking a location.",
		}),
		SnapshotEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_events",
			Help:      "Events in the current snapshot by origin.",
		}, []string{"origin"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Snapshot refreshes by resulting origin.",
		}, []string{"origin"}),
		FeedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_events_total",
			Help:      "Events published to the live feed.",
		}),
		FeedSinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_sink_errors_total",
			Help:      "Failed feed deliveries by sink.",
		}, []string{"sink"}),
		FeedRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_running",
			Help:      "1 when the live feed is active, 0 when shut down.",
		}),
		FeedTickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_tick_duration_seconds",
			Help:      "Duration of one feed generate-and-deliver cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}
}
