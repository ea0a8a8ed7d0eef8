package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Merge outcome labels for ReconcileMerges.
const (
	OutcomeInserted     = "inserted"
	OutcomeUpdated      = "updated"
	OutcomeStaleDropped = "stale_dropped"
	OutcomeNoop         = "noop"
)

// Metrics holds all Prometheus metrics of the reconciliation engine.
type Metrics struct {
	// Merge metrics
	ReconcileMerges     *prometheus.CounterVec
	SnapshotsApplied    prometheus.Counter
	OptimisticPreserved prometheus.Counter
	RecordCount         prometheus.Gauge

	// Push metrics
	PushMessages   *prometheus.CounterVec
	PushReconnects prometheus.Counter

	// Collaborator metrics
	HistoryFetches     *prometheus.CounterVec
	FetchDuration      prometheus.Histogram
	Submissions        *prometheus.CounterVec
	SubmissionDuration prometheus.Histogram
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReconcileMerges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerview_reconcile_merges_total",
				Help: "Total number of update events merged, by outcome",
			},
			[]string{"outcome"},
		),
		SnapshotsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerview_snapshots_applied_total",
			Help: "Total number of history snapshots applied",
		}),
		OptimisticPreserved: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerview_optimistic_preserved_total",
			Help: "Total number of optimistic records preserved across snapshots",
		}),
		RecordCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerview_records",
			Help: "Current number of records in the reconciled view",
		}),
		PushMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerview_push_messages_total",
				Help: "Total number of push messages received, by result",
			},
			[]string{"result"},
		),
		PushReconnects: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerview_push_reconnects_total",
			Help: "Total number of push subscription reconnects",
		}),
		HistoryFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerview_history_fetches_total",
				Help: "Total number of history fetches, by result",
			},
			[]string{"result"},
		),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerview_history_fetch_duration_seconds",
			Help:    "Duration of history fetches",
			Buckets: prometheus.DefBuckets,
		}),
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerview_submissions_total",
				Help: "Total number of transfer submissions, by result",
			},
			[]string{"result"},
		),
		SubmissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerview_submission_duration_seconds",
			Help:    "Duration of transfer submissions",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
