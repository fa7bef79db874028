package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// ReconciledTotal counts events that produced a validation record, by verdict.
	ReconciledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agentpos",
		Subsystem: "reconcile",
		Name:      "records_total",
		Help:      "Validation records created by reconciliation, labeled by reason and validity.",
	}, []string{"reason", "valid"})

	// ReplayedTotal counts events whose record already existed.
	ReplayedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "agentpos",
		Subsystem: "reconcile",
		Name:      "replayed_total",
		Help:      "Events answered with an existing validation record.",
	})

	RejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agentpos",
		Subsystem: "reconcile",
		Name:      "rejected_total",
		Help:      "Events rejected during reconciliation, labeled by rejection code.",
	}, []string{"code"})

	BatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "agentpos",
		Subsystem: "reconcile",
		Name:      "batch_size",
		Help:      "Number of events per sync request.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	})

	ReconcileDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "agentpos",
		Subsystem: "reconcile",
		Name:      "batch_duration_seconds",
		Help:      "Time to reconcile one sync request.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	// FlushTotal counts client flushes by result (ok, transient, error).
	FlushTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agentpos",
		Subsystem: "sync",
		Name:      "flush_total",
		Help:      "Client queue flushes, labeled by result.",
	}, []string{"result"})

	// FlushItemsTotal counts queue items handled by flushes, by outcome
	// (synced, retry, rejected).
	FlushItemsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agentpos",
		Subsystem: "sync",
		Name:      "flush_items_total",
		Help:      "Queue items handled by client flushes, labeled by outcome.",
	}, []string{"outcome"})

	WebhookDeliveredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agentpos",
		Subsystem: "publisher",
		Name:      "webhook_deliveries_total",
		Help:      "Validation record webhook deliveries, labeled by result.",
	}, []string{"result"})
)

// Register registers every collector with the default registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ReconciledTotal,
			ReplayedTotal,
			RejectedTotal,
			BatchSize,
			ReconcileDurationSeconds,
			FlushTotal,
			FlushItemsTotal,
			WebhookDeliveredTotal,
		)
	})
}
