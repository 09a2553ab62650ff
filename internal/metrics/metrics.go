package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	TransactionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mata_finance",
		Subsystem: "lifecycle",
		Name:      "transactions_created_total",
		Help:      "Total transaction drafts created.",
	})

	Submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mata_finance",
		Subsystem: "lifecycle",
		Name:      "submissions_total",
		Help:      "Total submissions by kind.",
	}, []string{"kind"}) // "first", "resubmit"

	Decisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mata_finance",
		Subsystem: "lifecycle",
		Name:      "decisions_total",
		Help:      "Total approver decisions by outcome.",
	}, []string{"outcome"}) // "approved", "rejected", "returned_for_revision"

	DecisionConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mata_finance",
		Subsystem: "lifecycle",
		Name:      "decision_conflicts_total",
		Help:      "Decisions that lost a concurrent-update race.",
	})

	ReplacementsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mata_finance",
		Subsystem: "replacement",
		Name:      "created_total",
		Help:      "Total replacement drafts created from rejected transactions.",
	})

	EmergencyRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mata_finance",
		Subsystem: "emergency",
		Name:      "requests_total",
		Help:      "Total emergency approval requests created.",
	})

	NoticeExposures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mata_finance",
		Subsystem: "notice",
		Name:      "exposures_total",
		Help:      "Total notice exposures recorded.",
	})

	SignalsIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mata_finance",
		Subsystem: "signal",
		Name:      "ingested_total",
		Help:      "Total system signals ingested by series name.",
	}, []string{"name"})

	QueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mata_finance",
		Subsystem: "queue",
		Name:      "depth",
		Help:      "Transactions awaiting an approver decision at last projection.",
	})
)

func init() {
	prometheus.MustRegister(
		TransactionsCreated,
		Submissions,
		Decisions,
		DecisionConflicts,
		ReplacementsCreated,
		EmergencyRequests,
		NoticeExposures,
		SignalsIngested,
		QueueDepth,
	)
}
