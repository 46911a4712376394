package campuslink

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectionJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campuslink_client",
			Name:      "connection_jobs_total",
			Help:      "Connection mutations accepted into the outbox.",
		},
		[]string{"op"},
	)

	connectionJobsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campuslink_client",
			Name:      "connection_jobs_rejected_total",
			Help:      "Connection mutations the outbox refused to accept.",
		},
		[]string{"op"},
	)
)

func countConnectionJob(op string, err error) {
	if err != nil {
		connectionJobsRejectedTotal.WithLabelValues(op).Inc()
		return
	}
	connectionJobsTotal.WithLabelValues(op).Inc()
}
