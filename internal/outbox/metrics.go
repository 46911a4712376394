package outbox

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// queueDepth is only written from the shard's worker goroutine, so there is
// a single writer per label and no skew to worry about.
var (
	enqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campuslink",
			Subsystem: "outbox",
			Name:      "enqueued_total",
			Help:      "Mutations accepted into the outbox.",
		},
		[]string{"shard"},
	)

	queueFullTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campuslink",
			Subsystem: "outbox",
			Name:      "queue_full_total",
			Help:      "Enqueue attempts that timed out on a full shard queue.",
		},
		[]string{"shard"},
	)

	dispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campuslink",
			Subsystem: "outbox",
			Name:      "dispatch_duration_seconds",
			Help:      "Latency of one delivery attempt.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"shard"},
	)

	queueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "campuslink",
			Subsystem: "outbox",
			Name:      "queue_depth",
			Help:      "Current depth of each shard queue.",
		},
		[]string{"shard"},
	)
)

func labelFor(i int) string { return strconv.Itoa(i) }
