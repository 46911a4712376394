package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campuslink",
			Subsystem: "realtime",
			Name:      "frames_total",
			Help:      "Frames received from the realtime channel, by event type.",
		},
		[]string{"type"},
	)

	reconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "campuslink",
			Subsystem: "realtime",
			Name:      "reconnects_total",
			Help:      "Times the channel re-dialled after losing the connection.",
		},
	)
)
