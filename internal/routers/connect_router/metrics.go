package connect_router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ankibridge",
		Subsystem: "connect",
		Name:      "actions_total",
		Help:      "Dispatched actions by outcome.",
	}, []string{"action", "outcome"})

	actionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ankibridge",
		Subsystem: "connect",
		Name:      "action_duration_seconds",
		Help:      "Action handler latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})
)

func actionCounter(action string, outcome string) {
	if action == "" {
		action = "(none)"
	}
	actionTotal.WithLabelValues(action, outcome).Inc()
}

func observeActionDuration(action string, d time.Duration) {
	actionDuration.WithLabelValues(action).Observe(d.Seconds())
}
