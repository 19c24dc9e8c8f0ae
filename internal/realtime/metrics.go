package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_events_dispatched_total",
		Help: "Events fanned out to clients, by type.",
	}, []string{"type"})

	dropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "realtime_events_dropped_total",
		Help: "Events dropped because the hub buffer was full.",
	})
)

func recordDispatched(eventType string) {
	dispatched.WithLabelValues(eventType).Inc()
}

func recordDropped() {
	dropped.Inc()
}
