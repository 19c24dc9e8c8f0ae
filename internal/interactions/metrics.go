package interactions

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var toggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "interactions_toggles_total",
	Help: "Like/save toggle operations, by kind and direction.",
}, []string{"kind", "direction"})

func recordToggle(kind, direction string) {
	toggles.WithLabelValues(kind, direction).Inc()
}
