package aimatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var matches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "aimatch_matches_total",
	Help: "Showcase matches served, by resolution path.",
}, []string{"path"})

func recordMatch(path string) {
	matches.WithLabelValues(path).Inc()
}
