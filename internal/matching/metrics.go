// internal/matching/metrics.go

package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_snapshot_scores",
			Help:    "Distribution of snapshot match scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	suggestionsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_suggestions_generated_total",
			Help: "Total number of bridge suggestion bundles generated",
		},
	)

	candidatesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_candidates_skipped_total",
			Help: "Candidates skipped because their owner was not in the supplied user collection",
		},
	)
)

func recordSnapshotScore(score float64) {
	snapshotScores.Observe(score)
}

func recordSuggestionsGenerated() {
	suggestionsGenerated.Inc()
}

func recordSkippedCandidate() {
	candidatesSkipped.Inc()
}
