package bridges

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridges_snapshots_created_total",
		Help: "Snapshots posted, by stored media type.",
	}, []string{"media_type"})

	bridgesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridges_created_total",
		Help: "Bridges formed from matched snapshot pairs.",
	})

	bridgeViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridges_views_recorded_total",
		Help: "Bridge view events recorded.",
	})
)

func recordSnapshotCreated(mediaType string) {
	snapshotsCreated.WithLabelValues(mediaType).Inc()
}

func recordBridgeCreated() {
	bridgesCreated.Inc()
}

func recordBridgeView() {
	bridgeViews.Inc()
}
