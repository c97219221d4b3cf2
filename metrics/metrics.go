package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	plays = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lotto",
			Name:      "plays_total",
			Help:      "Completed play attempts by result tier.",
		},
		[]string{"tier"},
	)

	playDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lotto",
			Name:      "play_duration_seconds",
			Help:      "Time spent generating, evaluating and recording one play.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
		},
	)

	referenceRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lotto",
			Subsystem: "reference",
			Name:      "refresh_total",
			Help:      "Reference draw refreshes by origin (remote, fallback) and whether they were applied.",
		},
		[]string{"origin", "applied"},
	)

	scoreResets = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lotto",
			Name:      "score_resets_total",
			Help:      "Explicit ledger resets.",
		},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lotto",
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		},
	)
)

func init() {
	Registry.MustRegister(plays, playDuration, referenceRefreshes, scoreResets, activeSessions)
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordPlay counts one play in tier and observes its duration.
func RecordPlay(tier string, d time.Duration) {
	plays.WithLabelValues(tier).Inc()
	playDuration.Observe(d.Seconds())
}

// RecordReferenceRefresh counts one reference refresh.
func RecordReferenceRefresh(origin string, applied bool) {
	a := "false"
	if applied {
		a = "true"
	}
	referenceRefreshes.WithLabelValues(origin, a).Inc()
}

func RecordScoreReset() { scoreResets.Inc() }

func SetActiveSessions(n int) { activeSessions.Set(float64(n)) }
