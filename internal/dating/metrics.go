package dating

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	swipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dating_swipes_total",
			Help: "Total number of swipes by outcome",
		},
		[]string{"outcome"},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_matches_total",
			Help: "Total number of matches created",
		},
	)

	feedsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_feeds_generated_total",
			Help: "Total number of discover feeds generated",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dating_compatibility_scores",
			Help:    "Distribution of compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		},
	)

	discoverDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dating_discover_duration_seconds",
			Help: "Time to serve a discover feed",
		},
		[]string{"source"},
	)
)

func RecordSwipe(outcome SwipeOutcome) {
	swipesTotal.WithLabelValues(string(outcome)).Inc()
}

func RecordMatch() {
	matchesTotal.Inc()
}

func RecordFeedGenerated() {
	feedsGenerated.Inc()
}

func RecordCompatibilityScore(score int) {
	compatibilityScores.Observe(float64(score))
}

// RecordDiscover observes feed latency; source is "cache" or "computed"
func RecordDiscover(source string, duration time.Duration) {
	discoverDuration.WithLabelValues(source).Observe(duration.Seconds())
}
