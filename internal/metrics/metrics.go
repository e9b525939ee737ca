// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StorageFlushes counts state flushes by outcome ("ok" or "error")
	StorageFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cybercalc_storage_flushes_total",
		Help: "Whole-state flushes to the persistence backend, by outcome.",
	}, []string{"outcome"})

	// StorageFlushFailures counts flushes that failed and left the store dirty
	StorageFlushFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cybercalc_storage_flush_failures_total",
		Help: "Flushes that failed; the in-memory state stays authoritative.",
	})

	// StorageFlushDuration observes the time spent writing a snapshot
	StorageFlushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cybercalc_storage_flush_duration_seconds",
		Help:    "Time spent persisting the whole state.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	})

	// CompletionsTotal counts recorded completions by kind ("quiz" or "challenge") and difficulty
	CompletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cybercalc_completions_total",
		Help: "Completed quizzes and challenges.",
	}, []string{"kind", "difficulty"})

	// PointsAwarded counts points granted by completions
	PointsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cybercalc_points_awarded_total",
		Help: "Points added to accounts by completions.",
	}, []string{"kind"})

	// LivesLost counts lives taken for wrong answers
	LivesLost = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cybercalc_lives_lost_total",
		Help: "Lives lost for incorrect answers.",
	})

	// Registrations counts created accounts
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cybercalc_registrations_total",
		Help: "Accounts created through registration.",
	})

	// Logins counts login attempts by outcome ("ok" or "rejected")
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cybercalc_logins_total",
		Help: "Login attempts, by outcome.",
	}, []string{"outcome"})
)
