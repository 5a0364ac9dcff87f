package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors the service exposes on /metrics.
type Metrics struct {
	// HTTP traffic, labelled by route template rather than raw path
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec

	UsersCreatedTotal    prometheus.Counter
	ExercisesLoggedTotal prometheus.Counter

	// result is "hit", "miss" or "error"
	UserCacheLookupsTotal *prometheus.CounterVec
}

// New builds the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		RequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "End-to-end handler duration for HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		UsersCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "users_created_total",
			Help: "Total number of users created.",
		}),
		ExercisesLoggedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "exercises_logged_total",
			Help: "Total number of exercises logged.",
		}),
		UserCacheLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "user_cache_lookups_total",
			Help: "User lookups served through the Redis cache, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSeconds,
		m.UsersCreatedTotal,
		m.ExercisesLoggedTotal,
		m.UserCacheLookupsTotal,
	)
	return m
}

// NewNop returns collectors registered nowhere, for tests and tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
