package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/taskhub/taskhub/internal/health"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "taskhub",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskhub",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "taskhub",
		Name:      "registrations_total",
		Help:      "Total successful user registrations.",
	})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskhub",
		Name:      "logins_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	// Retention metrics

	RetentionPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "taskhub",
		Name:      "retention_purged_tasks_total",
		Help:      "Total soft-deleted tasks physically purged by the sweeper.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		RegistrationsTotal,
		LoginsTotal,
		RetentionPurgedTotal,
	)
}

// NewServer exposes /metrics plus liveness and readiness probes on addr.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
