package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tea-backend/internal/handlers"
	"tea-backend/internal/metrics"
	"tea-backend/internal/middleware"
)

// NewRouter serves health checks and seeder metrics while a run is in
// progress.
func NewRouter(healthHandler *handlers.HealthHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.PanicRecovery, middleware.MetricsMiddleware)

	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods("GET")

	return r
}
