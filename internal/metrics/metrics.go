// Package metrics holds the seeder's Prometheus collectors. They live in a
// dedicated registry so a run can push exactly these series to a Pushgateway.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Record outcomes
const (
	OutcomeSuccess = "success"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Ledger outcomes
const (
	LedgerApplied      = "applied"
	LedgerDropped      = "dropped"
	LedgerDeduplicated = "deduplicated"
)

var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	RecordsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tea",
		Subsystem: "seed",
		Name:      "records_total",
		Help:      "Records processed by the seeder, by entity and outcome.",
	}, []string{"entity", "outcome"})

	BatchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tea",
		Subsystem: "seed",
		Name:      "batch_duration_seconds",
		Help:      "Time spent loading one entity batch.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"entity"})

	TruncateFailuresTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "tea",
		Subsystem: "seed",
		Name:      "truncate_failures_total",
		Help:      "Tables that could not be truncated during reset.",
	})

	LedgerAdjustmentsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tea",
		Subsystem: "ledger",
		Name:      "adjustments_total",
		Help:      "Stock weight adjustments, by outcome.",
	}, []string{"outcome"})

	TableRows = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tea",
		Subsystem: "seed",
		Name:      "table_rows",
		Help:      "Row count per entity table after the last verification pass.",
	}, []string{"table"})

	HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tea",
		Subsystem: "monitor",
		Name:      "http_requests_total",
		Help:      "Requests served by the monitoring server.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tea",
		Subsystem: "monitor",
		Name:      "http_request_duration_seconds",
		Help:      "Monitoring server request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Push sends the registry to a Pushgateway under job, grouped by run id.
func Push(ctx context.Context, url, job, runID string) error {
	err := push.New(url, job).
		Gatherer(Registry).
		Grouping("run_id", runID).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
