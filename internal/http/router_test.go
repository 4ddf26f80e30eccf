package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tea-backend/internal/handlers"
	"tea-backend/internal/health"
	"tea-backend/internal/metrics"
	"tea-backend/internal/models"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func serve(t *testing.T, db pinger, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(handlers.NewHealthHandler(health.NewHealthChecker(db)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := serve(t, pinger{}, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Readiness(t *testing.T) {
	rec := serve(t, pinger{}, "/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = serve(t, pinger{err: errors.New("down")}, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unhealthy"`)
}

func TestRouter_Metrics(t *testing.T) {
	metrics.RecordsTotal.WithLabelValues(string(models.KindAdmin), metrics.OutcomeSuccess).Inc()

	rec := serve(t, pinger{}, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tea_seed_records_total")
}

func TestRouter_UnknownPath(t *testing.T) {
	rec := serve(t, pinger{}, "/api/stocks")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
