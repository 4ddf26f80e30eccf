package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsTotal(t *testing.T) {
	before := testutil.ToFloat64(RecordsTotal.WithLabelValues("Stocks", OutcomeSuccess))
	RecordsTotal.WithLabelValues("Stocks", OutcomeSuccess).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RecordsTotal.WithLabelValues("Stocks", OutcomeSuccess)))
}

func TestPush(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	LedgerAdjustmentsTotal.WithLabelValues(LedgerApplied).Inc()
	require.NoError(t, Push(context.Background(), srv.URL, "tea-seeder", "run-1"))

	assert.True(t, strings.HasPrefix(gotPath, "/metrics/job/tea-seeder/run_id/run-1"), gotPath)
	assert.NotEmpty(t, gotBody)
}

func TestPush_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Error(t, Push(context.Background(), srv.URL, "tea-seeder", "run-1"))
}
