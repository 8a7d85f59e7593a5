package observability

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics(testLogger)
	m.PagesFetched.Add(2)
	m.AnalysesNoData.Add(1)

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "shopscope_pages_fetched_total 2")
	assert.Contains(t, body, "shopscope_analyses_no_data_total 1")
	assert.Contains(t, body, "# TYPE shopscope_analyses_total counter")
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics(testLogger)
	m.AnalysesRun.Add(3)
	m.InvalidSelected.Add(1)

	s := m.Snapshot()
	assert.EqualValues(t, 3, s["analyses_run"])
	assert.EqualValues(t, 1, s["invalid_selections"])
	assert.Zero(t, s["fetches_failed"])
}
