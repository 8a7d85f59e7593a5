package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks operational counters for fetches and analyses.
type Metrics struct {
	// Fetch metrics
	PagesFetched    atomic.Int64
	FetchesFailed   atomic.Int64
	BytesDownloaded atomic.Int64

	// Analysis metrics
	AnalysesRun     atomic.Int64
	AnalysesNoData  atomic.Int64
	AnalysesFailed  atomic.Int64
	InvalidSelected atomic.Int64

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	metrics := []struct {
		name  string
		help  string
		value int64
	}{
		{"shopscope_pages_fetched_total", "Total pages fetched", m.PagesFetched.Load()},
		{"shopscope_fetches_failed_total", "Total failed fetches", m.FetchesFailed.Load()},
		{"shopscope_bytes_downloaded_total", "Total bytes downloaded", m.BytesDownloaded.Load()},
		{"shopscope_analyses_total", "Total analyzer invocations", m.AnalysesRun.Load()},
		{"shopscope_analyses_no_data_total", "Analyses that found no data", m.AnalysesNoData.Load()},
		{"shopscope_analyses_failed_total", "Analyses that failed", m.AnalysesFailed.Load()},
		{"shopscope_invalid_selections_total", "Requests for unknown analyzers", m.InvalidSelected.Load()},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", metric.name)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// Snapshot returns all metrics as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"pages_fetched":      m.PagesFetched.Load(),
		"fetches_failed":     m.FetchesFailed.Load(),
		"bytes_downloaded":   m.BytesDownloaded.Load(),
		"analyses_run":       m.AnalysesRun.Load(),
		"analyses_no_data":   m.AnalysesNoData.Load(),
		"analyses_failed":    m.AnalysesFailed.Load(),
		"invalid_selections": m.InvalidSelected.Load(),
	}
}

// LogSummary writes the current counters at info level.
func (m *Metrics) LogSummary() {
	s := m.Snapshot()
	m.logger.Info("metrics",
		"pages_fetched", s["pages_fetched"],
		"fetches_failed", s["fetches_failed"],
		"analyses_run", s["analyses_run"],
		"analyses_no_data", s["analyses_no_data"],
	)
}
