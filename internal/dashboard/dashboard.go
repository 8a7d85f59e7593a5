// Package dashboard serves a browser page for running analyzers through
// the HTTP API and watching the counters.
package dashboard

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/IshaanNene/ShopScope/internal/analyzer"
)

// StatsProvider provides the counters shown on the page.
type StatsProvider interface {
	Snapshot() map[string]int64
}

// Dashboard serves the web dashboard.
type Dashboard struct {
	analyzers []analyzer.Analyzer
	provider  StatsProvider
	version   string
	page      *template.Template
	logger    *slog.Logger
}

// NewDashboard creates a dashboard listing the given analyzers.
func NewDashboard(analyzers []analyzer.Analyzer, provider StatsProvider, version string, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		analyzers: analyzers,
		provider:  provider,
		version:   version,
		page:      template.Must(template.New("dashboard").Parse(dashboardHTML)),
		logger:    logger.With("component", "dashboard"),
	}
}

// Routes returns the dashboard router: the page at "/" and counters at
// "/stats".
func (d *Dashboard) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", d.handleDashboard)
	r.Get("/stats", d.handleAPIStats)
	return r
}

type option struct {
	Name  string
	Title string
}

func (d *Dashboard) handleDashboard(w http.ResponseWriter, r *http.Request) {
	opts := make([]option, len(d.analyzers))
	for i, a := range d.analyzers {
		opts[i] = option{Name: a.Name(), Title: a.Title()}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := d.page.Execute(w, struct {
		Analyzers []option
		Version   string
	}{opts, d.version})
	if err != nil {
		d.logger.Error("failed to render dashboard", "error", err)
	}
}

func (d *Dashboard) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if d.provider != nil {
		for k, v := range d.provider.Snapshot() {
			stats[k] = v
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		d.logger.Error("failed to encode stats", "error", err)
	}
}
