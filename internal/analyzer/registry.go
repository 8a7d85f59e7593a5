// Package analyzer computes the per-page summaries. Every analyzer is a
// strategy registered under a name; shells select one by that name.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/IshaanNene/ShopScope/internal/fetcher"
	"github.com/IshaanNene/ShopScope/internal/observability"
	"github.com/IshaanNene/ShopScope/internal/types"
)

// Analyzer turns one page into an ordered summary.
type Analyzer interface {
	// Name is the registry key, e.g. "price-range".
	Name() string

	// Title is the human-readable label, e.g. "Price range".
	Title() string

	// Analyze returns a non-empty summary, or an error wrapping
	// types.ErrNoData when nothing was found.
	Analyze(ctx context.Context, page *types.Page) (types.Summary, error)
}

// Registry manages analyzer registration and lookup.
type Registry struct {
	analyzers map[string]Analyzer
	order     []string
	metrics   *observability.Metrics
	logger    *slog.Logger
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry. metrics may be nil.
func NewRegistry(metrics *observability.Metrics, logger *slog.Logger) *Registry {
	return &Registry{
		analyzers: make(map[string]Analyzer),
		metrics:   metrics,
		logger:    logger.With("component", "analyzer_registry"),
	}
}

// Register adds an analyzer to the registry.
func (r *Registry) Register(a Analyzer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := a.Name()
	if _, exists := r.analyzers[name]; exists {
		return fmt.Errorf("analyzer %q already registered", name)
	}

	r.analyzers[name] = a
	r.order = append(r.order, name)

	r.logger.Debug("analyzer registered", "name", name, "title", a.Title())
	return nil
}

// Get returns an analyzer by name or, case-insensitively, by title.
func (r *Registry) Get(name string) (Analyzer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.analyzers[name]; ok {
		return a, nil
	}
	for _, a := range r.analyzers {
		if strings.EqualFold(a.Title(), name) {
			return a, nil
		}
	}
	return nil, &types.InvalidSelectionError{Name: name}
}

// List returns all analyzers in registration order.
func (r *Registry) List() []Analyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Analyzer, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.analyzers[name])
	}
	return out
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Run looks up an analyzer and applies it to page.
func (r *Registry) Run(ctx context.Context, name string, page *types.Page) (types.Summary, error) {
	a, err := r.Get(name)
	if err != nil {
		if r.metrics != nil {
			r.metrics.InvalidSelected.Add(1)
		}
		return nil, err
	}

	start := time.Now()
	summary, err := a.Analyze(ctx, page)
	elapsed := time.Since(start)

	if r.metrics != nil {
		r.metrics.AnalysesRun.Add(1)
	}

	switch {
	case errors.Is(err, types.ErrNoData):
		if r.metrics != nil {
			r.metrics.AnalysesNoData.Add(1)
		}
		r.logger.Info("no data found", "analyzer", a.Name(), "page_id", page.ID, "url", page.URL)
		return nil, err
	case err != nil:
		if r.metrics != nil {
			r.metrics.AnalysesFailed.Add(1)
		}
		return nil, fmt.Errorf("analyzer %s: %w", a.Name(), err)
	}

	r.logger.Debug("analysis complete",
		"analyzer", a.Name(),
		"page_id", page.ID,
		"pairs", len(summary),
		"duration", elapsed,
	)
	return summary, nil
}

// DefaultTopN is the ranking length used when none is configured.
const DefaultTopN = 10

// NewDefaultRegistry registers every built-in analyzer. f is used by the
// load-time analyzer for its own fetch.
func NewDefaultRegistry(f fetcher.Fetcher, topN int, metrics *observability.Metrics, logger *slog.Logger) (*Registry, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	r := NewRegistry(metrics, logger)
	builtins := []Analyzer{
		NewPopularity(topN, logger),
		NewPriceRange(logger),
		NewBestSellers(topN, logger),
		CommonWords{TopN: topN},
		MetaTags{},
		Headings{},
		Links{},
		Images{},
		NewLoadTime(f),
		WordCount{},
		KeywordDensity{TopN: topN},
	}
	for _, a := range builtins {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}
