// Package shopscope provides a public SDK for embedding ShopScope as a library.
//
// Example usage:
//
//	client, err := shopscope.NewClient(
//	    shopscope.WithTopN(5),
//	    shopscope.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	result, err := client.Analyze(ctx, "https://shop.example/lamps", "price-range")
//	if err != nil {
//	    return err
//	}
//	for _, line := range shopscope.Lines(result.Summary) {
//	    fmt.Println(line)
//	}
package shopscope

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/IshaanNene/ShopScope/internal/analyzer"
	"github.com/IshaanNene/ShopScope/internal/config"
	"github.com/IshaanNene/ShopScope/internal/fetcher"
	"github.com/IshaanNene/ShopScope/internal/observability"
	"github.com/IshaanNene/ShopScope/internal/report"
	"github.com/IshaanNene/ShopScope/internal/types"
)

// Re-exported types so callers outside this module can name them.
type (
	Page                  = types.Page
	Summary               = types.Summary
	SummaryPair           = types.SummaryPair
	Result                = report.Result
	Analyzer              = analyzer.Analyzer
	FetchError            = types.FetchError
	InvalidSelectionError = types.InvalidSelectionError
)

// ErrNoData is wrapped by Analyze when the analyzer found nothing.
var ErrNoData = types.ErrNoData

// Lines formats a summary as "label: value" lines.
func Lines(s Summary) []string { return report.Lines(s) }

// Client fetches pages and runs analyzers on them.
type Client struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *observability.Metrics
	fetcher  fetcher.Fetcher
	registry *analyzer.Registry
}

type settings struct {
	cfg     *config.Config
	logger  *slog.Logger
	fetcher fetcher.Fetcher
}

// Option configures a Client.
type Option func(*settings)

// WithConfig replaces the default configuration. Pass it before any
// option that edits individual settings.
func WithConfig(cfg *config.Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithLogger sets the logger used by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithUserAgent sets a custom User-Agent.
func WithUserAgent(ua string) Option {
	return func(s *settings) { s.cfg.Fetcher.UserAgent = ua }
}

// WithTimeout sets the fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.cfg.Fetcher.Timeout = d }
}

// WithTopN sets the number of entries in ranking summaries.
func WithTopN(n int) Option {
	return func(s *settings) { s.cfg.Analysis.TopN = n }
}

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(s *settings) { s.fetcher = f }
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) (*Client, error) {
	s := &settings{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(s)
	}
	if err := config.Validate(s.cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	metrics := observability.NewMetrics(s.logger)
	if s.fetcher == nil {
		s.fetcher = fetcher.NewHTTPFetcher(s.cfg, metrics, s.logger)
	}

	registry, err := analyzer.NewDefaultRegistry(s.fetcher, s.cfg.Analysis.TopN, metrics, s.logger)
	if err != nil {
		return nil, fmt.Errorf("register analyzers: %w", err)
	}

	return &Client{
		cfg:      s.cfg,
		logger:   s.logger.With("component", "client"),
		metrics:  metrics,
		fetcher:  s.fetcher,
		registry: registry,
	}, nil
}

// Config returns the effective configuration.
func (c *Client) Config() *config.Config { return c.cfg }

// Registry returns the analyzer registry.
func (c *Client) Registry() *analyzer.Registry { return c.registry }

// Metrics returns the client's counters.
func (c *Client) Metrics() *observability.Metrics { return c.metrics }

// Fetcher returns the fetcher pages are retrieved with.
func (c *Client) Fetcher() fetcher.Fetcher { return c.fetcher }

// Analyzers returns the registered analyzers in order.
func (c *Client) Analyzers() []Analyzer { return c.registry.List() }

// Fetch retrieves a page. Malformed URLs surface as *FetchError.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if err := config.ValidateURL(rawURL); err != nil {
		c.logger.Warn("URL looks malformed, fetching anyway", "url", rawURL, "error", err)
	}

	page, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	c.logger.Info("page fetched",
		"page_id", page.ID,
		"url", rawURL,
		"status", page.StatusCode,
		"size", page.Size(),
		"duration", page.FetchDuration,
	)
	return page, nil
}

// Run applies each named analyzer to an already fetched page, in order.
// An analyzer that finds nothing yields a Result with NoData set. Unknown
// names fail before any analyzer runs.
func (c *Client) Run(ctx context.Context, page *Page, names ...string) ([]*Result, error) {
	selected := make([]Analyzer, 0, len(names))
	for _, name := range names {
		a, err := c.registry.Get(name)
		if err != nil {
			c.metrics.InvalidSelected.Add(1)
			return nil, err
		}
		selected = append(selected, a)
	}

	results := make([]*Result, 0, len(selected))
	for _, a := range selected {
		start := time.Now()
		summary, err := c.registry.Run(ctx, a.Name(), page)
		noData := types.IsNoData(err)
		if err != nil && !noData {
			return nil, err
		}
		results = append(results, &Result{
			URL:      page.URL,
			Analyzer: a.Name(),
			Title:    a.Title(),
			Summary:  summary,
			NoData:   noData,
			Elapsed:  time.Since(start),
		})
	}
	return results, nil
}

// Analyze fetches rawURL and runs one analyzer on it. The error wraps
// ErrNoData when the analyzer found nothing.
func (c *Client) Analyze(ctx context.Context, rawURL, name string) (*Result, error) {
	if _, err := c.registry.Get(name); err != nil {
		c.metrics.InvalidSelected.Add(1)
		return nil, err
	}
	page, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	results, err := c.Run(ctx, page, name)
	if err != nil {
		return nil, err
	}
	if results[0].NoData {
		return results[0], fmt.Errorf("%s: %w", results[0].Analyzer, ErrNoData)
	}
	return results[0], nil
}

// Report fetches rawURL once and runs every registered analyzer on it.
func (c *Client) Report(ctx context.Context, rawURL string) ([]*Result, error) {
	page, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, page, c.registry.Names()...)
}

// AnalyzeMarkup runs one analyzer on markup the caller already holds.
// rawURL is used for link classification and by the load-time analyzer.
func (c *Client) AnalyzeMarkup(ctx context.Context, rawURL string, markup []byte, name string) (*Result, error) {
	results, err := c.Run(ctx, types.NewPage(rawURL, markup), name)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// Close releases the fetcher and logs the counters.
func (c *Client) Close() error {
	c.metrics.LogSummary()
	return c.fetcher.Close()
}
