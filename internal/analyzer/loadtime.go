package analyzer

import (
	"context"
	"fmt"
	"math"

	"github.com/IshaanNene/ShopScope/internal/fetcher"
	"github.com/IshaanNene/ShopScope/internal/types"
)

// LoadTime re-fetches the page URL and reports the elapsed wall-clock
// seconds. The markup already held by the page is not used.
type LoadTime struct {
	fetcher fetcher.Fetcher
}

// NewLoadTime creates a load-time analyzer that measures through f.
func NewLoadTime(f fetcher.Fetcher) *LoadTime {
	return &LoadTime{fetcher: f}
}

func (*LoadTime) Name() string  { return "load-time" }
func (*LoadTime) Title() string { return "Page load time" }

func (a *LoadTime) Analyze(ctx context.Context, page *types.Page) (types.Summary, error) {
	fresh, err := a.fetcher.Fetch(ctx, page.URL)
	if err != nil {
		return nil, fmt.Errorf("load time: %v: %w", err, types.ErrNoData)
	}

	seconds := math.Round(fresh.FetchDuration.Seconds()*100) / 100
	return types.Summary{types.Pair("Page Load Time (seconds)", seconds)}, nil
}
