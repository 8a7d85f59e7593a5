package analyzer

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/IshaanNene/ShopScope/internal/parser"
	"github.com/IshaanNene/ShopScope/internal/pipeline"
	"github.com/IshaanNene/ShopScope/internal/types"
)

const unknownName = "Unknown"

// productSource extracts product records from a page. Each Analyze call
// parses the page again, so nothing is shared between invocations.
type productSource struct {
	extractor *parser.Extractor
}

func (s productSource) products(page *types.Page) ([]*types.Product, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}
	return s.extractor.Products(doc, page.URL), nil
}

func displayName(p *types.Product) string {
	if name, ok := p.Name(); ok {
		return name
	}
	return unknownName
}

// --- Popularity ---

// Popularity ranks products by review count, most reviewed first. Products
// without a review count sort as 0 and display "N/A".
type Popularity struct {
	productSource
	TopN int
}

// NewPopularity creates a popularity analyzer.
func NewPopularity(topN int, logger *slog.Logger) *Popularity {
	return &Popularity{productSource: productSource{parser.NewExtractor(logger)}, TopN: topN}
}

func (*Popularity) Name() string  { return "popularity" }
func (*Popularity) Title() string { return "Product popularity" }

func (a *Popularity) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	products, err := a.products(page)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("popularity: %w", types.ErrNoData)
	}

	slices.SortStableFunc(products, func(x, y *types.Product) int {
		rx, _ := x.Reviews()
		ry, _ := y.Reviews()
		if c := cmp.Compare(ry, rx); c != 0 {
			return c
		}
		return cmp.Compare(displayName(x), displayName(y))
	})

	products = products[:min(len(products), a.TopN)]
	summary := make(types.Summary, 0, len(products))
	for _, p := range products {
		var value any = "N/A"
		if n, ok := p.Reviews(); ok {
			value = n
		}
		summary = append(summary, types.Pair(displayName(p), value))
	}
	return summary, nil
}

// --- Price Range ---

// PriceBucket is a half-open price interval [Min, Max). Max of +Inf means
// the bucket is unbounded.
type PriceBucket struct {
	Label string
	Min   float64
	Max   float64
}

// Contains reports whether price falls in the bucket.
func (b PriceBucket) Contains(price float64) bool {
	return price >= b.Min && price < b.Max
}

// DefaultPriceBuckets are the histogram bins. Prices in [50,51), [100,101)
// and [200,201) fall into no bucket.
var DefaultPriceBuckets = []PriceBucket{
	{Label: "0-50", Min: 0, Max: 50},
	{Label: "51-100", Min: 51, Max: 100},
	{Label: "101-200", Min: 101, Max: 200},
	{Label: "201-500", Min: 201, Max: 500},
	{Label: "500+", Min: 500, Max: math.Inf(1)},
}

// PriceRange counts detected prices per bucket.
type PriceRange struct {
	productSource
	Buckets []PriceBucket
}

// NewPriceRange creates a price histogram analyzer with the default buckets.
func NewPriceRange(logger *slog.Logger) *PriceRange {
	return &PriceRange{productSource: productSource{parser.NewExtractor(logger)}, Buckets: DefaultPriceBuckets}
}

func (*PriceRange) Name() string  { return "price-range" }
func (*PriceRange) Title() string { return "Price range" }

func (a *PriceRange) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	products, err := a.products(page)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(a.Buckets))
	total := 0
	for _, p := range products {
		price, ok := p.Price()
		if !ok {
			continue
		}
		for i, b := range a.Buckets {
			if b.Contains(price) {
				counts[i]++
				total++
			}
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("price range: %w", types.ErrNoData)
	}

	summary := make(types.Summary, len(a.Buckets))
	for i, b := range a.Buckets {
		summary[i] = types.Pair(b.Label, counts[i])
	}
	return summary, nil
}

// --- Best Sellers ---

// BestSellers ranks products by a composite of reviews and rating.
type BestSellers struct {
	productSource
	scorer *pipeline.ScoreMiddleware
	TopN   int
}

// NewBestSellers creates a best-seller analyzer with the standard scoring.
func NewBestSellers(topN int, logger *slog.Logger) *BestSellers {
	return &BestSellers{
		productSource: productSource{parser.NewExtractor(logger)},
		scorer:        pipeline.NewScoreMiddleware(),
		TopN:          topN,
	}
}

func (*BestSellers) Name() string  { return "best-sellers" }
func (*BestSellers) Title() string { return "Best-selling products" }

func (a *BestSellers) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	products, err := a.products(page)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("best sellers: %w", types.ErrNoData)
	}

	scored := make([]*types.Product, 0, len(products))
	for _, p := range products {
		s, err := a.scorer.Process(p.Clone())
		if err != nil {
			return nil, fmt.Errorf("score product: %w", err)
		}
		scored = append(scored, s)
	}

	slices.SortStableFunc(scored, func(x, y *types.Product) int {
		sx, _ := x.Score()
		sy, _ := y.Score()
		return cmp.Compare(sy, sx)
	})

	scored = scored[:min(len(scored), a.TopN)]
	summary := make(types.Summary, 0, len(scored))
	for _, p := range scored {
		score, _ := p.Score()
		summary = append(summary, types.Pair(displayName(p), score))
	}
	return summary, nil
}
