package pipeline

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/IshaanNene/ShopScope/internal/types"
)

// Middleware processes a product and returns the (possibly modified) product.
// Return nil to drop the product from the pipeline.
type Middleware interface {
	// Name returns the middleware's identifier.
	Name() string

	// Process transforms a product. Return nil to drop it.
	Process(p *types.Product) (*types.Product, error)
}

// Pipeline chains middleware processors together.
type Pipeline struct {
	middlewares []Middleware
	logger      *slog.Logger
}

// New creates a new Pipeline.
func New(logger *slog.Logger) *Pipeline {
	return &Pipeline{
		logger: logger.With("component", "pipeline"),
	}
}

// Use adds a middleware to the pipeline chain.
func (p *Pipeline) Use(mw Middleware) *Pipeline {
	p.middlewares = append(p.middlewares, mw)
	p.logger.Debug("middleware added", "name", mw.Name(), "position", len(p.middlewares))
	return p
}

// Process runs the product through all middleware in order.
func (p *Pipeline) Process(product *types.Product) (*types.Product, error) {
	current := product

	for _, mw := range p.middlewares {
		result, err := mw.Process(current)
		if err != nil {
			return nil, &types.PipelineError{Stage: mw.Name(), Err: err}
		}
		if result == nil {
			p.logger.Debug("product dropped", "stage", mw.Name(), "url", product.SourceURL)
			return nil, nil
		}
		current = result
	}

	return current, nil
}

// --- Built-in Middleware ---

// TrimMiddleware trims whitespace from all string fields and removes
// fields that end up empty.
type TrimMiddleware struct{}

func (m *TrimMiddleware) Name() string { return "trim" }

func (m *TrimMiddleware) Process(p *types.Product) (*types.Product, error) {
	for key, v := range p.Fields {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s == "" {
			p.Delete(key)
		} else {
			p.Set(key, s)
		}
	}
	return p, nil
}

// DropEmptyMiddleware drops products with no detected field.
type DropEmptyMiddleware struct{}

func (m *DropEmptyMiddleware) Name() string { return "drop_empty" }

func (m *DropEmptyMiddleware) Process(p *types.Product) (*types.Product, error) {
	if p.IsEmpty() {
		return nil, nil
	}
	return p, nil
}

// ScoreMiddleware sets the best-seller score:
// min(reviews, ReviewCap) + rating*RatingWeight. Missing fields add 0, and
// a rating too large to weight is treated as not detected.
type ScoreMiddleware struct {
	ReviewCap    int
	RatingWeight float64
}

// NewScoreMiddleware returns the standard scoring (cap 100, weight 20).
func NewScoreMiddleware() *ScoreMiddleware {
	return &ScoreMiddleware{ReviewCap: 100, RatingWeight: 20}
}

func (m *ScoreMiddleware) Name() string { return "score" }

func (m *ScoreMiddleware) Process(p *types.Product) (*types.Product, error) {
	if m.ReviewCap < 0 {
		return nil, fmt.Errorf("negative review cap %d", m.ReviewCap)
	}
	score := 0.0
	if n, ok := p.Reviews(); ok {
		score += float64(min(n, m.ReviewCap))
	}
	if r, ok := p.Rating(); ok {
		if weighted := r * m.RatingWeight; !math.IsNaN(weighted) && !math.IsInf(weighted, 0) {
			score += weighted
		}
	}
	p.Set(types.FieldScore, score)
	return p, nil
}
