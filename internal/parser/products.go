package parser

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/ShopScope/internal/pipeline"
	"github.com/IshaanNene/ShopScope/internal/types"
)

// Extractor turns a document into product records.
type Extractor struct {
	locator *Locator
	rules   *FieldRules
	pipe    *pipeline.Pipeline
	logger  *slog.Logger
}

// NewExtractor creates an Extractor with the default heuristics.
func NewExtractor(logger *slog.Logger) *Extractor {
	return NewExtractorWith(DefaultLocator(), DefaultFieldRules(), logger)
}

// NewExtractorWith creates an Extractor with site-specific heuristics.
func NewExtractorWith(locator *Locator, rules *FieldRules, logger *slog.Logger) *Extractor {
	pipe := pipeline.New(logger).
		Use(&pipeline.TrimMiddleware{}).
		Use(&pipeline.DropEmptyMiddleware{})

	return &Extractor{
		locator: locator,
		rules:   rules,
		pipe:    pipe,
		logger:  logger.With("component", "product_extractor"),
	}
}

// Products extracts one record per container that yielded at least one
// field. The result is rebuilt from scratch on every call.
func (e *Extractor) Products(doc *goquery.Document, sourceURL string) []*types.Product {
	containers := e.locator.Locate(doc)

	products := make([]*types.Product, 0, len(containers))
	for _, c := range containers {
		p, err := e.pipe.Process(e.rules.Extract(c, sourceURL))
		if err != nil {
			e.logger.Warn("product skipped", "url", sourceURL, "error", err)
			continue
		}
		if p != nil {
			products = append(products, p)
		}
	}

	e.logger.Debug("products extracted",
		"url", sourceURL,
		"containers", len(containers),
		"products", len(products),
	)
	return products
}
