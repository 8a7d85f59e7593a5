package analyzer

import (
	"context"
	"fmt"

	"github.com/IshaanNene/ShopScope/internal/parser"
	"github.com/IshaanNene/ShopScope/internal/types"
)

// CommonWords reports the most frequent lower-cased tokens of the
// visible text.
type CommonWords struct {
	TopN int
}

func (CommonWords) Name() string  { return "common-words" }
func (CommonWords) Title() string { return "Most common words" }

func (a CommonWords) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	counts, _, err := wordCounts(page)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("common words: %w", types.ErrNoData)
	}

	counts = counts[:min(len(counts), a.TopN)]
	summary := make(types.Summary, 0, len(counts))
	for _, wc := range counts {
		summary = append(summary, types.Pair(wc.Word, wc.Count))
	}
	return summary, nil
}

// WordCount reports the total number of tokens in the visible text.
// Case does not matter for the count.
type WordCount struct{}

func (WordCount) Name() string  { return "word-count" }
func (WordCount) Title() string { return "Word count" }

func (WordCount) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}
	total := len(parser.Tokenize(parser.VisibleText(doc)))
	return types.Summary{types.Pair("Total Word Count", total)}, nil
}

// KeywordDensity reports the most frequent tokens as a percentage of
// all tokens.
type KeywordDensity struct {
	TopN int
}

func (KeywordDensity) Name() string  { return "keyword-density" }
func (KeywordDensity) Title() string { return "Keyword density" }

func (a KeywordDensity) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	counts, total, err := wordCounts(page)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("keyword density: %w", types.ErrNoData)
	}

	counts = counts[:min(len(counts), a.TopN)]
	summary := make(types.Summary, 0, len(counts))
	for _, wc := range counts {
		summary = append(summary, types.Pair(wc.Word, float64(wc.Count)/float64(total)*100))
	}
	return summary, nil
}

// wordCounts returns the frequency table of the page's lower-cased tokens
// along with the total token count.
func wordCounts(page *types.Page) ([]parser.WordCount, int, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, 0, err
	}
	words := parser.Words(parser.VisibleText(doc))
	return parser.CountWords(words), len(words), nil
}
