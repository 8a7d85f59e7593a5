package types

import (
	"bytes"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// Page is the raw markup of one fetched URL.
type Page struct {
	// ID correlates log lines for one analysis request.
	ID string

	// URL is the address the markup was requested from.
	URL string

	// Body is the raw markup, decoded to UTF-8.
	Body []byte

	// StatusCode is the HTTP status of the fetch (0 for local markup).
	StatusCode int

	// ContentType is the MIME type reported by the server.
	ContentType string

	// FetchDuration is how long the fetch took.
	FetchDuration time.Duration

	// FetchedAt is when this page was received.
	FetchedAt time.Time
}

// NewPage wraps markup that did not come from the fetcher (tests, files).
func NewPage(rawURL string, body []byte) *Page {
	return &Page{
		ID:        uuid.NewString(),
		URL:       rawURL,
		Body:      body,
		FetchedAt: time.Now(),
	}
}

// Document parses the markup into a fresh goquery document.
// Each call returns a new tree so analyzers never share mutable state.
func (p *Page) Document() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
}

// Size returns the markup length in bytes.
func (p *Page) Size() int {
	return len(p.Body)
}
