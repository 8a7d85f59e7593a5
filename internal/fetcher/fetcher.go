package fetcher

import (
	"context"

	"github.com/IshaanNene/ShopScope/internal/types"
)

// Fetcher retrieves the markup behind a URL.
type Fetcher interface {
	// Fetch performs a single GET. Any non-2xx status or network error
	// is returned as a *types.FetchError; there is no retry.
	Fetch(ctx context.Context, rawURL string) (*types.Page, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}
