package fetcher

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"golang.org/x/net/html/charset"

	"github.com/IshaanNene/ShopScope/internal/config"
	"github.com/IshaanNene/ShopScope/internal/observability"
	"github.com/IshaanNene/ShopScope/internal/types"
)

// HTTPFetcher implements Fetcher using net/http.
type HTTPFetcher struct {
	client    *http.Client
	cfg       *config.FetcherConfig
	metrics   *observability.Metrics
	logger    *slog.Logger
	userAgent string
}

// NewHTTPFetcher creates a new HTTP fetcher. metrics may be nil.
func NewHTTPFetcher(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *HTTPFetcher {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.Fetcher.TLSInsecure,
		},
		DisableCompression: true, // decoded below, including brotli
	}

	ua := cfg.Fetcher.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}

	return &HTTPFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Fetcher.Timeout,
		},
		cfg:       &cfg.Fetcher,
		metrics:   metrics,
		logger:    logger.With("component", "http_fetcher"),
		userAgent: ua,
	}
}

// Fetch executes a GET request and returns the decoded page.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*types.Page, error) {
	page, err := f.fetch(ctx, rawURL)
	if f.metrics != nil {
		if err != nil {
			f.metrics.FetchesFailed.Add(1)
		} else {
			f.metrics.PagesFetched.Add(1)
			f.metrics.BytesDownloaded.Add(int64(page.Size()))
		}
	}
	return page, err
}

func (f *HTTPFetcher) fetch(ctx context.Context, rawURL string) (*types.Page, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}

	httpReq.Header.Set("User-Agent", f.userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.9")
	httpReq.Header.Set("Accept-Encoding", "gzip, deflate, br")

	start := time.Now()
	httpResp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, &types.FetchError{
			URL:        rawURL,
			StatusCode: httpResp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %s", httpResp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	reader, err := decompressReader(httpResp, httpResp.Body)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, StatusCode: httpResp.StatusCode, Err: err}
	}
	// The cap applies to the decoded markup.
	if f.cfg.MaxBodySize > 0 {
		reader = io.LimitReader(reader, f.cfg.MaxBodySize)
	}

	contentType := httpResp.Header.Get("Content-Type")
	reader, err = charset.NewReader(reader, contentType)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, StatusCode: httpResp.StatusCode, Err: fmt.Errorf("decode charset: %w", err)}
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, StatusCode: httpResp.StatusCode, Err: err}
	}
	duration := time.Since(start)

	page := &types.Page{
		ID:            uuid.NewString(),
		URL:           rawURL,
		Body:          body,
		StatusCode:    httpResp.StatusCode,
		ContentType:   contentType,
		FetchDuration: duration,
		FetchedAt:     time.Now(),
	}

	f.logger.Debug("fetch complete",
		"page_id", page.ID,
		"url", rawURL,
		"status", page.StatusCode,
		"size", page.Size(),
		"duration", duration,
	)

	return page, nil
}

// Close releases resources.
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// Type returns the fetcher type identifier.
func (f *HTTPFetcher) Type() string {
	return "http"
}

// decompressReader wraps a reader with the appropriate decompressor.
// Handles gzip, deflate, and brotli (br) encodings.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return deflateReader(reader)
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}

// deflateReader decodes HTTP deflate, which is zlib-wrapped. Some servers
// send a raw deflate stream instead, so that is accepted too.
func deflateReader(reader io.Reader) (io.Reader, error) {
	br := bufio.NewReader(reader)
	header, err := br.Peek(2)
	if err == nil && isZlibHeader(header) {
		return zlib.NewReader(br)
	}
	return flate.NewReader(br), nil
}

// isZlibHeader reports whether b starts with a zlib CMF/FLG pair
// (method 8, window <= 32K, valid check bits).
func isZlibHeader(b []byte) bool {
	cmf, flg := b[0], b[1]
	return cmf&0x0f == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}
