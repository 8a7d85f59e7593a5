package shopscope

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/ShopScope/internal/types"
)

const shopPage = `<html><head><title>Lamps</title></head><body>
<div class="product"><h2>Desk Lamp</h2><span class="price">$45</span><span class="reviews">12</span></div>
<div class="product"><h2>Floor Lamp</h2><span class="price">$120</span><span class="reviews">30</span></div>
</body></html>`

func newTestClient(t *testing.T, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		_, _ = w.Write([]byte(shopPage))
	}))
	t.Cleanup(shop.Close)

	opts = append([]Option{WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	client, err := NewClient(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, shop
}

func TestAnalyze(t *testing.T) {
	client, shop := newTestClient(t)

	result, err := client.Analyze(context.Background(), shop.URL, "popularity")
	require.NoError(t, err)
	assert.Equal(t, "Product popularity", result.Title)
	assert.Equal(t, []string{"Floor Lamp", "Desk Lamp"}, result.Summary.Labels())
	assert.Equal(t, int64(1), client.Metrics().PagesFetched.Load())
}

func TestAnalyzeNoData(t *testing.T) {
	client, shop := newTestClient(t)

	result, err := client.Analyze(context.Background(), shop.URL, "meta-tags")
	require.ErrorIs(t, err, ErrNoData)
	require.NotNil(t, result)
	assert.True(t, result.NoData)
}

func TestAnalyzeInvalidSelectionSkipsFetch(t *testing.T) {
	client, shop := newTestClient(t)

	_, err := client.Analyze(context.Background(), shop.URL, "sentiment")
	var invalid *InvalidSelectionError
	require.ErrorAs(t, err, &invalid)
	assert.ErrorIs(t, err, types.ErrInvalidSelection)
	assert.Zero(t, client.Metrics().PagesFetched.Load())
	assert.Equal(t, int64(1), client.Metrics().InvalidSelected.Load())
}

func TestFetchError(t *testing.T) {
	client, shop := newTestClient(t)

	_, err := client.Analyze(context.Background(), shop.URL+"/gone", "links")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusGone, fe.StatusCode)
}

func TestReportRunsEveryAnalyzer(t *testing.T) {
	client, shop := newTestClient(t)

	results, err := client.Report(context.Background(), shop.URL)
	require.NoError(t, err)
	require.Len(t, results, len(client.Analyzers()))
	for i, a := range client.Analyzers() {
		assert.Equal(t, a.Name(), results[i].Analyzer)
	}
	// One fetch for the page plus the load-time analyzer's own request.
	assert.Equal(t, int64(2), client.Metrics().PagesFetched.Load())
}

func TestAnalyzeMarkup(t *testing.T) {
	client, _ := newTestClient(t)

	result, err := client.AnalyzeMarkup(context.Background(), "https://shop.example/lamps", []byte(shopPage), "price-range")
	require.NoError(t, err)
	assert.Equal(t, []string{"0-50: 1", "51-100: 0", "101-200: 1", "201-500: 0", "500+: 0"}, Lines(result.Summary))
}

func TestOptions(t *testing.T) {
	client, shop := newTestClient(t, WithUserAgent("shopscope-test"), WithTimeout(5*time.Second), WithTopN(1))

	assert.Equal(t, "shopscope-test", client.Config().Fetcher.UserAgent)
	assert.Equal(t, 5*time.Second, client.Config().Fetcher.Timeout)

	result, err := client.Analyze(context.Background(), shop.URL, "popularity")
	require.NoError(t, err)
	assert.Len(t, result.Summary, 1)
}

func TestInvalidConfig(t *testing.T) {
	_, err := NewClient(WithTopN(0))
	require.Error(t, err)
}
