package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/ShopScope/internal/observability"
	"github.com/IshaanNene/ShopScope/internal/report"
	"github.com/IshaanNene/ShopScope/pkg/shopscope"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const shopPage = `<html><head><meta name="description" content="Lamps"></head><body>
<h1>Lamps</h1>
<div class="product"><h2>Desk Lamp</h2><span class="price">$45</span><span class="reviews">12 reviews</span></div>
<div class="product"><h2>Floor Lamp</h2><span class="price">$120</span></div>
</body></html>`

type testEnv struct {
	api     *httptest.Server
	shop    *httptest.Server
	metrics *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/plain":
			_, _ = w.Write([]byte(`<html><body><p>nothing for sale</p></body></html>`))
		default:
			_, _ = w.Write([]byte(shopPage))
		}
	}))
	t.Cleanup(shop.Close)

	client, err := shopscope.NewClient(shopscope.WithLogger(testLogger))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	srv := NewServer(client, testLogger)
	api := httptest.NewServer(srv.Handler())
	t.Cleanup(api.Close)

	return &testEnv{api: api, shop: shop, metrics: client.Metrics()}
}

func (e *testEnv) analyze(t *testing.T, params url.Values) *http.Response {
	t.Helper()
	resp, err := http.Get(e.api.URL + "/api/v1/analyze?" + params.Encode())
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.api.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestListAnalyzers(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.api.URL + "/api/v1/analyzers")
	require.NoError(t, err)
	defer resp.Body.Close()

	var infos []AnalyzerInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	require.Len(t, infos, 11)
	assert.Equal(t, AnalyzerInfo{Name: "popularity", Title: "Product popularity"}, infos[0])
}

func TestAnalyzeOK(t *testing.T) {
	env := newTestEnv(t)

	resp := env.analyze(t, url.Values{"url": {env.shop.URL + "/lamps"}, "analyzer": {"price-range"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))

	var result report.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "price-range", result.Analyzer)
	assert.Equal(t, "Price range", result.Title)
	require.Len(t, result.Summary, 5)
	assert.Equal(t, "0-50", result.Summary[0].Label)
	assert.Equal(t, 1.0, result.Summary[0].Value)
	assert.False(t, result.NoData)

	assert.Equal(t, int64(1), env.metrics.PagesFetched.Load())
	assert.Equal(t, int64(1), env.metrics.AnalysesRun.Load())
}

func TestAnalyzeDefaultAnalyzer(t *testing.T) {
	env := newTestEnv(t)

	resp := env.analyze(t, url.Values{"url": {env.shop.URL}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result report.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "popularity", result.Analyzer)
}

func TestAnalyzeNoData(t *testing.T) {
	env := newTestEnv(t)

	resp := env.analyze(t, url.Values{"url": {env.shop.URL + "/plain"}, "analyzer": {"best-sellers"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var result report.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.NoData)
	assert.Empty(t, result.Summary)
}

func TestAnalyzeBadRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		params url.Values
		want   int
	}{
		{"missing url", url.Values{"analyzer": {"links"}}, http.StatusBadRequest},
		{"unknown analyzer", url.Values{"url": {env.shop.URL}, "analyzer": {"sentiment"}}, http.StatusBadRequest},
		{"upstream 404", url.Values{"url": {env.shop.URL + "/missing"}, "analyzer": {"links"}}, http.StatusBadGateway},
		{"malformed url", url.Values{"url": {"::not a url"}, "analyzer": {"links"}}, http.StatusBadGateway},
		{"unknown format", url.Values{"url": {env.shop.URL}, "analyzer": {"links"}, "format": {"xml"}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.analyze(t, tt.params)
			assert.Equal(t, tt.want, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}

	assert.Equal(t, int64(1), env.metrics.InvalidSelected.Load())
}

func TestAnalyzeMarkdownFormat(t *testing.T) {
	env := newTestEnv(t)

	resp := env.analyze(t, url.Values{"url": {env.shop.URL}, "analyzer": {"headings"}, "format": {"markdown"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/markdown"))

	var sb bytes.Buffer
	_, err := sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "## Headings")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.analyze(t, url.Values{"url": {env.shop.URL}, "analyzer": {"links"}})

	resp, err := http.Get(env.api.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb bytes.Buffer
	_, err = sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "shopscope_pages_fetched_total 1")
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.api.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/dashboard/", resp.Request.URL.Path)
	var sb bytes.Buffer
	_, err = sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), `<option value="price-range">Price range</option>`)
}
