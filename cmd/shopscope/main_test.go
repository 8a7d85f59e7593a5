package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/ShopScope/internal/report"
	"github.com/IshaanNene/ShopScope/internal/types"
)

const shopPage = `<html><head><title>Lamps</title></head><body>
<h1>Lamps</h1>
<div class="product"><h2>Desk Lamp</h2><span class="price">$45</span><span class="rating">4</span><span class="reviews">150</span></div>
<div class="product"><h2>Floor Lamp</h2><span class="price">$620</span><span class="reviews">8</span></div>
</body></html>`

func newShop(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		_, _ = w.Write([]byte(shopPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// execute runs the CLI in an empty directory so no config file is picked up.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	shop := newShop(t)

	out, err := execute(t, "analyze", shop.URL, "--analyzer", "popularity", "--format", "json")
	require.NoError(t, err)

	var results []report.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "popularity", results[0].Analyzer)
	assert.Equal(t, []string{"Desk Lamp", "Floor Lamp"}, results[0].Summary.Labels())
}

func TestAnalyzeTextByTitle(t *testing.T) {
	shop := newShop(t)

	out, err := execute(t, "analyze", shop.URL, "-a", "Best-selling products")
	require.NoError(t, err)
	assert.Contains(t, out, "Best-selling products")
	assert.Contains(t, out, "Desk Lamp: 180.00")
}

func TestAnalyzeNoDataIsNotAnError(t *testing.T) {
	shop := newShop(t)

	out, err := execute(t, "analyze", shop.URL, "-a", "meta-tags")
	require.NoError(t, err)
	assert.Contains(t, out, report.NoDataMessage)
}

func TestAnalyzeUnknownAnalyzer(t *testing.T) {
	shop := newShop(t)

	_, err := execute(t, "analyze", shop.URL, "-a", "sentiment")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidSelection)
	assert.Contains(t, err.Error(), "price-range")
}

func TestAnalyzeFetchFailure(t *testing.T) {
	shop := newShop(t)

	_, err := execute(t, "analyze", shop.URL+"/gone", "-a", "links")
	var fe *types.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusGone, fe.StatusCode)
}

func TestReportWritesFile(t *testing.T) {
	shop := newShop(t)
	path := filepath.Join(t.TempDir(), "report.md")

	_, err := execute(t, "report", shop.URL, "--format", "markdown", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(data)
	for _, title := range []string{"Product popularity", "Price range", "Keyword density", "Page load time"} {
		assert.Contains(t, md, "## "+title)
	}
}

func TestAnalyzersList(t *testing.T) {
	out, err := execute(t, "analyzers")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "* popularity"))
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "user_agent:")
	assert.Contains(t, out, "level: debug")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ShopScope "))
}

func TestShellCommand(t *testing.T) {
	shop := newShop(t)
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("open " + shop.URL + "\nanalyze price-range\nexit\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"shell"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "0-50: 1")
	assert.Contains(t, out.String(), "500+: 1")
}
