package analyzer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/ShopScope/internal/parser"
	"github.com/IshaanNene/ShopScope/internal/types"
)

// --- Meta Tags ---

// MetaTags lists every named meta element with its content.
type MetaTags struct{}

func (MetaTags) Name() string  { return "meta-tags" }
func (MetaTags) Title() string { return "Meta tags" }

func (MetaTags) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	tags, err := parser.MetaTags(page.Body)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("meta tags: %w", types.ErrNoData)
	}

	summary := make(types.Summary, 0, len(tags))
	for _, t := range tags {
		summary = append(summary, types.Pair(t.Name, t.Content))
	}
	return summary, nil
}

// --- Headings ---

// Headings counts h1 through h6, omitting levels that do not occur.
type Headings struct{}

func (Headings) Name() string  { return "headings" }
func (Headings) Title() string { return "Headings" }

func (Headings) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}

	var summary types.Summary
	for _, tag := range parser.Headings {
		if n := doc.Find(tag).Length(); n > 0 {
			summary = append(summary, types.Pair(tag, n))
		}
	}
	if len(summary) == 0 {
		return nil, fmt.Errorf("headings: %w", types.ErrNoData)
	}
	return summary, nil
}

// --- Links ---

// Links splits anchors into internal and external. An href is internal
// when it starts with "/" or with the page's scheme://host.
type Links struct{}

func (Links) Name() string  { return "links" }
func (Links) Title() string { return "Links" }

func (Links) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}

	base := siteBase(page.URL)

	internal, external := 0, 0
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.HasPrefix(href, "/") || (base != "" && strings.HasPrefix(href, base)) {
			internal++
		} else {
			external++
		}
	})

	return types.Summary{
		types.Pair("Internal Links", internal),
		types.Pair("External Links", external),
	}, nil
}

// siteBase returns scheme://host for rawURL, or "" when there is no host.
func siteBase(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// --- Images ---

// Images counts images with and without alternative text.
type Images struct{}

func (Images) Name() string  { return "images" }
func (Images) Title() string { return "Images" }

func (Images) Analyze(_ context.Context, page *types.Page) (types.Summary, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}

	withAlt, withoutAlt := 0, 0
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if alt, _ := sel.Attr("alt"); alt != "" {
			withAlt++
		} else {
			withoutAlt++
		}
	})

	return types.Summary{
		types.Pair("Images with alt text", withAlt),
		types.Pair("Images without alt text", withoutAlt),
	}, nil
}
