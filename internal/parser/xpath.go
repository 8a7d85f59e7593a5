package parser

import (
	"bytes"
	"fmt"

	"github.com/antchfx/htmlquery"
)

const metaXPath = "//meta[@name and @content]"

// MetaTag is a <meta name=... content=...> pair.
type MetaTag struct {
	Name    string
	Content string
}

// MetaTags returns every meta element carrying both a name and a content
// attribute, in document order. An empty content still counts.
func MetaTags(body []byte) ([]MetaTag, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	nodes, err := htmlquery.QueryAll(doc, metaXPath)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", metaXPath, err)
	}

	tags := make([]MetaTag, 0, len(nodes))
	for _, n := range nodes {
		tags = append(tags, MetaTag{
			Name:    htmlquery.SelectAttr(n, "name"),
			Content: htmlquery.SelectAttr(n, "content"),
		})
	}
	return tags, nil
}
