// Package parser holds the heuristic extraction of product listings and
// the text/markup helpers the analyzers share.
package parser

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Matcher decides whether an element plausibly plays a role (container,
// name, price, ...). Implementations are the per-site tuning point.
type Matcher interface {
	// Selector narrows the candidate elements before Match runs.
	Selector() string

	// Match reports whether the candidate element qualifies.
	Match(sel *goquery.Selection) bool
}

// AttrContains matches elements with one of Tags (any tag when empty)
// whose lower-cased Attr value contains any of Substrings.
type AttrContains struct {
	Tags       []string
	Attr       string
	Substrings []string
}

// ClassContains is AttrContains on the class attribute.
func ClassContains(tags []string, substrings ...string) AttrContains {
	return AttrContains{Tags: tags, Attr: "class", Substrings: substrings}
}

// IDContains is AttrContains on the id attribute.
func IDContains(tags []string, substrings ...string) AttrContains {
	return AttrContains{Tags: tags, Attr: "id", Substrings: substrings}
}

func (m AttrContains) Selector() string {
	return tagSelector(m.Tags)
}

func (m AttrContains) Match(sel *goquery.Selection) bool {
	if len(m.Tags) > 0 && !slices.Contains(m.Tags, goquery.NodeName(sel)) {
		return false
	}
	val, ok := sel.Attr(m.Attr)
	if !ok || val == "" {
		return false
	}
	val = strings.ToLower(val)
	for _, sub := range m.Substrings {
		if strings.Contains(val, sub) {
			return true
		}
	}
	return false
}

// TagIn matches any element with one of the given tag names.
type TagIn []string

func (m TagIn) Selector() string {
	return tagSelector(m)
}

func (m TagIn) Match(sel *goquery.Selection) bool {
	return slices.Contains(m, goquery.NodeName(sel))
}

// FindAll returns the descendants of root accepted by m, in document order.
func FindAll(root *goquery.Selection, m Matcher) *goquery.Selection {
	return root.Find(m.Selector()).FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return m.Match(sel)
	})
}

// FindFirst returns the first descendant of root accepted by m.
func FindFirst(root *goquery.Selection, m Matcher) *goquery.Selection {
	return FindAll(root, m).First()
}

// Headings lists the h1..h6 tag names.
var Headings = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

func tagSelector(tags []string) string {
	if len(tags) == 0 {
		return "*"
	}
	return strings.Join(tags, ", ")
}
