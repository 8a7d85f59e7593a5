package parser

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordRe matches runs of Unicode word characters.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// VisibleText returns the document's text nodes joined by spaces, skipping
// script, style and noscript content.
func VisibleText(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return sb.String()
}

// Tokenize splits text into word tokens, preserving case.
func Tokenize(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// Words lower-cases text and splits it into word tokens.
func Words(text string) []string {
	return Tokenize(cases.Lower(language.Und).String(text))
}

// WordCount is a token with its frequency.
type WordCount struct {
	Word  string
	Count int
}

// CountWords returns token frequencies ordered by count descending; ties
// keep first-occurrence order.
func CountWords(tokens []string) []WordCount {
	index := make(map[string]int, len(tokens))
	var counts []WordCount
	for _, tok := range tokens {
		if i, ok := index[tok]; ok {
			counts[i].Count++
			continue
		}
		index[tok] = len(counts)
		counts = append(counts, WordCount{Word: tok, Count: 1})
	}

	slices.SortStableFunc(counts, func(a, b WordCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return counts
}
