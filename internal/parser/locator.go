package parser

import (
	"github.com/PuerkitoBio/goquery"
)

// Locator finds the elements that plausibly wrap one product listing.
type Locator struct {
	// Primary is tried first.
	Primary Matcher

	// Fallback is used only when Primary matches nothing.
	Fallback Matcher
}

// DefaultLocator matches div/li elements whose class mentions "product" or
// "item", falling back to div elements whose id does.
func DefaultLocator() *Locator {
	return &Locator{
		Primary:  ClassContains([]string{"div", "li"}, "product", "item"),
		Fallback: IDContains([]string{"div"}, "product", "item"),
	}
}

// Locate returns the candidate containers in document order.
func (l *Locator) Locate(doc *goquery.Document) []*goquery.Selection {
	if doc == nil {
		return nil
	}

	found := FindAll(doc.Selection, l.Primary)
	if found.Length() == 0 && l.Fallback != nil {
		found = FindAll(doc.Selection, l.Fallback)
	}

	containers := make([]*goquery.Selection, 0, found.Length())
	found.Each(func(_ int, sel *goquery.Selection) {
		containers = append(containers, sel)
	})
	return containers
}
