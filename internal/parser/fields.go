package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/ShopScope/internal/types"
)

var (
	decimalRe = regexp.MustCompile(`\d+(\.\d+)?`)
	integerRe = regexp.MustCompile(`\d+`)
)

// FieldRules tells the extractor where each product field lives inside a
// container.
type FieldRules struct {
	Name         Matcher
	NameFallback Matcher
	Price        Matcher
	Rating       Matcher
	Reviews      Matcher
}

// DefaultFieldRules matches fields by class-name fragments: "title" on
// headings/anchors, "price", "rating" and "review" on div/span.
func DefaultFieldRules() *FieldRules {
	nameTags := append(append([]string{}, Headings...), "a")
	boxes := []string{"div", "span"}
	return &FieldRules{
		Name:         ClassContains(nameTags, "title"),
		NameFallback: TagIn(nameTags),
		Price:        ClassContains(boxes, "price"),
		Rating:       ClassContains(boxes, "rating"),
		Reviews:      ClassContains(boxes, "review"),
	}
}

// Extract reads whatever fields it can find inside a container. It never
// fails: a field that is missing or unparseable is left out.
func (r *FieldRules) Extract(container *goquery.Selection, sourceURL string) *types.Product {
	p := types.NewProduct(sourceURL)

	nameSel := FindFirst(container, r.Name)
	if nameSel.Length() == 0 && r.NameFallback != nil {
		nameSel = FindFirst(container, r.NameFallback)
	}
	if nameSel.Length() > 0 {
		if name := strings.TrimSpace(nameSel.Text()); name != "" {
			p.Set(types.FieldName, name)
		}
	}

	if price, err := ParsePrice(fieldText(container, r.Price)); err == nil {
		p.Set(types.FieldPrice, price)
	}
	if rating, err := ParseDecimal(fieldText(container, r.Rating)); err == nil {
		p.Set(types.FieldRating, rating)
	}
	if reviews, err := ParseInt(fieldText(container, r.Reviews)); err == nil {
		p.Set(types.FieldReviews, reviews)
	}

	return p
}

func fieldText(container *goquery.Selection, m Matcher) string {
	if m == nil {
		return ""
	}
	sel := FindFirst(container, m)
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

// ParsePrice strips thousands separators and reads the first number.
// "$1,234.50" gives 1234.5; "N/A" gives ErrParseSkipped.
func ParsePrice(text string) (float64, error) {
	return ParseDecimal(strings.ReplaceAll(text, ",", ""))
}

// ParseDecimal reads the first integer or decimal number in text.
func ParseDecimal(text string) (float64, error) {
	m := decimalRe.FindString(text)
	if m == "" {
		return 0, types.ErrParseSkipped
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrParseSkipped, err)
	}
	return f, nil
}

// ParseInt reads the first run of digits in text.
func ParseInt(text string) (int, error) {
	m := integerRe.FindString(text)
	if m == "" {
		return 0, types.ErrParseSkipped
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrParseSkipped, err)
	}
	return n, nil
}
