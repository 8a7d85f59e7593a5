package types

import (
	"encoding/json"
)

// Product field keys.
const (
	FieldName    = "name"
	FieldPrice   = "price"
	FieldRating  = "rating"
	FieldReviews = "reviews"
	FieldScore   = "score"
)

// Product is one heuristically extracted product listing.
// No field is guaranteed; a missing key means "not detected", never zero.
type Product struct {
	// Fields stores the extracted values: string for name, float64 for
	// price/rating/score, int for reviews.
	Fields map[string]any

	// SourceURL is the page the product was extracted from.
	SourceURL string
}

// NewProduct creates an empty Product for a source URL.
func NewProduct(sourceURL string) *Product {
	return &Product{
		Fields:    make(map[string]any),
		SourceURL: sourceURL,
	}
}

// Set sets a field value.
func (p *Product) Set(key string, value any) {
	p.Fields[key] = value
}

// Get retrieves a field value.
func (p *Product) Get(key string) (any, bool) {
	v, ok := p.Fields[key]
	return v, ok
}

// Has returns true if the field exists.
func (p *Product) Has(key string) bool {
	_, ok := p.Fields[key]
	return ok
}

// Delete removes a field.
func (p *Product) Delete(key string) {
	delete(p.Fields, key)
}

// IsEmpty reports whether no field was detected.
func (p *Product) IsEmpty() bool {
	return len(p.Fields) == 0
}

// Name returns the product name if one was detected.
func (p *Product) Name() (string, bool) {
	s, ok := p.Fields[FieldName].(string)
	return s, ok
}

// Price returns the product price if one was detected.
func (p *Product) Price() (float64, bool) {
	return p.float(FieldPrice)
}

// Rating returns the product rating if one was detected.
func (p *Product) Rating() (float64, bool) {
	return p.float(FieldRating)
}

// Reviews returns the review count if one was detected.
func (p *Product) Reviews() (int, bool) {
	n, ok := p.Fields[FieldReviews].(int)
	return n, ok
}

// Score returns the derived best-seller score if it was computed.
func (p *Product) Score() (float64, bool) {
	return p.float(FieldScore)
}

func (p *Product) float(key string) (float64, bool) {
	f, ok := p.Fields[key].(float64)
	return f, ok
}

// MarshalJSON emits only the detected fields.
func (p *Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields)
}

// Clone creates a copy of the product.
func (p *Product) Clone() *Product {
	clone := &Product{
		Fields:    make(map[string]any, len(p.Fields)),
		SourceURL: p.SourceURL,
	}
	for k, v := range p.Fields {
		clone.Fields[k] = v
	}
	return clone
}
