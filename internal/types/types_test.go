package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductMissingIsNotZero(t *testing.T) {
	p := NewProduct("https://shop.test")
	assert.True(t, p.IsEmpty())

	_, ok := p.Price()
	assert.False(t, ok)

	p.Set(FieldReviews, 0)
	n, ok := p.Reviews()
	assert.True(t, ok)
	assert.Equal(t, 0, n)
	assert.False(t, p.IsEmpty())
}

func TestProductMarshalOnlyDetectedFields(t *testing.T) {
	p := NewProduct("https://shop.test")
	p.Set(FieldName, "Lamp")
	p.Set(FieldPrice, 19.5)

	b, err := p.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Lamp","price":19.5}`, string(b))
}

func TestSummaryPairFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    float64
		numeric bool
	}{
		{"int", 3, 3, true},
		{"float", 2.5, 2.5, true},
		{"string", "N/A", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pair("x", tt.value).Float()
			assert.Equal(t, tt.numeric, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrors(t *testing.T) {
	fe := &FetchError{URL: "https://shop.test", StatusCode: 404, Err: errors.New("HTTP 404")}
	assert.Contains(t, fe.Error(), "status 404")

	wrapped := fmt.Errorf("analyze: %w", fe)
	var target *FetchError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, 404, target.StatusCode)

	sel := &InvalidSelectionError{Name: "nope"}
	assert.ErrorIs(t, sel, ErrInvalidSelection)
	assert.True(t, IsNoData(fmt.Errorf("x: %w", ErrNoData)))
	assert.False(t, IsNoData(sel))
}

func TestPageDocumentIsFresh(t *testing.T) {
	page := NewPage("https://shop.test", []byte(`<p>a</p>`))
	assert.NotEmpty(t, page.ID)

	d1, err := page.Document()
	require.NoError(t, err)
	d1.Find("p").Remove()

	d2, err := page.Document()
	require.NoError(t, err)
	assert.Equal(t, 1, d2.Find("p").Length())
}
