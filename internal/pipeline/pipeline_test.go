package pipeline

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/ShopScope/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func product(fields map[string]any) *types.Product {
	p := types.NewProduct("https://shop.test")
	for k, v := range fields {
		p.Set(k, v)
	}
	return p
}

func TestPipelineBasic(t *testing.T) {
	p := New(testLogger).Use(&TrimMiddleware{}).Use(&DropEmptyMiddleware{})

	result, err := p.Process(product(map[string]any{types.FieldName: "  Desk Lamp \n"}))
	require.NoError(t, err)
	name, _ := result.Name()
	assert.Equal(t, "Desk Lamp", name)
}

func TestTrimRemovesBlankName(t *testing.T) {
	p := New(testLogger).Use(&TrimMiddleware{}).Use(&DropEmptyMiddleware{})

	result, err := p.Process(product(map[string]any{types.FieldName: "   "}))
	require.NoError(t, err)
	assert.Nil(t, result, "blank-only product should be dropped")
}

func TestDropEmptyKeepsZeroValues(t *testing.T) {
	m := &DropEmptyMiddleware{}

	result, err := m.Process(product(map[string]any{types.FieldReviews: 0}))
	require.NoError(t, err)
	assert.NotNil(t, result)

	result, err = m.Process(product(nil))
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestScoreMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   float64
	}{
		{"capped reviews and rating", map[string]any{types.FieldReviews: 150, types.FieldRating: 4.5}, 190},
		{"reviews only", map[string]any{types.FieldReviews: 42}, 42},
		{"rating only", map[string]any{types.FieldRating: 3.0}, 60},
		{"nothing", map[string]any{types.FieldName: "x"}, 0},
		{"rating overflows when weighted", map[string]any{types.FieldReviews: 7, types.FieldRating: 1e307}, 7},
	}

	m := NewScoreMiddleware()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := m.Process(product(tt.fields))
			require.NoError(t, err)
			score, ok := result.Score()
			require.True(t, ok)
			assert.InDelta(t, tt.want, score, 1e-9)
		})
	}
}

func TestPipelineErrorStage(t *testing.T) {
	p := New(testLogger).Use(&ScoreMiddleware{ReviewCap: -1})

	_, err := p.Process(product(map[string]any{types.FieldReviews: 1}))
	var pe *types.PipelineError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "score", pe.Stage)
}
