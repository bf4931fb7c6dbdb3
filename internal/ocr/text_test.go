package ocr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savings-finder/internal/ocr"
)

func TestExtractProductIDs(t *testing.T) {
	text := "123456 Kirkland Paper Towels\nItem: 789012: Kirkland Coffee Beans\nno ids here"

	got := ocr.ExtractProductIDs(text)

	assert.Equal(t, "123456", got["Kirkland Paper Towels"])
	assert.Equal(t, "789012", got["Kirkland Coffee Beans"])
}

func TestExtractProductIDsEmpty(t *testing.T) {
	assert.Empty(t, ocr.ExtractProductIDs("TOTAL 24.99\nTHANK YOU"))
}

func TestExtractPrices(t *testing.T) {
	got := ocr.ExtractPrices("TOWELS $24.99")

	require.Len(t, got, 1)
	for _, price := range got {
		assert.InDelta(t, 24.99, price, 1e-9)
	}
}
