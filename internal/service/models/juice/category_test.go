package juice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, want := range []Category{CategoryFruit, CategoryVegetable, CategorySmoothie} {
		got, err := ParseCategory(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseCategoryInvalid(t *testing.T) {
	for _, s := range []string{"", "berry", "Fruit", "SMOOTHIE"} {
		_, err := ParseCategory(s)
		assert.ErrorIs(t, err, ErrInvalidCategory, "category %q", s)
	}
}

func TestInsufficientStockError(t *testing.T) {
	err := &InsufficientStockError{JuiceID: 7, Available: 2, Requested: 5}
	assert.Equal(t, "insufficient stock for juice 7: available 2, requested 5", err.Error())
}
