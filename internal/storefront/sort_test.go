package storefront

import (
	"testing"

	"github.com/lk2023060901/smartshop/internal/catalog/types"

	"github.com/stretchr/testify/assert"
)

func productIDs(products []types.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestSortProducts(t *testing.T) {
	products := []types.Product{
		{ID: "a", Price: 30, Rating: 4},
		{ID: "b", Price: 10, Rating: 4.8},
		{ID: "c", Price: 20, Rating: 4},
	}

	tests := []struct {
		key  types.SortKey
		want []string
	}{
		{types.SortRelevance, []string{"a", "b", "c"}},
		{types.SortPriceAsc, []string{"b", "c", "a"}},
		{types.SortPriceDesc, []string{"a", "c", "b"}},
		{types.SortRatingAsc, []string{"a", "c", "b"}},
		{types.SortRatingDesc, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			sorted := SortProducts(products, tt.key)
			assert.Equal(t, tt.want, productIDs(sorted))
			assert.Equal(t, tt.want, productIDs(SortProducts(sorted, tt.key)), "idempotent")
		})
	}

	assert.Equal(t, []string{"a", "b", "c"}, productIDs(products), "input untouched")
}
