package storefront

import (
	"slices"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
)

// SortProducts returns a sorted copy; relevance keeps server order
func SortProducts(products []types.Product, key types.SortKey) []types.Product {
	out := slices.Clone(products)

	var less func(a, b types.Product) int
	switch key {
	case types.SortPriceAsc:
		less = func(a, b types.Product) int { return cmpFloat(a.Price, b.Price) }
	case types.SortPriceDesc:
		less = func(a, b types.Product) int { return cmpFloat(b.Price, a.Price) }
	case types.SortRatingAsc:
		less = func(a, b types.Product) int { return cmpFloat(a.Rating, b.Rating) }
	case types.SortRatingDesc:
		less = func(a, b types.Product) int { return cmpFloat(b.Rating, a.Rating) }
	default:
		return out
	}

	slices.SortStableFunc(out, less)
	return out
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
