package biz

import (
	"sort"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
)

// ApplyFilters 依次应用最低价、最高价、最低评分筛选。
// 价格为 0 表示未知，只要有价格筛选条件就会被排除。
func ApplyFilters(products []types.Product, q *types.SearchQuery) []types.Product {
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if q.MinPrice != nil && (p.Price == 0 || p.Price < *q.MinPrice) {
			continue
		}
		if q.MaxPrice != nil && (p.Price == 0 || p.Price > *q.MaxPrice) {
			continue
		}
		if q.MinRating != nil && p.Rating < *q.MinRating {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortByRating 仅对评分排序做本地稳定重排，价格顺序信任上游
func SortByRating(products []types.Product, key types.SortKey) {
	switch key {
	case types.SortRatingAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating < products[j].Rating
		})
	case types.SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}
