package types

// Product is the normalized shape of one upstream record
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
	URL         string  `json:"url"`
}

// SortKey is the sort vocabulary shared by the UI and the API
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingAsc  SortKey = "rating-asc"
	SortRatingDesc SortKey = "rating-desc"
)

// SortKeys lists every key in display order
var SortKeys = []SortKey{SortRelevance, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortRatingAsc}

// ParseSortKey maps unknown or empty values to SortRelevance
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc:
		return k
	default:
		return SortRelevance
	}
}

// IsRating reports whether the key orders by rating
func (k SortKey) IsRating() bool {
	return k == SortRatingAsc || k == SortRatingDesc
}
