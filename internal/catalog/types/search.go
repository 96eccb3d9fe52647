package types

// SearchQuery is one parsed product search. Nil bounds are absent.
type SearchQuery struct {
	Term      string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Sort      SortKey
	Page      int
}

// SearchResult is the response envelope. Count always equals len(Products).
type SearchResult struct {
	ServerName string    `json:"serverName"`
	Query      string    `json:"query"`
	Count      int       `json:"count"`
	Page       int       `json:"page"`
	Products   []Product `json:"products"`
}

// Health is the body of the health endpoint
type Health struct {
	ServerName string `json:"serverName"`
	Status     string `json:"status"`
	Time       string `json:"time"`
}
