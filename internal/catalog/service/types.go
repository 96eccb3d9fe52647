package service

// SearchProductsRequest 商品搜索查询参数，数值类参数保留原始字符串以区分“未提供”
type SearchProductsRequest struct {
	Q         string `form:"q"`
	MinPrice  string `form:"minPrice"`
	MaxPrice  string `form:"maxPrice"`
	MinRating string `form:"minRating"`
	Sort      string `form:"sort"`
	Page      string `form:"page"`
}
