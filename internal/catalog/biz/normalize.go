package biz

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/tidwall/gjson"
)

// 缺省字段的兜底值
const (
	FallbackTitle       = "No title available"
	FallbackDescription = "No description available"
	FallbackImage       = "https://via.placeholder.com/400x300?text=No+Image"
	FallbackURL         = "#"
)

// productNamespace 生成稳定商品 ID 的 UUIDv5 命名空间
var productNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("smartshop/products"))

// truthy 判断字段是否“有值”：null、false、0、空串都视为缺失
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return r.Exists()
	}
}

func textOr(r gjson.Result, fallback string) string {
	if !truthy(r) {
		return fallback
	}
	return r.String()
}

// ParsePrice 解析可能带货币符号和千分位的价格，无法解析时返回 0
func ParsePrice(raw gjson.Result) float64 {
	if !truthy(raw) {
		return 0
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw.String())
	if cleaned == "" {
		return 0
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseRating 数字或数字字符串转为评分，其余情况(含 NaN、Inf)返回 0
func ParseRating(raw gjson.Result) float64 {
	var n float64
	switch raw.Type {
	case gjson.Number:
		n = raw.Num
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw.Str), 64)
		if err != nil {
			return 0
		}
		n = v
	default:
		return 0
	}
	if !isFinite(n) {
		return 0
	}
	return n
}

// isFinite JSON 无法编码 NaN 和 Inf
func isFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// StableID 根据标题和链接生成稳定 ID，同一商品多次搜索结果一致
func StableID(title, url string) string {
	return uuid.NewSHA1(productNamespace, []byte(title+"|"+url)).String()
}

// Normalize 将上游原始记录转换为统一的 Product
func Normalize(raw gjson.Result) types.Product {
	p := types.Product{
		Title:       textOr(raw.Get("product_title"), FallbackTitle),
		Description: textOr(raw.Get("product_description"), FallbackDescription),
		Price:       ParsePrice(raw.Get("product_price")),
		Rating:      ParseRating(raw.Get("product_star_rating")),
		Image:       textOr(raw.Get("product_photo"), FallbackImage),
		URL:         textOr(raw.Get("product_url"), FallbackURL),
	}

	if asin := raw.Get("asin"); truthy(asin) {
		p.ID = asin.String()
	} else {
		p.ID = StableID(p.Title, p.URL)
	}

	return p
}

// NormalizeAll 批量转换，保持上游顺序
func NormalizeAll(raws []gjson.Result) []types.Product {
	products := make([]types.Product, 0, len(raws))
	for _, r := range raws {
		products = append(products, Normalize(r))
	}
	return products
}
