package service

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/smartshop/internal/catalog/biz"
	"github.com/lk2023060901/smartshop/internal/catalog/types"
	apperrors "github.com/lk2023060901/smartshop/internal/pkg/errors"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"github.com/lk2023060901/smartshop/internal/pkg/response"
)

// isoMillis ISO-8601 UTC，精确到毫秒
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Searcher 商品搜索用例
type Searcher interface {
	Search(ctx context.Context, query *types.SearchQuery) (*types.SearchResult, error)
}

// ProductService 商品 HTTP 服务
type ProductService struct {
	uc         Searcher
	serverName string
	logger     *logger.Logger
	now        func() time.Time
}

// NewProductService 创建商品服务
func NewProductService(uc Searcher, serverName string, logger *logger.Logger) *ProductService {
	return &ProductService{
		uc:         uc,
		serverName: serverName,
		logger:     logger,
		now:        time.Now,
	}
}

// RegisterRoutes 注册 /api 下的路由
func (s *ProductService) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/products", s.SearchProducts)
	api.GET("/health", s.Health)
}

// SearchProducts 搜索商品
func (s *ProductService) SearchProducts(c *gin.Context) {
	var req SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, s.serverName, apperrors.ErrBadRequest)
		return
	}

	query, err := toSearchQuery(&req)
	if err != nil {
		response.HandleError(c, s.serverName, err)
		return
	}

	result, err := s.uc.Search(c.Request.Context(), query)
	if err != nil {
		response.HandleError(c, s.serverName, err)
		return
	}

	response.Success(c, result)
}

// Health 健康检查
func (s *ProductService) Health(c *gin.Context) {
	response.Success(c, types.Health{
		ServerName: s.serverName,
		Status:     "ok",
		Time:       s.now().UTC().Format(isoMillis),
	})
}

func toSearchQuery(req *SearchProductsRequest) (*types.SearchQuery, error) {
	minPrice, err := biz.ParseBound("minPrice", req.MinPrice)
	if err != nil {
		return nil, err
	}
	maxPrice, err := biz.ParseBound("maxPrice", req.MaxPrice)
	if err != nil {
		return nil, err
	}
	minRating, err := biz.ParseBound("minRating", req.MinRating)
	if err != nil {
		return nil, err
	}

	return &types.SearchQuery{
		Term:      req.Q,
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		MinRating: minRating,
		Sort:      types.ParseSortKey(req.Sort),
		Page:      biz.ParsePage(req.Page),
	}, nil
}
