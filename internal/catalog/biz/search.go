package biz

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
	apperrors "github.com/lk2023060901/smartshop/internal/pkg/errors"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"go.uber.org/zap"
)

// ProductSource 上游商品数据源
type ProductSource interface {
	Search(ctx context.Context, query *types.SearchQuery) (*types.RawPage, error)
}

// SearchUseCase 商品搜索业务逻辑
type SearchUseCase struct {
	source     ProductSource
	serverName string
	logger     *logger.Logger
}

func NewSearchUseCase(source ProductSource, serverName string, log *logger.Logger) *SearchUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &SearchUseCase{source: source, serverName: serverName, logger: log}
}

// ParseBound 解析可选的数字筛选条件，空串表示未提供
func ParseBound(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(n) {
		return nil, apperrors.Wrap(ErrInvalidBound, apperrors.ErrInvalidFilter, name)
	}
	return &n, nil
}

// ParsePage 非数字或小于 1 的页码按 1 处理
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Search 调用一次上游，归一化、筛选、排序后组装响应
func (uc *SearchUseCase) Search(ctx context.Context, query *types.SearchQuery) (*types.SearchResult, error) {
	query.Term = strings.TrimSpace(query.Term)
	if query.Term == "" {
		return nil, apperrors.Wrap(ErrQueryRequired, apperrors.ErrQueryRequired)
	}
	if query.Page < 1 {
		query.Page = 1
	}
	query.Sort = types.ParseSortKey(string(query.Sort))

	page, err := uc.source.Search(ctx, query)
	if err != nil {
		uc.logger.WithContext(ctx).Warn("product search failed",
			zap.String("query", query.Term),
			zap.Error(err),
		)
		return nil, classifyUpstream(err)
	}

	products := ApplyFilters(NormalizeAll(page.Products), query)
	SortByRating(products, query.Sort)

	uc.logger.WithContext(ctx).Debug("product search completed",
		zap.String("query", query.Term),
		zap.Int("upstream", len(page.Products)),
		zap.Int("count", len(products)),
	)

	return &types.SearchResult{
		ServerName: uc.serverName,
		Query:      query.Term,
		Count:      len(products),
		Page:       query.Page,
		Products:   products,
	}, nil
}

// classifyUpstream 将上游错误映射为对外错误码和状态码
func classifyUpstream(err error) error {
	var upErr *types.UpstreamError
	if !errors.As(err, &upErr) {
		return apperrors.Wrap(err, apperrors.ErrUpstreamUnreachable)
	}

	switch {
	case upErr.Kind != types.KindStatus:
		return apperrors.Wrap(err, apperrors.ErrUpstreamUnreachable)
	case upErr.Status == http.StatusTooManyRequests:
		return apperrors.Wrap(err, apperrors.ErrUpstreamRateLimited)
	case upErr.Status >= 500:
		return apperrors.Wrap(err, apperrors.ErrUpstreamUnavailable).WithStatus(upErr.Status)
	case upErr.Status >= 400:
		return apperrors.Wrap(err, apperrors.ErrUpstreamFailed).WithStatus(upErr.Status)
	default:
		return apperrors.Wrap(err, apperrors.ErrUpstreamFailed)
	}
}
