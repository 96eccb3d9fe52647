package biz

import "errors"

var (
	// ErrQueryRequired 搜索关键词必填
	ErrQueryRequired = errors.New("search term is required")

	// ErrInvalidBound 筛选条件不是数字
	ErrInvalidBound = errors.New("filter bound is not a number")
)
