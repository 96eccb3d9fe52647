package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"github.com/lk2023060901/smartshop/internal/pkg/response"
	"go.uber.org/zap"
)

// Evaler 执行 Lua 脚本，*redis.Client 实现了该接口
type Evaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

// RateLimiterConfig 限流配置
type RateLimiterConfig struct {
	// 时间窗口内允许的最大请求数
	MaxRequests int
	// 时间窗口（秒）
	WindowSeconds int
	// 限流策略：endpoint, ip（默认）
	Strategy string
	// ServerName 写入 429 响应体
	ServerName string
}

// slidingWindowScript 原子性滑动窗口限流
const slidingWindowScript = `
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local member = ARGV[4]
	local window_start = now - window

	-- 删除窗口外的记录
	redis.call('ZREMRANGEBYSCORE', key, 0, window_start)

	-- 获取当前窗口内的请求数
	local current = redis.call('ZCARD', key)

	if current < limit then
		-- 未超限，记录本次请求
		redis.call('ZADD', key, now, member)
		redis.call('EXPIRE', key, window)
		return {1, limit - current - 1, now + window}
	else
		-- 超限
		local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')[2]
		local reset_time = tonumber(oldest) + window
		return {0, 0, reset_time}
	end
`

// RateLimiter 基于 Redis 的滑动窗口限流中间件
func RateLimiter(store Evaler, cfg RateLimiterConfig, log *logger.Logger) gin.HandlerFunc {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 60
	}
	if cfg.WindowSeconds <= 0 {
		cfg.WindowSeconds = 60
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "ip"
	}
	if log == nil {
		log = logger.NewNop()
	}

	return func(c *gin.Context) {
		// 构建限流 key
		key := buildRateLimitKey(c, cfg.Strategy)

		ctx := c.Request.Context()
		allowed, remaining, resetTime, err := checkRateLimit(ctx, store, key, cfg)

		if err != nil {
			log.Error("rate limiter error", zap.Error(err), zap.String("key", key))
			// 限流器故障时，降级允许请求通过
			c.Next()
			return
		}

		// 设置响应头
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime, 10))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(cfg.WindowSeconds))
			response.TooManyRequests(c, cfg.ServerName,
				fmt.Sprintf("please try again in %d seconds.", cfg.WindowSeconds))
			return
		}

		c.Next()
	}
}

// clientIP 返回客户端 IP，无法解析时所有这类请求共用一个 key
func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// buildRateLimitKey 构建限流 key
func buildRateLimitKey(c *gin.Context, strategy string) string {
	prefix := "rate_limit"

	switch strategy {
	case "endpoint":
		// 基于端点 + IP 限流
		return fmt.Sprintf("%s:endpoint:%s:%s", prefix, c.Request.URL.Path, clientIP(c))

	default:
		// 默认使用 IP 限流（包括显式指定 "ip" 和任何未知策略）
		return fmt.Sprintf("%s:ip:%s", prefix, clientIP(c))
	}
}

// checkRateLimit 使用 Redis 滑动窗口算法检查限流
func checkRateLimit(ctx context.Context, store Evaler, key string, cfg RateLimiterConfig) (allowed bool, remaining int, resetTime int64, err error) {
	now := time.Now().Unix()

	// 同一秒内的多次请求需要不同的成员
	member := fmt.Sprintf("%d-%s", now, uuid.NewString())

	result, err := store.Eval(ctx, slidingWindowScript, []string{key}, now, cfg.WindowSeconds, cfg.MaxRequests, member)
	if err != nil {
		return false, 0, 0, err
	}

	// 解析结果
	resultSlice, ok := result.([]interface{})
	if !ok || len(resultSlice) != 3 {
		return false, 0, 0, fmt.Errorf("invalid rate limit result")
	}

	allowedInt, _ := resultSlice[0].(int64)
	remainingInt, _ := resultSlice[1].(int64)
	resetTimeInt, _ := resultSlice[2].(int64)

	return allowedInt == 1, int(remainingInt), resetTimeInt, nil
}

// APIRateLimiter 商品 API 通用限流（基于 IP）
func APIRateLimiter(store Evaler, maxRequests, windowSeconds int, serverName string, log *logger.Logger) gin.HandlerFunc {
	return RateLimiter(store, RateLimiterConfig{
		MaxRequests:   maxRequests,
		WindowSeconds: windowSeconds,
		Strategy:      "ip",
		ServerName:    serverName,
	}, log)
}
