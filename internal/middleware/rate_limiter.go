package middleware

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// ParseCustomRate allows formats like "10-2m", "5-1h", "20-30s".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	period, err := time.ParseDuration(parts[1])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", parts[1])
	}

	return limiter.Rate{
		Period: period,
		Limit:  int64(limit),
	}, nil
}

// RateLimit limits requests per client IP against a Redis-backed window.
// Without a Redis client the middleware is a pass-through.
func RateLimit(rdb *redis.Client, logger *slog.Logger, rateStr, routeID string) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.Error("Invalid rate for route, limiter disabled", "route", routeID, "error", err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: rate.Period,
	})
	if err != nil {
		logger.Error("Failed to create redis store, limiter disabled", "route", routeID, "error", err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, rate))
}
