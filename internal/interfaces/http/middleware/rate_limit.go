package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amica/backend/internal/infrastructure/log"
	"github.com/amica/backend/internal/infrastructure/ratelimit"
	"github.com/amica/backend/internal/interfaces/http/response"
)

// RateLimit 按客户端 IP 限流；limiter 为 nil 时不限流，Redis 不可用时放行
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	logger := log.NewModuleLogger("http", "rate_limit")

	return func(c *gin.Context) {
		if limiter == nil || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.FromContext(c.Request.Context(), logger).Warn("Rate limiter unavailable, allowing request",
				"error", err,
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
			response.Error(c, http.StatusTooManyRequests, response.MsgTooManyRequests)
			return
		}
		c.Next()
	}
}
