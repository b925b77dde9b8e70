package middleware

import (
	"fmt"
	"net/http"

	"videograb/internal/model"
	"videograb/internal/service"
	"videograb/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware creates a middleware for rate limiting
func RateLimitMiddleware(rateLimitService *service.RateLimitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !rateLimitService.IsAllowed(ip) {
			logger.WithRequest(c).Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorResponse{
				Error: "Too many requests. Please try again later.",
			})
			return
		}

		if remaining := rateLimitService.GetRemaining(ip); remaining >= 0 {
			c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		}

		c.Next()
	}
}
