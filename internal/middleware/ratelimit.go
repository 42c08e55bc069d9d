package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"

	"proposalforge_backend/pkg/apperrors"
)

// RateLimit builds a fixed-window limiter keyed by the authenticated user
// id, falling back to the client address for unauthenticated routes. This
// is abuse protection and is independent of the monthly quota tracker.
func RateLimit(limit int64, period time.Duration, message string) gin.HandlerFunc {
	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: period,
		Limit:  limit,
	})

	return mgin.NewMiddleware(instance,
		mgin.WithKeyGetter(func(c *gin.Context) string {
			if userID := GetUserID(c); userID != "" {
				return "user:" + userID
			}
			return c.ClientIP()
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Success: false,
				Message: message,
			})
		}),
	)
}
