package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"proposalforge_backend/internal/auth"
	"proposalforge_backend/internal/logger"
	"proposalforge_backend/internal/models"
	"proposalforge_backend/internal/repositories"
	"proposalforge_backend/pkg/apperrors"
)

const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

// Auth verifies the bearer token and loads the user record, so role and
// plan changes apply on the next request rather than the next login.
func Auth(userRepo repositories.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, apperrors.NewUnauthorizedError("Auth required."))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			abort(c, apperrors.ErrInvalidTokenError)
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			abort(c, apperrors.NewUnauthorizedError("User not found."))
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextRoleKey, user.Role)
		c.Next()
	}
}

// AdminOnly gates a route group to the admin role. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextRoleKey)
		if !exists {
			abort(c, apperrors.NewUnauthorizedError("Not authenticated."))
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok || role != models.UserRoleAdmin {
			abort(c, apperrors.ErrAdminRequired)
			return
		}

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from the request context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}

func abort(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
	c.Abort()
}
