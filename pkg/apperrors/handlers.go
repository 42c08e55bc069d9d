package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proposalforge_backend/internal/logger"
)

// ErrorResponse is the wire envelope for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleError translates any error into the response envelope. Unknown
// errors are logged and rendered as a generic 500; internal details never
// reach the body.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		logger.CtxWithError(c.Request.Context(), "unhandled error", err,
			"path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Message: "Internal server error.",
		})
		return
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr,
			"code", string(appErr.Code), "domain", appErr.Domain)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Message: appErr.Message,
	})
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
