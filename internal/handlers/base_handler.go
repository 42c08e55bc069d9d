package handlers

import (
	"github.com/gin-gonic/gin"

	"proposalforge_backend/internal/logger"
	"proposalforge_backend/internal/validator"
	"proposalforge_backend/pkg/apperrors"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the request body and runs struct validation.
// On failure it writes the error envelope and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
			return false
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return false
	}
	return true
}

// BindQuery binds query-string parameters. Unknown values are left at
// their zero values and clamped downstream, so binding errors are the
// only failure mode.
func (h *BaseHandler) BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to bind query", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return true
}
