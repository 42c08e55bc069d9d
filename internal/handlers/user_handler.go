package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proposalforge_backend/internal/middleware"
	"proposalforge_backend/internal/services"
	"proposalforge_backend/internal/services/dto"
	"proposalforge_backend/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.Me(middleware.GetUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *UserHandler) APIKeyStatus(c *gin.Context) {
	status, err := h.userService.APIKeyStatus(middleware.GetUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "apiKey": status})
}

func (h *UserHandler) UpdateAPIKey(c *gin.Context) {
	var req dto.UpdateAPIKeyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	status, err := h.userService.UpdateAPIKey(middleware.GetUserID(c), req.CohereAPIKey)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "apiKey": status})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(middleware.GetUserID(c), &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated"})
}
