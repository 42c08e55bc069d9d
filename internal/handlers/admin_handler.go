package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proposalforge_backend/internal/services"
	"proposalforge_backend/internal/services/dto"
	"proposalforge_backend/pkg/apperrors"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{BaseHandler: base, adminService: adminService}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *AdminHandler) Users(c *gin.Context) {
	var q dto.AdminUsersQuery
	if !h.BindQuery(c, &q) {
		return
	}

	users, pagination, err := h.adminService.Users(&q)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"users":      users,
		"pagination": pagination,
	})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.adminService.UpdateUser(c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeleteUser(c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}

func (h *AdminHandler) Proposals(c *gin.Context) {
	var q dto.AdminProposalsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	proposals, pagination, err := h.adminService.Proposals(&q)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"proposals":  proposals,
		"pagination": pagination,
	})
}

func (h *AdminHandler) DeleteProposal(c *gin.Context) {
	if err := h.adminService.DeleteProposal(c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Proposal deleted"})
}

func (h *AdminHandler) Activity(c *gin.Context) {
	var q dto.ActivityQuery
	if !h.BindQuery(c, &q) {
		return
	}

	rows, err := h.adminService.Activity(q.Limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "activity": rows})
}

func (h *AdminHandler) Usage(c *gin.Context) {
	var q dto.UsageQuery
	if !h.BindQuery(c, &q) {
		return
	}

	report, err := h.adminService.Usage(q.Days)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "usage": report})
}

func (h *AdminHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": h.adminService.Settings()})
}

func (h *AdminHandler) Geo(c *gin.Context) {
	rows, err := h.adminService.Geo()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "countries": rows})
}
