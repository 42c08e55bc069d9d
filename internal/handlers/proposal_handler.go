package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"proposalforge_backend/internal/middleware"
	"proposalforge_backend/internal/services"
	"proposalforge_backend/internal/services/dto"
	"proposalforge_backend/pkg/apperrors"
)

type ProposalHandler struct {
	*BaseHandler
	proposalService services.ProposalService
}

func NewProposalHandler(base *BaseHandler, proposalService services.ProposalService) *ProposalHandler {
	return &ProposalHandler{BaseHandler: base, proposalService: proposalService}
}

func (h *ProposalHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	proposal, meta, err := h.proposalService.Generate(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"proposal": proposal,
		"meta":     meta,
	})
}

func (h *ProposalHandler) List(c *gin.Context) {
	proposals, err := h.proposalService.List(middleware.GetUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"proposals": proposals,
		"count":     len(proposals),
	})
}

func (h *ProposalHandler) Delete(c *gin.Context) {
	if err := h.proposalService.Delete(middleware.GetUserID(c), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Proposal deleted"})
}

func (h *ProposalHandler) ExportPDF(c *gin.Context) {
	data, proposal, err := h.proposalService.ExportPDF(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("proposal-%s.pdf", proposal.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
