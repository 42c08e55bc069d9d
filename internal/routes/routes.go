package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"proposalforge_backend/internal/config"
	"proposalforge_backend/internal/handlers"
	"proposalforge_backend/internal/middleware"
	"proposalforge_backend/internal/repositories"
)

// Register wires every route group onto the engine. Auth endpoints sit
// behind their own limiter; generation gets a tighter per-user one.
func Register(r *gin.Engine, h *handlers.AppHandlers, userRepo repositories.UserRepository, cfg *config.Config) {
	r.GET("/health", h.Health.Check)

	authLimiter := middleware.RateLimit(
		int64(cfg.RateLimit.AuthPerQuarterHour),
		15*time.Minute,
		"Too many auth attempts, try again later",
	)
	generateLimiter := middleware.RateLimit(
		int64(cfg.RateLimit.GeneratePerHour),
		time.Hour,
		"Generation rate limit reached, try again later",
	)
	authenticated := middleware.Auth(userRepo, cfg.JWT.Secret)

	api := r.Group("/api")

	auth := api.Group("/auth", authLimiter)
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
	}

	proposals := api.Group("/proposals", authenticated)
	{
		proposals.POST("/generate", generateLimiter, h.Proposal.Generate)
		proposals.GET("", h.Proposal.List)
		proposals.DELETE("/:id", h.Proposal.Delete)
		proposals.GET("/:id/export-pdf", h.Proposal.ExportPDF)
	}

	users := api.Group("/users", authenticated)
	{
		users.GET("/me", h.User.Me)
		users.PATCH("/profile", h.User.UpdateProfile)
		users.GET("/api-key", h.User.APIKeyStatus)
		users.PATCH("/api-key", h.User.UpdateAPIKey)
		users.PATCH("/password", h.User.ChangePassword)
	}

	admin := api.Group("/admin", authenticated, middleware.AdminOnly())
	{
		admin.GET("/stats", h.Admin.Stats)
		admin.GET("/users", h.Admin.Users)
		admin.PATCH("/users/:id", h.Admin.UpdateUser)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)
		admin.GET("/proposals", h.Admin.Proposals)
		admin.DELETE("/proposals/:id", h.Admin.DeleteProposal)
		admin.GET("/activity", h.Admin.Activity)
		admin.GET("/usage", h.Admin.Usage)
		admin.GET("/settings", h.Admin.Settings)
		admin.GET("/geo", h.Admin.Geo)
	}
}
