package handlers

import (
	"proposalforge_backend/internal/services"
	"proposalforge_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler of the application.
type AppHandlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Proposal *ProposalHandler
	Admin    *AdminHandler
	Health   *HealthHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		Auth:     NewAuthHandler(base, sc.AuthService),
		User:     NewUserHandler(base, sc.UserService),
		Proposal: NewProposalHandler(base, sc.ProposalService),
		Admin:    NewAdminHandler(base, sc.AdminService),
		Health:   NewHealthHandler(),
	}
}
