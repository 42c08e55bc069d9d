package services

import (
	"gorm.io/gorm"

	"proposalforge_backend/internal/config"
	"proposalforge_backend/internal/email"
	"proposalforge_backend/internal/generation"
	"proposalforge_backend/internal/geoip"
	"proposalforge_backend/internal/repositories"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService     AuthService
	UserService     UserService
	ProposalService ProposalService
	AdminService    AdminService
}

func NewServiceContainer(db *gorm.DB, cfg *config.Config, emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	proposalRepo := repositories.NewProposalRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	generator := generation.NewGenerator(
		generation.NewCohereClient(cfg.Cohere.Model),
		cfg.Cohere.APIKey,
	)

	return &ServiceContainer{
		AuthService:     NewAuthService(userRepo, emailProvider, geoip.NewResolver(), cfg),
		UserService:     NewUserService(userRepo),
		ProposalService: NewProposalService(userRepo, proposalRepo, generator, cfg),
		AdminService:    NewAdminService(userRepo, proposalRepo, analyticsRepo, cfg),
	}
}
