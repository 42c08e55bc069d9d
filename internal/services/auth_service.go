package services

import (
	"context"
	"strings"
	"time"

	"proposalforge_backend/internal/auth"
	"proposalforge_backend/internal/config"
	"proposalforge_backend/internal/email"
	"proposalforge_backend/internal/geoip"
	"proposalforge_backend/internal/logger"
	"proposalforge_backend/internal/models"
	"proposalforge_backend/internal/repositories"
	"proposalforge_backend/internal/services/dto"
	"proposalforge_backend/pkg/apperrors"
)

type AuthService interface {
	// Signup registers a user and returns a signed token. clientIP is used
	// for best-effort country tagging and may be empty.
	Signup(ctx context.Context, req *dto.SignupRequest, clientIP string) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	geo           *geoip.Resolver
	cfg           *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	geo *geoip.Resolver,
	cfg *config.Config,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
		geo:           geo,
		cfg:           cfg,
	}
}

func (s *AuthServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest, clientIP string) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:             strings.TrimSpace(req.Name),
		Email:            req.Email,
		PasswordHash:     hash,
		Role:             models.UserRoleUser,
		Plan:             models.PlanFree,
		ResetProposalsAt: time.Now(),
	}

	// Country tagging is best effort and must never block signup.
	if clientIP != "" {
		user.Country = s.geo.CountryForIP(ctx, clientIP)
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.emailProvider.SendWelcome(user.Email, user.Name); err != nil {
		logger.CtxWithError(ctx, "welcome email failed", err, "email", user.Email)
	}

	return s.respondWithToken(user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.respondWithToken(user)
}

func (s *AuthServiceImpl) respondWithToken(user *models.User) (*dto.AuthResponse, error) {
	ttl := time.Duration(s.cfg.JWT.TTLHours) * time.Hour
	token, err := auth.GenerateToken(user.ID, user.Email, s.cfg.JWT.Secret, ttl)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  PublicUser(user),
	}, nil
}

// PublicUser converts a user record into its outward representation.
func PublicUser(u *models.User) dto.AuthUser {
	return dto.AuthUser{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               string(u.Role),
		Plan:               string(u.Plan),
		Country:            u.Country,
		ProposalsThisMonth: u.ProposalsThisMonth,
		CreatedAt:          u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
