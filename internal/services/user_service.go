package services

import (
	"strings"

	"proposalforge_backend/internal/auth"
	"proposalforge_backend/internal/models"
	"proposalforge_backend/internal/repositories"
	"proposalforge_backend/internal/services/dto"
	"proposalforge_backend/pkg/apperrors"
)

type UserService interface {
	Me(userID string) (*dto.AuthUser, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.AuthUser, error)
	APIKeyStatus(userID string) (*dto.APIKeyStatus, error)
	// UpdateAPIKey stores the caller's Cohere key; an empty key clears it.
	UpdateAPIKey(userID, key string) (*dto.APIKeyStatus, error)
	ChangePassword(userID string, req *dto.ChangePasswordRequest) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) Me(userID string) (*dto.AuthUser, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}
	out := PublicUser(user)
	return &out, nil
}

func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.AuthUser, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" && name != user.Name {
		fields["name"] = name
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != user.Email {
		if _, err := s.userRepo.FindByEmail(email); err == nil {
			return nil, apperrors.ErrEmailAlreadyExists
		} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
		fields["email"] = email
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNoUpdatableFields
	}

	if err := s.userRepo.UpdateFields(userID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.Me(userID)
}

func (s *UserServiceImpl) APIKeyStatus(userID string) (*dto.APIKeyStatus, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}
	return keyStatus(user.CohereAPIKey), nil
}

func (s *UserServiceImpl) UpdateAPIKey(userID, key string) (*dto.APIKeyStatus, error) {
	key = strings.TrimSpace(key)
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"cohere_api_key": key}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return keyStatus(key), nil
}

func (s *UserServiceImpl) ChangePassword(userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.loadUser(userID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrWrongCurrentPassword
	}
	if len(req.NewPassword) < 6 {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) loadUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// keyStatus masks a stored key to its first and last four characters.
func keyStatus(key string) *dto.APIKeyStatus {
	if key == "" {
		return &dto.APIKeyStatus{HasAPIKey: false}
	}
	preview := "****"
	if len(key) >= 8 {
		preview = key[:4] + "..." + key[len(key)-4:]
	}
	return &dto.APIKeyStatus{HasAPIKey: true, Preview: preview}
}
