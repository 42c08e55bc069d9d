package dto

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}

// An empty cohereApiKey is valid and clears the stored key.
type UpdateAPIKeyRequest struct {
	CohereAPIKey string `json:"cohereApiKey" validate:"omitempty,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// APIKeyStatus deliberately exposes only a masked preview of a stored key.
type APIKeyStatus struct {
	HasAPIKey bool   `json:"hasApiKey"`
	Preview   string `json:"preview,omitempty"`
}
