package dto

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the outward user shape returned by auth and profile
// endpoints. API key material never leaves through it.
type AuthUser struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	Plan               string `json:"plan"`
	Country            string `json:"country,omitempty"`
	ProposalsThisMonth int    `json:"proposalsThisMonth"`
	CreatedAt          string `json:"createdAt"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
