package apperrors

import (
	"fmt"
	"net/http"
)

// Predefined errors and factories for the business domains of this service.

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials.",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use.",
	http.StatusConflict,
)

var ErrInvalidTokenError = New(
	CodeInvalidToken,
	"auth",
	"Invalid token.",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 6 characters.",
	http.StatusBadRequest,
)

var ErrWrongCurrentPassword = New(
	CodeInvalidCredentials,
	"auth",
	"Current password is incorrect.",
	http.StatusUnauthorized,
)

var ErrAdminRequired = New(
	CodeForbidden,
	"auth",
	"Admin access required.",
	http.StatusForbidden,
)

// --- Quota ---

// ErrQuotaExceeded is raised before the provider is ever called, so an
// over-cap request costs nothing upstream.
func ErrQuotaExceeded(cap int) *AppError {
	return New(
		CodeQuotaExceeded,
		"quota",
		fmt.Sprintf("Free plan limit (%d/month) reached. Upgrade to Pro.", cap),
		http.StatusForbidden,
	).WithDetails(map[string]int{"cap": cap})
}

var ErrProPlanRequired = New(
	CodeForbidden,
	"plan",
	"This feature requires the Pro plan.",
	http.StatusForbidden,
)

// --- Generation provider ---

var ErrMissingProviderKey = New(
	CodeMissingProviderKey,
	"generation",
	"No Cohere API key found. Add yours in Settings or set COHERE_API_KEY.",
	http.StatusBadRequest,
)

var ErrInvalidProviderKey = New(
	CodeInvalidProviderKey,
	"generation",
	"Invalid Cohere API key.",
	http.StatusBadRequest,
)

var ErrProviderRateLimited = New(
	CodeProviderRateLimit,
	"generation",
	"Cohere rate limit hit. Wait a moment.",
	http.StatusTooManyRequests,
)

var ErrProviderQuota = New(
	CodeProviderQuota,
	"generation",
	"Cohere quota exceeded. Check billing.",
	http.StatusPaymentRequired,
)

var ErrEmptyGeneration = New(
	CodeEmptyGeneration,
	"generation",
	"Cohere returned an empty response.",
	http.StatusBadGateway,
)

// ErrGenerationFailed wraps any other provider failure as a 502.
func ErrGenerationFailed(err error) *AppError {
	return Wrap(err, CodeGenerationFailed, "generation",
		"AI generation failed. Please try again.", http.StatusBadGateway)
}

// --- Admin ---

var ErrNoUpdatableFields = New(
	CodeValidationFailed,
	"admin",
	"No valid fields to update.",
	http.StatusBadRequest,
)
