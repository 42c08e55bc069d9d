package apperrors

// ErrorCode identifies an error kind independent of its HTTP mapping.
type ErrorCode string

const (
	// System and unknown errors
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business-rule errors
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeQuotaExceeded    ErrorCode = "QUOTA_EXCEEDED"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"

	// Authentication and authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// External text-generation provider
	CodeMissingProviderKey ErrorCode = "MISSING_PROVIDER_KEY"
	CodeInvalidProviderKey ErrorCode = "INVALID_PROVIDER_KEY"
	CodeProviderRateLimit  ErrorCode = "PROVIDER_RATE_LIMIT"
	CodeProviderQuota      ErrorCode = "PROVIDER_QUOTA"
	CodeEmptyGeneration    ErrorCode = "EMPTY_GENERATION"
	CodeGenerationFailed   ErrorCode = "GENERATION_FAILED"
)
