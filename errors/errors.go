package errors

import stderrors "errors"

// Sentinel errors used across service and storage layers.
var (
	// ErrInvalidToken covers signature mismatch, malformed payload and expiry.
	ErrInvalidToken = stderrors.New("invalid token")
	// ErrStoreUnavailable wraps failures reaching the backing cache store.
	ErrStoreUnavailable = stderrors.New("store unavailable")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = stderrors.New("not found")
	// ErrDuplicate is returned on unique-constraint violations (email, sku, slug, code).
	ErrDuplicate = stderrors.New("already exists")
	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = stderrors.New("invalid credentials")
)

// APIError is an error with a fixed HTTP status and client-visible message.
// The message strings are part of the client contract and must not change.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Stable API errors per the auth contract.
var (
	ErrAccessTokenRequired   = &APIError{Status: 401, Message: "Access token required"}
	ErrInvalidOrExpiredToken = &APIError{Status: 403, Message: "Invalid or expired token"}
	ErrAdminAccessRequired   = &APIError{Status: 403, Message: "Admin access required"}
	ErrAccessDenied          = &APIError{Status: 403, Message: "Access denied"}
	ErrInvalidRefreshToken   = &APIError{Status: 403, Message: "Invalid refresh token"}
	ErrUserNotFound          = &APIError{Status: 404, Message: "User not found"}
	ErrRefreshTokenRequired  = &APIError{Status: 400, Message: "Refresh token is required"}
)

// NewAPIError builds an APIError for ad-hoc handler failures.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}
