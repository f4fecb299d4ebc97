package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "ALREADY_EXISTS"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes
// not listed here fall back to 500 Internal Server Error.
var ErrorCodeHTTPStatus = map[string]int{
	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeValidation:        http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_EMAIL":          http.StatusBadRequest,
	"INVALID_PASSWORD":       http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_TITLE":          http.StatusBadRequest,
	"INVALID_TARGET":         http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_REFERENCE":      http.StatusBadRequest,
	"INVALID_EXECUTION_TYPE": http.StatusBadRequest,
	"INVALID_BANK_DETAIL":    http.StatusBadRequest,
	"OTP_MISMATCH":           http.StatusBadRequest,
	"OTP_EXPIRED":            http.StatusBadRequest,
	"NO_CODE_ISSUED":         http.StatusBadRequest,

	// Auth errors -> 401 Unauthorized
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,

	// Account state errors -> 403 Forbidden
	ErrCodeForbidden:                http.StatusForbidden,
	"USER_NOT_VERIFIED_OR_INACTIVE": http.StatusForbidden,
	"CHARITY_NOT_VERIFIED":          http.StatusForbidden,
	"CHARITY_NOT_ACTIVE":            http.StatusForbidden,
	"CHARITY_DELETED":               http.StatusForbidden,

	// Resource errors -> 404 Not Found
	ErrCodeNotFound:      http.StatusNotFound,
	"USER_NOT_FOUND":     http.StatusNotFound,
	"DONOR_NOT_FOUND":    http.StatusNotFound,
	"CHARITY_NOT_FOUND":  http.StatusNotFound,
	"CAMPAIGN_NOT_FOUND": http.StatusNotFound,
	"DONATION_NOT_FOUND": http.StatusNotFound,
	"CAMPAIGN_DELETED":   http.StatusNotFound,

	// Conflicts -> 409
	ErrCodeConflict:          http.StatusConflict,
	"EMAIL_TAKEN":            http.StatusConflict,
	"ALREADY_VERIFIED":       http.StatusConflict,
	"DUPLICATE_REFERENCE":    http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR":  http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"CAMPAIGN_HAS_DONATIONS": http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"DOCUMENT_TYPE_MISMATCH": http.StatusUnprocessableEntity,
	"CAMPAIGN_NOT_ACTIVE":    http.StatusUnprocessableEntity,
	"DONATION_NOT_PENDING":   http.StatusUnprocessableEntity,

	// Upstream failures -> 502 Bad Gateway
	"UPLOAD_FAILED":      http.StatusBadGateway,
	"SLIP_UPLOAD_FAILED": http.StatusBadGateway,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
