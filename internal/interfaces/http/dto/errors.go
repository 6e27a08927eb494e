package dto

import (
	"net/http"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// statusByCode maps domain error codes to HTTP status codes.
var statusByCode = map[string]int{
	shared.CodeValidationFailed: http.StatusBadRequest,
	shared.CodeNotFound:         http.StatusNotFound,
	shared.CodeAlreadyExists:    http.StatusConflict,
	shared.CodeReferenceInUse:   http.StatusConflict,
	shared.CodeInvalidState:     http.StatusConflict,
	shared.CodeCapacityExceeded: http.StatusInsufficientStorage,
	shared.CodeDeliveryFailed:   http.StatusBadGateway,
	ErrCodeBadRequest:           http.StatusBadRequest,
	ErrCodeInvalidJSON:          http.StatusBadRequest,
	ErrCodeInternal:             http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain or transport
// error code, defaulting to 500.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
