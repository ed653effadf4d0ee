package platformerrors

import (
	"errors"
	"net/http"
)

// ErrorTypeToHTTPStatus maps an error type to the HTTP status code clients see.
func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotAuthenticated:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeInvalidState:
		return http.StatusConflict
	case ErrorTypeDatabaseError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// TypeOf extracts the error type from any error, defaulting to INTERNAL.
func TypeOf(err error) ErrorType {
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.GetErrorType()
	}
	return ErrorTypeInternal
}

// IsType reports whether err carries the given platform error type.
func IsType(err error, errorType ErrorType) bool {
	return TypeOf(err) == errorType
}
