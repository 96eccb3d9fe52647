package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrNotFound        = 1002
	ErrTooManyRequests = 1006
	ErrBadRequest      = 1007

	// Catalog errors (2000-2999)
	ErrQueryRequired       = 2000
	ErrInvalidFilter       = 2001
	ErrUpstreamRateLimited = 2100
	ErrUpstreamUnavailable = 2101
	ErrUpstreamFailed      = 2102
	ErrUpstreamUnreachable = 2103
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	// Common errors
	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Not found"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},

	// Catalog errors
	ErrQueryRequired:       {ErrQueryRequired, http.StatusBadRequest, "Search term (?q=) is required"},
	ErrInvalidFilter:       {ErrInvalidFilter, http.StatusBadRequest, "Invalid filter value"},
	ErrUpstreamRateLimited: {ErrUpstreamRateLimited, http.StatusTooManyRequests, "External API rate limit exceeded. Please try again later."},
	ErrUpstreamUnavailable: {ErrUpstreamUnavailable, http.StatusBadGateway, "External product service is currently unavailable."},
	ErrUpstreamFailed:      {ErrUpstreamFailed, http.StatusBadGateway, "Failed to contact the external product API."},
	ErrUpstreamUnreachable: {ErrUpstreamUnreachable, http.StatusServiceUnavailable, "Could not reach the external product service. Please try again."},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsClientError checks if the code represents a client error (4xx)
func IsClientError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
