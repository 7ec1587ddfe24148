package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the CMS API.
type APIError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Body       string `json:"body"        yaml:"body"`
	// Message is the "message" member of a JSON error body, if any.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	// Fields holds per-field messages of a 422 validation response.
	Fields map[string][]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("CMS API error (%d): %s", e.StatusCode, e.Body)
}

// NewAPIError builds an APIError from a response status and body. JSON
// bodies of the form {"message": "...", "errors": {...}} are decoded.
func NewAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var decoded struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}

	if json.Unmarshal(body, &decoded) == nil {
		apiErr.Message = decoded.Message
		apiErr.Fields = decoded.Errors
	}

	return apiErr
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrBaseURLRequired = errors.New("CMS API base URL is required")
	ErrAPIKeyRequired  = errors.New("CMS API key is required")
	ErrMissingEnv      = errors.New("CMS API configuration missing from environment")
	ErrSlugRequired    = errors.New("slug is required")
	ErrNotImplemented  = errors.New("not implemented")
)

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

// IsValidationError checks if the error is a 422 from the API.
func IsValidationError(err error) bool {
	return hasStatus(err, http.StatusUnprocessableEntity)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	return false
}
