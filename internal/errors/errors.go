package errors

import "net/http"

// ErrorResponse is the wire shape of every error body.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
}

// HTTPError is a domain error carrying its HTTP status. Services raise it at
// the point of detection and it propagates unmodified to the boundary
// translator in the router.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// BadRequest reports malformed or semantically invalid input.
func BadRequest(message, code string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, code)
}

// Unauthorized reports missing, invalid or expired credentials.
func Unauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, "")
}

// Forbidden reports an authenticated caller lacking entitlement.
func Forbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, "")
}

// NotFound reports a missing resource.
func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, "")
}

// Conflict reports a unique-constraint collision such as a taken email or slug.
func Conflict(message, code string) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, code)
}

// ToErrorResponse converts an HTTPError to its wire shape.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		StatusCode: e.StatusCode,
		Error:      http.StatusText(e.StatusCode),
		Message:    e.Message,
		Code:       e.Code,
	}
}
