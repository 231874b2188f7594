package apierrors

import (
	"fmt"
	"net/http"
)

// Error codes returned to API clients
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeInterviewNotFound = "INTERVIEW_NOT_FOUND"
	CodeFeedbackNotFound  = "FEEDBACK_NOT_FOUND"
	CodeFeedbackDisabled  = "FEEDBACK_DISABLED"
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeEmptyTranscript   = "EMPTY_TRANSCRIPT"
	CodeRateLimited       = "RATE_LIMITED"
	CodeAIServiceError    = "AI_SERVICE_ERROR"
	CodeEmailServiceError = "EMAIL_SERVICE_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
)

// APIError is an error with the HTTP status and client-facing message it maps to.
// Err holds the internal cause and is never sent to the client.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

func TooManyRequests(message string) *APIError {
	return &APIError{StatusCode: http.StatusTooManyRequests, Code: CodeRateLimited, Message: message}
}

// ServiceUnavailable keeps the internal error for logging only
func ServiceUnavailable(code, message string, err error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Err: err}
}

// InternalError is a sanitized 500 - never exposes internal details
func InternalError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
