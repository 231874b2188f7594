package apierrors

import (
	"errors"
	"strings"

	authProcessor "mockly-server/internal/auth/processor"
	"mockly-server/internal/clients/llm"
	feedbackProcessor "mockly-server/internal/feedback/processor"
	interviewsProcessor "mockly-server/internal/interviews/processor"
	"mockly-server/internal/store"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// Map auth processor errors
	case errors.Is(err, authProcessor.ErrEmailAlreadyExists):
		return Conflict(CodeEmailExists, "User already exists. Please sign in instead.")

	case errors.Is(err, authProcessor.ErrInvalidCredentials):
		return Unauthorized("Invalid email or password")

	case errors.Is(err, authProcessor.ErrExpiredToken),
		errors.Is(err, authProcessor.ErrInvalidJWTToken),
		errors.Is(err, authProcessor.ErrParseJWTToken):
		return Unauthorized("Invalid or expired session")

	case errors.Is(err, authProcessor.ErrUserNotFound):
		return NotFound(CodeUserNotFound, "User not found")

	case errors.Is(err, authProcessor.ErrFailedSignup),
		errors.Is(err, authProcessor.ErrFailedSignIn),
		errors.Is(err, authProcessor.ErrFailedGetUser):
		return InternalError(err)

	// Map interview processor errors
	case errors.Is(err, interviewsProcessor.ErrInterviewNotFound):
		return NotFound(CodeInterviewNotFound, "Interview not found")

	case errors.Is(err, interviewsProcessor.ErrInvalidAmount):
		return BadRequest(CodeInvalidAmount, "amount must be a whole number between 1 and 50")

	case errors.Is(err, interviewsProcessor.ErrInvalidUserID):
		return BadRequest(CodeInvalidInput, "userid must be a valid user id")

	case errors.Is(err, interviewsProcessor.ErrQuestionGeneration):
		return ServiceUnavailable(CodeAIServiceError, "AI service is temporarily unavailable. Please try again later.", err)

	// Map feedback processor errors
	case errors.Is(err, feedbackProcessor.ErrFeedbackNotFound):
		return NotFound(CodeFeedbackNotFound, "Feedback not found")

	case errors.Is(err, feedbackProcessor.ErrInterviewNotFound):
		return NotFound(CodeInterviewNotFound, "Interview not found")

	case errors.Is(err, feedbackProcessor.ErrFeedbackDisabled):
		return ServiceUnavailable(CodeFeedbackDisabled, "Feedback generation is disabled.", err)

	case errors.Is(err, feedbackProcessor.ErrMissingIdentity):
		return BadRequest(CodeInvalidInput, "Interview id and user id are required")

	case errors.Is(err, feedbackProcessor.ErrEmptyTranscript):
		return BadRequest(CodeEmptyTranscript, "The interview transcript is empty")

	case errors.Is(err, feedbackProcessor.ErrInvalidFeedbackResponse):
		return ServiceUnavailable(CodeAIServiceError, "AI service is temporarily unavailable. Please try again later.", err)

	// Map store errors
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	case errors.Is(err, store.ErrConflict):
		return Conflict(CodeInvalidInput, "Resource already exists")

	// Map AI client errors
	case errors.Is(err, llm.ErrEmptyResponse):
		return ServiceUnavailable(CodeAIServiceError, "AI service is temporarily unavailable. Please try again later.", err)

	default:
		return mapExternalServiceError(err)
	}
}

// mapExternalServiceError attempts to identify external service errors
// and map them to appropriate service-specific error responses.
func mapExternalServiceError(err error) *APIError {
	errMsg := strings.ToLower(err.Error())

	// Email service errors (Resend)
	if strings.Contains(errMsg, "resend") || strings.Contains(errMsg, "email service") {
		return ServiceUnavailable(
			CodeEmailServiceError,
			"Email service is temporarily unavailable. Please try again later.",
			err,
		)
	}

	// AI service errors (OpenAI, Gemini)
	if strings.Contains(errMsg, "openai") || strings.Contains(errMsg, "gemini") || strings.Contains(errMsg, "ai service") {
		return ServiceUnavailable(
			CodeAIServiceError,
			"AI service is temporarily unavailable. Please try again later.",
			err,
		)
	}

	return InternalError(err)
}
