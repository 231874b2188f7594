package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	authProcessor "mockly-server/internal/auth/processor"
	"mockly-server/internal/clients/llm"
	feedbackProcessor "mockly-server/internal/feedback/processor"
	interviewsProcessor "mockly-server/internal/interviews/processor"
	"mockly-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"email exists", authProcessor.ErrEmailAlreadyExists, http.StatusConflict, CodeEmailExists},
		{"bad credentials", authProcessor.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
		{"expired token", authProcessor.ErrExpiredToken, http.StatusUnauthorized, CodeUnauthorized},
		{"failed signup", authProcessor.ErrFailedSignup, http.StatusInternalServerError, CodeInternalError},
		{"interview missing", fmt.Errorf("load: %w", interviewsProcessor.ErrInterviewNotFound), http.StatusNotFound, CodeInterviewNotFound},
		{"bad amount", interviewsProcessor.ErrInvalidAmount, http.StatusBadRequest, CodeInvalidAmount},
		{"generation failed", interviewsProcessor.ErrQuestionGeneration, http.StatusServiceUnavailable, CodeAIServiceError},
		{"feedback missing", feedbackProcessor.ErrFeedbackNotFound, http.StatusNotFound, CodeFeedbackNotFound},
		{"feedback disabled", feedbackProcessor.ErrFeedbackDisabled, http.StatusServiceUnavailable, CodeFeedbackDisabled},
		{"empty transcript", feedbackProcessor.ErrEmptyTranscript, http.StatusBadRequest, CodeEmptyTranscript},
		{"store not found", store.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"empty llm response", llm.ErrEmptyResponse, http.StatusServiceUnavailable, CodeAIServiceError},
		{"resend outage", errors.New("resend: 502 bad gateway"), http.StatusServiceUnavailable, CodeEmailServiceError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
		{"already mapped", TooManyRequests("slow down"), http.StatusTooManyRequests, CodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	assert.Nil(t, MapError(nil))
}

func TestRespondWithError_HidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithError(c, errors.New("pq: password authentication failed for user admin"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password authentication")
	assert.Contains(t, w.Body.String(), CodeInternalError)
}
