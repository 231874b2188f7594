package handler

import (
	"net/http"
	"time"

	"mockly-server/internal/apierrors"
	authHandler "mockly-server/internal/auth/handler"
	"mockly-server/internal/feedback/processor"
	interviewsHandler "mockly-server/internal/interviews/handler"
	"mockly-server/internal/observability"
	"mockly-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor *processor.FeedbackProcessor
	logger    *observability.Logger
}

func New(processor *processor.FeedbackProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// FeedbackResponse is the public view of a feedback
type FeedbackResponse struct {
	ID                  uuid.UUID             `json:"id"`
	InterviewID         uuid.UUID             `json:"interview_id"`
	TotalScore          int                   `json:"total_score"`
	CategoryScores      []store.CategoryScore `json:"category_scores"`
	Strengths           []string              `json:"strengths"`
	AreasForImprovement []string              `json:"areas_for_improvement"`
	FinalAssessment     string                `json:"final_assessment"`
	CreatedAt           time.Time             `json:"created_at"`
}

func toFeedbackResponse(f store.Feedback) FeedbackResponse {
	scores := []store.CategoryScore(f.CategoryScores)
	if scores == nil {
		scores = []store.CategoryScore{}
	}
	strengths := []string(f.Strengths)
	if strengths == nil {
		strengths = []string{}
	}
	areas := []string(f.AreasForImprovement)
	if areas == nil {
		areas = []string{}
	}
	return FeedbackResponse{
		ID:                  f.ID,
		InterviewID:         f.InterviewID,
		TotalScore:          f.TotalScore,
		CategoryScores:      scores,
		Strengths:           strengths,
		AreasForImprovement: areas,
		FinalAssessment:     f.FinalAssessment,
		CreatedAt:           f.CreatedAt,
	}
}

// HandleGetFeedback returns the current user's newest feedback for an interview.
func (h *Handler) HandleGetFeedback(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := authHandler.CurrentUser(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authentication required"))
		return
	}

	interviewID, ok := interviewsHandler.ParseInterviewID(c)
	if !ok {
		return
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "interview_id", Value: interviewID.String()})

	feedback, err := h.processor.GetFeedback(ctx, interviewID, user.ID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFeedbackResponse(feedback))
}
