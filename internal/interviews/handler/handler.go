package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mockly-server/internal/apierrors"
	authHandler "mockly-server/internal/auth/handler"
	"mockly-server/internal/interviews/processor"
	"mockly-server/internal/observability"
	"mockly-server/internal/store"
	"mockly-server/internal/techstack"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.InterviewProcessor
	logger    *observability.Logger
}

func New(processor processor.InterviewProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// flexString accepts either a JSON string or a JSON number
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// GenerateInterviewRequest is the body sent by the generator workflow's apiRequest node
type GenerateInterviewRequest struct {
	Type      string     `json:"type" binding:"required"`
	Role      string     `json:"role" binding:"required"`
	Level     string     `json:"level" binding:"required"`
	Techstack string     `json:"techstack"`
	Amount    flexString `json:"amount" binding:"required"`
	UserID    string     `json:"userid" binding:"required"`
}

// InterviewResponse is the public view of an interview
type InterviewResponse struct {
	ID         uuid.UUID        `json:"id"`
	UserID     uuid.UUID        `json:"user_id"`
	Role       string           `json:"role"`
	Level      string           `json:"level"`
	Type       string           `json:"type"`
	Techstack  []string         `json:"techstack"`
	TechIcons  []techstack.Icon `json:"tech_icons"`
	Questions  []string         `json:"questions"`
	Finalized  bool             `json:"finalized"`
	CoverImage string           `json:"cover_image"`
	CreatedAt  time.Time        `json:"created_at"`
}

func toInterviewResponse(i store.Interview) InterviewResponse {
	stack := []string(i.Techstack)
	if stack == nil {
		stack = []string{}
	}
	questions := []string(i.Questions)
	if questions == nil {
		questions = []string{}
	}
	return InterviewResponse{
		ID:         i.ID,
		UserID:     i.UserID,
		Role:       i.Role,
		Level:      i.Level,
		Type:       i.Type,
		Techstack:  stack,
		TechIcons:  techstack.Icons(stack),
		Questions:  questions,
		Finalized:  i.Finalized,
		CoverImage: i.CoverImage,
		CreatedAt:  i.CreatedAt,
	}
}

func toInterviewResponses(interviews []store.Interview) []InterviewResponse {
	out := make([]InterviewResponse, 0, len(interviews))
	for _, i := range interviews {
		out = append(out, toInterviewResponse(i))
	}
	return out
}

// HandleGenerateInterview is called by the voice-agent platform, not by the browser.
// The body was already read by the rate limiter, so it is bound from the cached copy.
func (h *Handler) HandleGenerateInterview(c *gin.Context) {
	ctx := c.Request.Context()

	var req GenerateInterviewRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	interview, err := h.processor.Generate(ctx, processor.GenerateRequest{
		Type:      req.Type,
		Role:      req.Role,
		Level:     req.Level,
		Techstack: req.Techstack,
		Amount:    string(req.Amount),
		UserID:    req.UserID,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "interview_id": interview.ID})
}

func (h *Handler) HandleListMyInterviews(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	interviews, err := h.processor.ListUserInterviews(c.Request.Context(), user.ID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interviews": toInterviewResponses(interviews)})
}

func (h *Handler) HandleListLatestInterviews(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	limit := processor.DefaultLatestLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	interviews, err := h.processor.ListLatestInterviews(c.Request.Context(), user.ID, limit)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interviews": toInterviewResponses(interviews)})
}

func (h *Handler) HandleGetInterview(c *gin.Context) {
	ctx := c.Request.Context()

	interviewID, ok := ParseInterviewID(c)
	if !ok {
		return
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "interview_id", Value: interviewID.String()})

	interview, err := h.processor.GetInterview(ctx, interviewID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toInterviewResponse(interview))
}

func (h *Handler) currentUser(c *gin.Context) (store.User, bool) {
	user, ok := authHandler.CurrentUser(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authentication required"))
		return store.User{}, false
	}
	return user, true
}

// ParseInterviewID reads the :id path parameter, responding 400 when it is not a UUID.
func ParseInterviewID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid interview id"))
		return uuid.Nil, false
	}
	return id, true
}
