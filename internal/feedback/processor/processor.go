package processor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"mockly-server/internal/callsession"
	"mockly-server/internal/clients/llm"
	"mockly-server/internal/notify"
	"mockly-server/internal/observability"
	"mockly-server/internal/store"

	"github.com/google/uuid"
)

//go:generate mockgen -source=processor.go -destination=mocks_test.go -package=processor

var (
	ErrFeedbackDisabled        = errors.New("feedback generation is disabled")
	ErrFeedbackNotFound        = errors.New("feedback not found")
	ErrInterviewNotFound       = errors.New("interview not found")
	ErrMissingIdentity         = errors.New("interview id and user id are required")
	ErrEmptyTranscript         = errors.New("transcript is empty")
	ErrInvalidFeedbackResponse = errors.New("ai service returned an invalid feedback")
	ErrFailedCreateFeedback    = errors.New("failed to create feedback")
	ErrFailedGetFeedback       = errors.New("failed to get feedback")
)

// Categories are the scored areas, in the order they are stored and shown.
var Categories = []string{
	"Communication Skills",
	"Technical Knowledge",
	"Problem Solving",
	"Cultural Fit",
	"Confidence and Clarity",
}

const notifyTimeout = 5 * time.Second

// FeedbackStore defines the database operations required by FeedbackProcessor
type FeedbackStore interface {
	CreateFeedback(ctx context.Context, params store.CreateFeedbackParams) (store.Feedback, error)
	GetFeedbackByInterviewID(ctx context.Context, interviewID, userID uuid.UUID) (store.Feedback, error)
	GetInterviewByID(ctx context.Context, interviewID uuid.UUID) (store.Interview, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (store.User, error)
}

// FeedbackModel evaluates a transcript and answers with a JSON document
type FeedbackModel interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

// Notifier tells the candidate that feedback is available
type Notifier interface {
	SendFeedbackReady(ctx context.Context, msg notify.FeedbackReady) error
}

type FeedbackProcessor struct {
	store    FeedbackStore
	model    FeedbackModel
	notifier Notifier
	enabled  bool
	metrics  *observability.Metrics
	logger   *observability.Logger
}

func New(feedbackStore FeedbackStore, model FeedbackModel, notifier Notifier, enabled bool, metrics *observability.Metrics, logger *observability.Logger) *FeedbackProcessor {
	return &FeedbackProcessor{
		store:    feedbackStore,
		model:    model,
		notifier: notifier,
		enabled:  enabled,
		metrics:  metrics,
		logger:   logger,
	}
}

var _ callsession.FeedbackService = (*FeedbackProcessor)(nil)

type categoryPayload struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

type feedbackPayload struct {
	TotalScore          float64           `json:"totalScore"`
	CategoryScores      []categoryPayload `json:"categoryScores"`
	Strengths           []string          `json:"strengths"`
	AreasForImprovement []string          `json:"areasForImprovement"`
	FinalAssessment     string            `json:"finalAssessment"`
}

const feedbackSystemPrompt = "You are a professional interviewer analyzing a mock interview. Your task is to evaluate the candidate based on structured categories. Respond with a single JSON object and nothing else."

func buildFeedbackPrompt(transcript string) string {
	return fmt.Sprintf(`You are an AI interviewer analyzing a mock interview. Your task is to evaluate the candidate based on structured categories. Be thorough and detailed in your analysis. Don't be lenient with the candidate. If there are mistakes or areas for improvement, point them out.
Transcript:
%s

Please score the candidate from 0 to 100 in the following areas. Do not add categories other than the ones provided:
- **Communication Skills**: Clarity, articulation, structured responses.
- **Technical Knowledge**: Understanding of key concepts for the role.
- **Problem Solving**: Ability to analyze problems and propose solutions.
- **Cultural Fit**: Alignment with company values and job role.
- **Confidence and Clarity**: Confidence in responses, engagement, and clarity.

Answer with this JSON shape:
{"totalScore": number, "categoryScores": [{"name": string, "score": number, "comment": string}], "strengths": [string], "areasForImprovement": [string], "finalAssessment": string}`, transcript)
}

// FormatTranscript renders one "- role: content" line per entry.
func FormatTranscript(entries []callsession.TranscriptEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s: %s\n", e.Speaker, e.Text)
	}
	return b.String()
}

// Generate scores a finished interview transcript and stores the result.
func (p *FeedbackProcessor) Generate(ctx context.Context, req callsession.FeedbackRequest) (callsession.FeedbackResult, error) {
	if !p.enabled {
		p.count("disabled")
		return callsession.FeedbackResult{Success: false}, ErrFeedbackDisabled
	}

	interviewID, err := uuid.Parse(req.InterviewID)
	if err != nil {
		return callsession.FeedbackResult{}, ErrMissingIdentity
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return callsession.FeedbackResult{}, ErrMissingIdentity
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "interview_id", Value: interviewID},
		observability.Field{Key: "user_id", Value: userID},
		observability.Field{Key: "transcript_entries", Value: len(req.Transcript)},
	)

	if len(req.Transcript) == 0 {
		p.count("error")
		return callsession.FeedbackResult{}, ErrEmptyTranscript
	}

	interview, err := p.store.GetInterviewByID(ctx, interviewID)
	if err != nil {
		p.count("error")
		if errors.Is(err, store.ErrNotFound) {
			return callsession.FeedbackResult{}, ErrInterviewNotFound
		}
		p.logger.Error(ctx, "failed to load interview for feedback", err)
		return callsession.FeedbackResult{}, ErrFailedCreateFeedback
	}

	raw, err := p.model.GenerateJSON(ctx, feedbackSystemPrompt, buildFeedbackPrompt(FormatTranscript(req.Transcript)))
	if err != nil {
		p.logger.Error(ctx, "failed to generate feedback", err)
		p.count("error")
		return callsession.FeedbackResult{}, fmt.Errorf("%w: %w", ErrInvalidFeedbackResponse, err)
	}

	params, err := parseFeedback(raw)
	if err != nil {
		p.logger.Error(ctx, "failed to parse generated feedback", err)
		p.count("error")
		return callsession.FeedbackResult{}, err
	}
	params.InterviewID = interviewID
	params.UserID = userID

	feedback, err := p.store.CreateFeedback(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to store feedback", err)
		p.count("error")
		return callsession.FeedbackResult{}, ErrFailedCreateFeedback
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "feedback_id", Value: feedback.ID})
	p.count("success")
	p.logger.Info(ctx, "feedback generated")

	p.sendFeedbackReady(ctx, interview, feedback)

	return callsession.FeedbackResult{Success: true, FeedbackID: feedback.ID.String()}, nil
}

// sendFeedbackReady is best effort: failures are logged and never fail the generation.
func (p *FeedbackProcessor) sendFeedbackReady(ctx context.Context, interview store.Interview, feedback store.Feedback) {
	if p.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	user, err := p.store.GetUserByID(ctx, feedback.UserID)
	if err != nil {
		p.logger.InfoWithError(ctx, "skipping feedback email, user lookup failed", err)
		return
	}

	err = p.notifier.SendFeedbackReady(ctx, notify.FeedbackReady{
		To:          user.Email,
		Name:        user.Name,
		Role:        interview.Role,
		InterviewID: interview.ID,
		FeedbackID:  feedback.ID,
		TotalScore:  feedback.TotalScore,
	})
	if err != nil {
		p.logger.InfoWithError(ctx, "feedback email not sent", err)
	}
}

func (p *FeedbackProcessor) GetFeedback(ctx context.Context, interviewID, userID uuid.UUID) (store.Feedback, error) {
	feedback, err := p.store.GetFeedbackByInterviewID(ctx, interviewID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Feedback{}, ErrFeedbackNotFound
		}
		p.logger.Error(ctx, "failed to get feedback", err)
		return store.Feedback{}, ErrFailedGetFeedback
	}
	return feedback, nil
}

func (p *FeedbackProcessor) count(result string) {
	if p.metrics != nil {
		p.metrics.FeedbackGenerated.WithLabelValues(result).Inc()
	}
}

// parseFeedback validates the model output: every category exactly once, scores clamped to 0..100.
func parseFeedback(raw string) (store.CreateFeedbackParams, error) {
	var payload feedbackPayload
	if err := llm.DecodeJSON(raw, &payload); err != nil {
		return store.CreateFeedbackParams{}, fmt.Errorf("%w: %w", ErrInvalidFeedbackResponse, err)
	}

	byName := make(map[string]categoryPayload, len(payload.CategoryScores))
	for _, c := range payload.CategoryScores {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if _, dup := byName[key]; dup {
			return store.CreateFeedbackParams{}, fmt.Errorf("%w: duplicate category %q", ErrInvalidFeedbackResponse, c.Name)
		}
		byName[key] = c
	}
	if len(byName) != len(Categories) {
		return store.CreateFeedbackParams{}, fmt.Errorf("%w: expected %d categories, got %d", ErrInvalidFeedbackResponse, len(Categories), len(byName))
	}

	scores := make([]store.CategoryScore, 0, len(Categories))
	for _, name := range Categories {
		c, ok := byName[strings.ToLower(name)]
		if !ok {
			return store.CreateFeedbackParams{}, fmt.Errorf("%w: missing category %q", ErrInvalidFeedbackResponse, name)
		}
		scores = append(scores, store.CategoryScore{
			Name:    name,
			Score:   clampScore(c.Score),
			Comment: strings.TrimSpace(c.Comment),
		})
	}

	if strings.TrimSpace(payload.FinalAssessment) == "" {
		return store.CreateFeedbackParams{}, fmt.Errorf("%w: missing final assessment", ErrInvalidFeedbackResponse)
	}

	return store.CreateFeedbackParams{
		TotalScore:          clampScore(payload.TotalScore),
		CategoryScores:      scores,
		Strengths:           nonEmpty(payload.Strengths),
		AreasForImprovement: nonEmpty(payload.AreasForImprovement),
		FinalAssessment:     strings.TrimSpace(payload.FinalAssessment),
	}, nil
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(100, v))))
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
