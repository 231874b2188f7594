package processor

import (
	"context"
	"errors"
	"fmt"
	"mockly-server/internal/clients/llm"
	"mockly-server/internal/observability"
	"mockly-server/internal/store"
	"mockly-server/internal/techstack"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=processor.go -destination=mocks_test.go -package=processor

var (
	ErrInterviewNotFound     = errors.New("interview not found")
	ErrInvalidAmount         = errors.New("invalid question amount")
	ErrInvalidUserID         = errors.New("invalid user id")
	ErrQuestionGeneration    = errors.New("failed to generate interview questions")
	ErrFailedCreateInterview = errors.New("failed to create interview")
	ErrFailedGetInterviews   = errors.New("failed to get interviews")
)

const (
	MaxQuestions       = 50
	DefaultLatestLimit = 20
	MaxLatestLimit     = 100
)

// InterviewStore defines the database operations required by InterviewProcessor
type InterviewStore interface {
	CreateInterview(ctx context.Context, params store.CreateInterviewParams) (store.Interview, error)
	GetInterviewByID(ctx context.Context, interviewID uuid.UUID) (store.Interview, error)
	GetInterviewsByUserID(ctx context.Context, userID uuid.UUID) ([]store.Interview, error)
	GetLatestInterviews(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]store.Interview, error)
}

// QuestionModel generates the question list as a JSON document
type QuestionModel interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

type InterviewProcessor struct {
	store   InterviewStore
	model   QuestionModel
	metrics *observability.Metrics
	logger  *observability.Logger
	cover   func() string
}

// GenerateRequest is the payload posted by the generator workflow
type GenerateRequest struct {
	Type      string
	Role      string
	Level     string
	Techstack string
	Amount    string
	UserID    string
}

func New(interviewStore InterviewStore, model QuestionModel, metrics *observability.Metrics, logger *observability.Logger) InterviewProcessor {
	return InterviewProcessor{
		store:   interviewStore,
		model:   model,
		metrics: metrics,
		logger:  logger,
		cover:   techstack.RandomCover,
	}
}

const generateSystemPrompt = "You prepare job interview questions that will be read aloud by a voice assistant. Respond with a JSON array of strings and nothing else."

func buildGeneratePrompt(req GenerateRequest, amount int) string {
	return fmt.Sprintf(`Prepare questions for a job interview.
The job role is %s.
The job experience level is %s.
The tech stack used in the job is: %s.
The focus between behavioural and technical questions should lean towards: %s.
The amount of questions required is: %d.
Please return only the questions, without any additional text.
The questions are going to be read by a voice assistant so do not use "/" or "*" or any other special characters which might break the voice assistant.
Return the questions formatted like this:
["Question 1", "Question 2", "Question 3"]`,
		req.Role, req.Level, req.Techstack, req.Type, amount)
}

// Generate asks the model for a question set and stores it as a finalized interview.
func (p *InterviewProcessor) Generate(ctx context.Context, req GenerateRequest) (store.Interview, error) {
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		return store.Interview{}, ErrInvalidUserID
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return store.Interview{}, err
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID},
		observability.Field{Key: "interview_role", Value: req.Role},
		observability.Field{Key: "question_amount", Value: amount},
	)

	raw, err := p.model.GenerateJSON(ctx, generateSystemPrompt, buildGeneratePrompt(req, amount))
	if err != nil {
		p.logger.Error(ctx, "failed to generate questions", err)
		p.countGeneration("error")
		return store.Interview{}, fmt.Errorf("%w: %w", ErrQuestionGeneration, err)
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		p.logger.Error(ctx, "failed to parse generated questions", err)
		p.countGeneration("error")
		return store.Interview{}, fmt.Errorf("%w: %w", ErrQuestionGeneration, err)
	}

	interview, err := p.store.CreateInterview(ctx, store.CreateInterviewParams{
		UserID:     userID,
		Role:       strings.TrimSpace(req.Role),
		Level:      strings.TrimSpace(req.Level),
		Type:       strings.TrimSpace(req.Type),
		Techstack:  techstack.Split(req.Techstack),
		Questions:  questions,
		Finalized:  true,
		CoverImage: p.cover(),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to store interview", err)
		p.countGeneration("error")
		return store.Interview{}, ErrFailedCreateInterview
	}

	p.countGeneration("success")
	p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "interview_id", Value: interview.ID}), "interview generated")
	return interview, nil
}

func (p *InterviewProcessor) GetInterview(ctx context.Context, interviewID uuid.UUID) (store.Interview, error) {
	interview, err := p.store.GetInterviewByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Interview{}, ErrInterviewNotFound
		}
		p.logger.Error(observability.WithFields(ctx, observability.Field{Key: "interview_id", Value: interviewID}), "failed to get interview", err)
		return store.Interview{}, ErrFailedGetInterviews
	}
	return interview, nil
}

func (p *InterviewProcessor) ListUserInterviews(ctx context.Context, userID uuid.UUID) ([]store.Interview, error) {
	interviews, err := p.store.GetInterviewsByUserID(ctx, userID)
	if err != nil {
		p.logger.Error(ctx, "failed to list user interviews", err)
		return nil, ErrFailedGetInterviews
	}
	return interviews, nil
}

// ListLatestInterviews returns finalized interviews created by anyone except excludeUserID.
func (p *InterviewProcessor) ListLatestInterviews(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]store.Interview, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	if limit > MaxLatestLimit {
		limit = MaxLatestLimit
	}
	interviews, err := p.store.GetLatestInterviews(ctx, excludeUserID, limit)
	if err != nil {
		p.logger.Error(ctx, "failed to list latest interviews", err)
		return nil, ErrFailedGetInterviews
	}
	return interviews, nil
}

func (p *InterviewProcessor) countGeneration(result string) {
	if p.metrics != nil {
		p.metrics.InterviewsCreated.WithLabelValues(result).Inc()
	}
}

func parseAmount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > MaxQuestions {
		return 0, ErrInvalidAmount
	}
	return n, nil
}

func parseQuestions(raw string) ([]string, error) {
	var questions []string
	if err := llm.DecodeJSON(raw, &questions); err != nil {
		return nil, err
	}

	cleaned := make([]string, 0, len(questions))
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}
	if len(cleaned) == 0 {
		return nil, llm.ErrEmptyResponse
	}
	return cleaned, nil
}
