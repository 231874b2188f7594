package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type CreateFeedbackParams struct {
	InterviewID         uuid.UUID
	UserID              uuid.UUID
	TotalScore          int
	CategoryScores      []CategoryScore
	Strengths           []string
	AreasForImprovement []string
	FinalAssessment     string
}

const feedbackColumns = `id, interview_id, user_id, total_score, category_scores, strengths, areas_for_improvement, final_assessment, created_at`

const sqlCreateFeedback = `
INSERT INTO feedback (interview_id, user_id, total_score, category_scores, strengths, areas_for_improvement, final_assessment)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + feedbackColumns

func (s *Store) CreateFeedback(ctx context.Context, params CreateFeedbackParams) (Feedback, error) {
	var feedback Feedback
	err := s.db.GetContext(ctx, &feedback, sqlCreateFeedback,
		params.InterviewID,
		params.UserID,
		params.TotalScore,
		CategoryScores(params.CategoryScores),
		StringArray(params.Strengths),
		StringArray(params.AreasForImprovement),
		params.FinalAssessment,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to create feedback", err)
		return Feedback{}, fmt.Errorf("failed to create feedback: %w", err)
	}
	return feedback, nil
}

const sqlGetFeedbackByInterviewID = `
SELECT ` + feedbackColumns + `
FROM feedback
WHERE interview_id = $1 AND user_id = $2
ORDER BY created_at DESC
LIMIT 1`

// GetFeedbackByInterviewID returns the newest feedback the user received for an interview
func (s *Store) GetFeedbackByInterviewID(ctx context.Context, interviewID, userID uuid.UUID) (Feedback, error) {
	var feedback Feedback
	err := s.db.GetContext(ctx, &feedback, sqlGetFeedbackByInterviewID, interviewID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Feedback{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get feedback by interview id", err)
		return Feedback{}, fmt.Errorf("failed to get feedback by interview id: %w", err)
	}
	return feedback, nil
}
