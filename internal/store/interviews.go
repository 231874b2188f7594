package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type CreateInterviewParams struct {
	UserID     uuid.UUID
	Role       string
	Level      string
	Type       string
	Techstack  []string
	Questions  []string
	Finalized  bool
	CoverImage string
}

const interviewColumns = `id, user_id, role, level, type, techstack, questions, finalized, cover_image, created_at`

const sqlCreateInterview = `
INSERT INTO interviews (user_id, role, level, type, techstack, questions, finalized, cover_image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + interviewColumns

func (s *Store) CreateInterview(ctx context.Context, params CreateInterviewParams) (Interview, error) {
	var interview Interview
	err := s.db.GetContext(ctx, &interview, sqlCreateInterview,
		params.UserID,
		params.Role,
		params.Level,
		params.Type,
		StringArray(params.Techstack),
		StringArray(params.Questions),
		params.Finalized,
		params.CoverImage,
	)
	if err != nil {
		s.logger.Error(ctx, "failed to create interview", err)
		return Interview{}, fmt.Errorf("failed to create interview: %w", err)
	}
	return interview, nil
}

const sqlGetInterviewByID = `
SELECT ` + interviewColumns + `
FROM interviews
WHERE id = $1`

func (s *Store) GetInterviewByID(ctx context.Context, interviewID uuid.UUID) (Interview, error) {
	var interview Interview
	err := s.db.GetContext(ctx, &interview, sqlGetInterviewByID, interviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Interview{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get interview by id", err)
		return Interview{}, fmt.Errorf("failed to get interview by id: %w", err)
	}
	return interview, nil
}

const sqlGetInterviewsByUserID = `
SELECT ` + interviewColumns + `
FROM interviews
WHERE user_id = $1
ORDER BY created_at DESC`

// GetInterviewsByUserID returns the user's interviews, newest first
func (s *Store) GetInterviewsByUserID(ctx context.Context, userID uuid.UUID) ([]Interview, error) {
	interviews := []Interview{}
	err := s.db.SelectContext(ctx, &interviews, sqlGetInterviewsByUserID, userID)
	if err != nil {
		s.logger.Error(ctx, "failed to get interviews by user id", err)
		return nil, fmt.Errorf("failed to get interviews by user id: %w", err)
	}
	return interviews, nil
}

const sqlGetLatestInterviews = `
SELECT ` + interviewColumns + `
FROM interviews
WHERE finalized = true AND user_id <> $1
ORDER BY created_at DESC
LIMIT $2`

// GetLatestInterviews returns finalized interviews created by other users, newest first
func (s *Store) GetLatestInterviews(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]Interview, error) {
	interviews := []Interview{}
	err := s.db.SelectContext(ctx, &interviews, sqlGetLatestInterviews, excludeUserID, limit)
	if err != nil {
		s.logger.Error(ctx, "failed to get latest interviews", err)
		return nil, fmt.Errorf("failed to get latest interviews: %w", err)
	}
	return interviews, nil
}
