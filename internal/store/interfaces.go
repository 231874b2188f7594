package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Storer defines all public methods available on the Store
type Storer interface {
	// Database
	GetDB() *sqlx.DB
	Ping(ctx context.Context) error

	// User operations
	CheckIfEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)

	// Interview operations
	CreateInterview(ctx context.Context, params CreateInterviewParams) (Interview, error)
	GetInterviewByID(ctx context.Context, interviewID uuid.UUID) (Interview, error)
	GetInterviewsByUserID(ctx context.Context, userID uuid.UUID) ([]Interview, error)
	GetLatestInterviews(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]Interview, error)

	// Feedback operations
	CreateFeedback(ctx context.Context, params CreateFeedbackParams) (Feedback, error)
	GetFeedbackByInterviewID(ctx context.Context, interviewID, userID uuid.UUID) (Feedback, error)
}

// Ensure Store implements Storer interface
var _ Storer = (*Store)(nil)
