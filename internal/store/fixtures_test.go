package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Fixtures provides factory functions for creating test data.
// All factory methods use testify/require to fail fast on errors.
type Fixtures struct {
	t      *testing.T
	testDB *TestDB
	ctx    context.Context
}

// NewFixtures creates a new Fixtures instance for test data generation.
func NewFixtures(t *testing.T, testDB *TestDB) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:      t,
		testDB: testDB,
		ctx:    context.Background(),
	}
}

// CreateUser creates a test user with a unique email.
func (f *Fixtures) CreateUser(name string) User {
	f.t.Helper()
	user, err := f.testDB.Store.CreateUser(f.ctx, CreateUserParams{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
	})
	require.NoError(f.t, err, "failed to create test user")
	return user
}

// InterviewOpts customizes interview creation.
type InterviewOpts struct {
	Role      string
	Finalized bool
	Questions []string
}

// CreateInterview creates an interview owned by userID.
func (f *Fixtures) CreateInterview(userID uuid.UUID, opts ...func(*InterviewOpts)) Interview {
	f.t.Helper()
	o := InterviewOpts{
		Role:      "Frontend Developer",
		Finalized: true,
		Questions: []string{"What is a closure?", "Explain hoisting, with an example."},
	}
	for _, fn := range opts {
		fn(&o)
	}

	interview, err := f.testDB.Store.CreateInterview(f.ctx, CreateInterviewParams{
		UserID:     userID,
		Role:       o.Role,
		Level:      "Junior",
		Type:       "Technical",
		Techstack:  []string{"react", "typescript"},
		Questions:  o.Questions,
		Finalized:  o.Finalized,
		CoverImage: "/covers/adobe.png",
	})
	require.NoError(f.t, err, "failed to create test interview")
	return interview
}
