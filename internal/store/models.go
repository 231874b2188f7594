package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered candidate
type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Interview is a generated question set
type Interview struct {
	ID         uuid.UUID   `db:"id"`
	UserID     uuid.UUID   `db:"user_id"`
	Role       string      `db:"role"`
	Level      string      `db:"level"`
	Type       string      `db:"type"`
	Techstack  StringArray `db:"techstack"`
	Questions  StringArray `db:"questions"`
	Finalized  bool        `db:"finalized"`
	CoverImage string      `db:"cover_image"`
	CreatedAt  time.Time   `db:"created_at"`
}

// CategoryScore is one scored evaluation category
type CategoryScore struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// CategoryScores is stored as a JSONB array
type CategoryScores []CategoryScore

// Feedback is a scored evaluation of one interview transcript
type Feedback struct {
	ID                  uuid.UUID      `db:"id"`
	InterviewID         uuid.UUID      `db:"interview_id"`
	UserID              uuid.UUID      `db:"user_id"`
	TotalScore          int            `db:"total_score"`
	CategoryScores      CategoryScores `db:"category_scores"`
	Strengths           StringArray    `db:"strengths"`
	AreasForImprovement StringArray    `db:"areas_for_improvement"`
	FinalAssessment     string         `db:"final_assessment"`
	CreatedAt           time.Time      `db:"created_at"`
}

// Value implements the driver.Valuer interface for CategoryScores
func (c CategoryScores) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for CategoryScores
func (c *CategoryScores) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for CategoryScores")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*c = CategoryScores{}
		return nil
	}

	var result CategoryScores
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*c = result
	return nil
}

// StringArray is a custom type for PostgreSQL text[] arrays
type StringArray []string

// Value implements the driver.Valuer interface for StringArray.
// Every element is quoted so commas and braces inside questions survive.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		for _, r := range s {
			if r == '"' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String(), nil
}

// Scan implements the sql.Scanner interface for StringArray
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var str string
	switch v := value.(type) {
	case []byte:
		str = string(v)
	case string:
		str = v
	default:
		return fmt.Errorf("unsupported type for StringArray: %T", value)
	}

	parsed, err := parseTextArray(str)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// parseTextArray decodes a one-dimensional Postgres array literal.
func parseTextArray(str string) ([]string, error) {
	if str == "" || str == "{}" {
		return []string{}, nil
	}
	if len(str) < 2 || str[0] != '{' || str[len(str)-1] != '}' {
		return nil, fmt.Errorf("malformed array literal: %q", str)
	}
	body := str[1 : len(str)-1]

	result := []string{}
	var cur strings.Builder
	quoted, inQuotes, escaped := false, false, false
	flush := func() {
		elem := cur.String()
		if !quoted {
			elem = strings.TrimSpace(elem)
		}
		result = append(result, elem)
		cur.Reset()
		quoted = false
	}

	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ',' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuotes || escaped {
		return nil, fmt.Errorf("malformed array literal: %q", str)
	}
	flush()
	return result, nil
}
