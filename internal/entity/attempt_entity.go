package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is one immutable record of a graded answer. Scores are stored on
// the caller-supplied scale (the agent records 0-1 fractions).
type Attempt struct {
	Id            uuid.UUID
	SessionId     string
	QuestionId    string
	Score         float64
	Objective     map[string]interface{}
	TimeMs        int
	Difficulty    int
	AnswerPayload map[string]interface{}
	Feedback      string
	HintsUsed     int
	CreatedAt     time.Time
}
