package entity

import (
	"time"

	"github.com/google/uuid"
)

type AgentEvent struct {
	Id        uuid.UUID
	SessionId string
	StepId    string
	Plan      string
	Action    string
	Outcome   string
	Metrics   map[string]interface{}
	Flagged   bool
	CreatedAt time.Time
}
