package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AgentEvent struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string         `gorm:"type:text;not null;index"`
	StepId    string         `gorm:"type:varchar(128)"`
	Plan      string         `gorm:"type:text"`
	Action    string         `gorm:"type:text"`
	Outcome   string         `gorm:"type:text"`
	Metrics   datatypes.JSON `gorm:"type:jsonb"`
	Flagged   bool           `gorm:"not null;default:false"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (AgentEvent) TableName() string {
	return "agent_events"
}
