package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Attempt struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId     string         `gorm:"type:text;not null;index"`
	QuestionId    string         `gorm:"type:text"`
	Score         float64        `gorm:"not null"`
	Objective     datatypes.JSON `gorm:"type:jsonb"`
	TimeMs        int            `gorm:"not null;default:0"`
	Difficulty    int            `gorm:"not null;default:2"`
	AnswerPayload datatypes.JSON `gorm:"type:jsonb"`
	Feedback      string         `gorm:"type:text"`
	HintsUsed     int            `gorm:"not null;default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index"`
}

func (Attempt) TableName() string {
	return "attempts"
}
