package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionSkillState struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId        string    `gorm:"type:text;not null;uniqueIndex:uq_skill_state_session_skill"`
	Skill            string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_skill_state_session_skill"`
	Rating           int       `gorm:"not null;default:50"`
	TargetDifficulty int       `gorm:"not null;default:2"`
	AskedCount       int       `gorm:"not null;default:0"`
	CorrectCount     int       `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (SessionSkillState) TableName() string {
	return "session_skill_states"
}
