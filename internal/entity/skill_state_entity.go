package entity

import (
	"time"

	"github.com/google/uuid"
)

// SkillState is the per-(session, skill) proficiency row. Rating stays within
// [0,100]; TargetDifficulty mirrors the difficulty of the last graded attempt.
type SkillState struct {
	Id               uuid.UUID
	SessionId        string
	Skill            string
	Rating           int
	TargetDifficulty int
	AskedCount       int
	CorrectCount     int
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
