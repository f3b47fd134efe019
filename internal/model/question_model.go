package model

import (
	"gorm.io/datatypes"
)

type Question struct {
	Id         string         `gorm:"type:text;primaryKey"`
	Skill      string         `gorm:"type:varchar(64);not null;index:idx_questions_skill_difficulty"`
	Difficulty int            `gorm:"not null;index:idx_questions_skill_difficulty"`
	Type       string         `gorm:"type:varchar(32);not null;default:'open'"`
	Prompt     string         `gorm:"type:text;not null"`
	Weight     float64        `gorm:"not null;default:1"`
	Meta       datatypes.JSON `gorm:"type:jsonb"`
}

func (Question) TableName() string {
	return "questions"
}
