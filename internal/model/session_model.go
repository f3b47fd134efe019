package model

import (
	"time"
)

// Session rows are written by the session bootstrap collaborator; this model
// exists so the core can read them and so cmd/migrate can create the table.
type Session struct {
	Id            string    `gorm:"type:text;primaryKey"`
	CandidateName string    `gorm:"type:varchar(255)"`
	Status        string    `gorm:"type:varchar(32);not null;default:'created'"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
