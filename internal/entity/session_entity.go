package entity

import "time"

// Session is created by the external session bootstrap before orchestration
// begins. The core only ever reads it.
type Session struct {
	Id            string
	CandidateName string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
