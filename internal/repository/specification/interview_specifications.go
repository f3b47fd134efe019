package specification

import "gorm.io/gorm"

// BySession scopes a query to one interview session.
type BySession struct {
	SessionID string
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// BySkill filters questions or skill states by skill name.
type BySkill struct {
	Skill string
}

func (s BySkill) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("skill = ?", s.Skill)
}

// ByDifficulty filters questions by target difficulty.
type ByDifficulty struct {
	Difficulty int
}

func (s ByDifficulty) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("difficulty = ?", s.Difficulty)
}
