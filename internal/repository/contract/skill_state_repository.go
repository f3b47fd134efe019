package contract

import (
	"context"

	"ai-interview-be/internal/entity"
)

// SkillStateRepository persists per-(session, skill) proficiency rows.
// Upsert inserts on first attempt at a skill and overwrites the mutable
// fields afterwards; rows are never deleted within a session.
type SkillStateRepository interface {
	Upsert(ctx context.Context, state *entity.SkillState) error
	FindOne(ctx context.Context, sessionId, skill string) (*entity.SkillState, error)
	FindAllBySession(ctx context.Context, sessionId string) ([]*entity.SkillState, error)
}
