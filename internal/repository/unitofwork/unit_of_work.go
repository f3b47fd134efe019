package unitofwork

import (
	"context"

	"ai-interview-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	QuestionRepository() contract.QuestionRepository
	SkillStateRepository() contract.SkillStateRepository
	AttemptRepository() contract.AttemptRepository
	AgentEventRepository() contract.AgentEventRepository
}
