package contract

import (
	"context"

	"ai-interview-be/internal/entity"
)

type AgentEventRepository interface {
	Create(ctx context.Context, event *entity.AgentEvent) error
	FindAllBySession(ctx context.Context, sessionId string) ([]*entity.AgentEvent, error)
}
