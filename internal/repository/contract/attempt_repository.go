package contract

import (
	"context"

	"ai-interview-be/internal/entity"
)

// AttemptRepository is an append-only log. Listing is always newest-first.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *entity.Attempt) error
	FindRecentBySession(ctx context.Context, sessionId string, limit int) ([]*entity.Attempt, error)
	FindAllBySession(ctx context.Context, sessionId string) ([]*entity.Attempt, error)
}
