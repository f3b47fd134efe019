package contract

import (
	"context"

	"ai-interview-be/internal/entity"
)

// SessionRepository reads session rows owned by the external bootstrap.
// FindByID returns (nil, nil) when the session does not exist yet; the
// zeroth-turn case is not an error.
type SessionRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Session, error)
}
