package contract

import (
	"context"

	"ai-interview-be/internal/entity"
)

// ContextCache is the volatile per-session store. Every method degrades to a
// miss or a no-op when the backend is unavailable; implementations never
// return errors so callers fall through to the durable path instead of
// handling cache failures.
type ContextCache interface {
	GetContext(ctx context.Context, sessionId string) *entity.SessionContext
	SetContext(ctx context.Context, sessionId string, sc *entity.SessionContext)
	AppendTranscript(ctx context.Context, sessionId string, turn entity.TranscriptTurn)
	RecentTranscript(ctx context.Context, sessionId string, limit int) []entity.TranscriptTurn
}
