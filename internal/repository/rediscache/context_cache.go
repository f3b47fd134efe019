package rediscache

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// ContextCache stores the session context blob and the append-only transcript
// list in Redis. Every operation swallows backend errors: a broken or absent
// Redis behaves like an always-miss cache and the caller falls through to the
// durable store.
type ContextCache struct {
	rdb    *redis.Client
	logger logger.ILogger
}

func NewContextCache(rdb *redis.Client, log logger.ILogger) contract.ContextCache {
	return &ContextCache{
		rdb:    rdb,
		logger: log,
	}
}

func (c *ContextCache) GetContext(ctx context.Context, sessionId string) *entity.SessionContext {
	if c.rdb == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, contextKey(sessionId)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("ContextCache", "Context read failed, degrading to store", map[string]interface{}{
				"session_id": sessionId, "error": err.Error(),
			})
		}
		return nil
	}
	var sc entity.SessionContext
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		c.logger.Warn("ContextCache", "Corrupt context entry ignored", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		return nil
	}
	return &sc
}

func (c *ContextCache) SetContext(ctx context.Context, sessionId string, sc *entity.SessionContext) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(sc)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, contextKey(sessionId), data, 0).Err(); err != nil {
		c.logger.Warn("ContextCache", "Context write failed", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
	}
}

func (c *ContextCache) AppendTranscript(ctx context.Context, sessionId string, turn entity.TranscriptTurn) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(turn)
	if err != nil {
		return
	}
	if err := c.rdb.RPush(ctx, transcriptKey(sessionId), data).Err(); err != nil {
		c.logger.Warn("ContextCache", "Transcript append failed", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
	}
}

func (c *ContextCache) RecentTranscript(ctx context.Context, sessionId string, limit int) []entity.TranscriptTurn {
	if c.rdb == nil {
		return []entity.TranscriptTurn{}
	}
	raws, err := c.rdb.LRange(ctx, transcriptKey(sessionId), int64(-limit), -1).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("ContextCache", "Transcript read failed", map[string]interface{}{
				"session_id": sessionId, "error": err.Error(),
			})
		}
		return []entity.TranscriptTurn{}
	}
	turns := make([]entity.TranscriptTurn, 0, len(raws))
	for _, raw := range raws {
		var turn entity.TranscriptTurn
		if err := json.Unmarshal([]byte(raw), &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns
}

func contextKey(sessionId string) string {
	return fmt.Sprintf("session:%s:context", sessionId)
}

func transcriptKey(sessionId string) string {
	return fmt.Sprintf("session:%s:transcript", sessionId)
}
