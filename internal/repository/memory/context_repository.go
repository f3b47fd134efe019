package memory

import (
	"time"

	"ai-interview-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ContextRepository is the process-local last-resort table for session
// contexts, used when both the cache and the durable store are unreachable.
// It is bounded by TTL so abandoned sessions do not accumulate; state held
// only here does not survive a restart, which is an accepted degradation.
type ContextRepository struct {
	cache *cache.Cache
}

func NewContextRepository() *ContextRepository {
	// Default expiration of 1 hour, expired entries purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ContextRepository{
		cache: c,
	}
}

func (r *ContextRepository) Save(sc *entity.SessionContext) {
	r.cache.Set(sc.SessionId, sc, cache.DefaultExpiration)
}

func (r *ContextRepository) Get(sessionID string) (*entity.SessionContext, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*entity.SessionContext), true
	}
	return nil, false
}

func (r *ContextRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
