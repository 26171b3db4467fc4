package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"ai-laborlaw-be/internal/repository"
	"ai-laborlaw-be/pkg/workflow"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(_ context.Context, session *workflow.Session) error {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sessionID string) (*workflow.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*workflow.Session), nil
	}
	return nil, repository.ErrSessionNotFound
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}
