package repository

import (
	"context"
	"errors"

	"ai-laborlaw-be/pkg/workflow"
)

// ErrSessionNotFound is returned when a consultation session is unknown or
// has expired out of the store.
var ErrSessionNotFound = errors.New("consultation session not found")

// ISessionRepository stores live consultation sessions between turns.
// Implementations expire idle sessions after an hour.
type ISessionRepository interface {
	Save(ctx context.Context, session *workflow.Session) error
	Get(ctx context.Context, sessionID string) (*workflow.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
