package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/kvhuynh/sovereign/pkg/session"
)

// SessionStore persists sessions between runs. It backs the autosave path;
// explicit save files go through the file exporter instead.
type SessionStore interface {
	Ping(ctx context.Context) error
	Close() error

	SaveSession(ctx context.Context, s *session.Session) error
	// LoadSession returns (nil, nil) when no session exists under the ID.
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
