package session

import (
	"context"
	"time"

	"forum/internal/core/session"

	"github.com/gofrs/uuid"
)

// Store persists refresh-token sessions keyed by session id and user id.
type Store interface {
	Create(ctx context.Context, s *session.Session) error
	// Get returns errs.ErrNotFound for unknown or already invalidated sessions.
	Get(ctx context.Context, id uuid.UUID) (*session.Session, error)
	// Extend swaps the stored refresh token hash from prevHash to tokenHash and
	// sets the new expiry. It returns errs.ErrConflict when the stored hash is
	// no longer prevHash, so only one of two concurrent rotations wins.
	Extend(ctx context.Context, id uuid.UUID, prevHash, tokenHash string, expiresAt time.Time) error
	Invalidate(ctx context.Context, id uuid.UUID) error
	// DeleteExpired drops sessions whose expiry has passed and reports how many.
	DeleteExpired(ctx context.Context) (int, error)
}
