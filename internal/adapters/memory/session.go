package memory

import (
	"context"
	"sync"
	"time"

	"forum/internal/core/errs"
	"forum/internal/core/session"
	sessionPort "forum/internal/ports/session"

	"github.com/gofrs/uuid"
)

var _ sessionPort.Store = (*SessionStore)(nil)

type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*session.Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Create(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *sess
	s.sessions[sess.ID] = &stored
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	out := *sess
	return &out, nil
}

func (s *SessionStore) Extend(ctx context.Context, id uuid.UUID, prevHash, tokenHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return errs.ErrNotFound
	}
	if sess.LastRefreshTokenHash != prevHash {
		return errs.ErrConflict
	}
	sess.LastRefreshTokenHash = tokenHash
	sess.ExpiresAt = expiresAt
	return nil
}

func (s *SessionStore) Invalidate(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) DeleteExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
