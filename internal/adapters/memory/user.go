package memory

import (
	"context"

	"forum/internal/core/errs"
	"forum/internal/core/user"

	"github.com/gofrs/uuid"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return nil, errs.ErrUsernameTaken
		}
	}
	stored := *u
	r.s.users[u.ID] = &stored
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	uid, err := uuid.FromString(id)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[uid]
	if !ok {
		return nil, errs.ErrNotFound
	}
	out := *u
	return &out, nil
}
