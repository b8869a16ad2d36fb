package user

import (
	"context"

	"forum/internal/core/user"
)

// UserRepository port for storing and loading users
type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// DTOs for the use cases
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type UserDTO struct {
	ID       string `json:"userId"`
	Username string `json:"userName"`
	Email    string `json:"email"`
}
