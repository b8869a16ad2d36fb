package post

import (
	"context"
	"time"

	"forum/internal/core/post"
)

// PostRepository port for storing and loading posts
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	// FindByID looks the post up inside its topic.
	FindByID(ctx context.Context, topicID, postID uint) (*post.Post, error)
	ListByTopic(ctx context.Context, topicID uint, offset, limit int) ([]*post.Post, int64, error)
	Update(ctx context.Context, p *post.Post) error
	// DeleteCascade removes the post and its comments atomically.
	DeleteCascade(ctx context.Context, topicID, postID uint) error
}

// DTOs for the use cases
type PostDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToDTO(p *post.Post) *PostDTO {
	return &PostDTO{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
	}
}
