package comment

import (
	"context"
	"time"

	"forum/internal/core/comment"
)

// CommentRepository port for storing and loading comments
type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, postID, commentID uint) (*comment.Comment, error)
	ListByPost(ctx context.Context, postID uint, offset, limit int) ([]*comment.Comment, int64, error)
	Update(ctx context.Context, c *comment.Comment) error
	Delete(ctx context.Context, postID, commentID uint) error
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
