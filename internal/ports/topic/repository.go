package topic

import (
	"context"
	"time"

	"forum/internal/core/topic"
)

// TopicRepository port for storing and loading topics
type TopicRepository interface {
	Create(ctx context.Context, t *topic.Topic) (*topic.Topic, error)
	FindByID(ctx context.Context, id uint) (*topic.Topic, error)
	// List returns topics ordered by creation time and the total count.
	List(ctx context.Context, offset, limit int) ([]*topic.Topic, int64, error)
	Update(ctx context.Context, t *topic.Topic) error
	// DeleteCascade removes the topic, its posts and their comments atomically.
	DeleteCascade(ctx context.Context, id uint) error
}

// DTOs for the use cases
type TopicDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToDTO(t *topic.Topic) *TopicDTO {
	return &TopicDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}
