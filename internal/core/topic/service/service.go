package topicapp

import (
	"context"
	"fmt"
	"time"

	"forum/internal/core/auth"
	"forum/internal/core/errs"
	"forum/internal/core/pagination"
	topicEntity "forum/internal/core/topic"
	topicPort "forum/internal/ports/topic"
)

type TopicService struct {
	TopicRepository topicPort.TopicRepository
	now             func() time.Time
}

func NewTopicService(repo topicPort.TopicRepository) *TopicService {
	return &TopicService{
		TopicRepository: repo,
		now:             time.Now,
	}
}

// ListTopics returns one page of topics, oldest first.
func (s *TopicService) ListTopics(ctx context.Context, params pagination.Params) (pagination.PagedList[*topicPort.TopicDTO], error) {
	topics, total, err := s.TopicRepository.List(ctx, params.Offset(), params.Limit())
	if err != nil {
		return pagination.PagedList[*topicPort.TopicDTO]{}, fmt.Errorf("list topics: %w", err)
	}
	page := pagination.New(topics, params, int(total))
	return pagination.Map(page, topicPort.ToDTO), nil
}

func (s *TopicService) GetTopic(ctx context.Context, id uint) (*topicPort.TopicDTO, error) {
	t, err := s.TopicRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return topicPort.ToDTO(t), nil
}

// CreateTopic stores a new topic owned by the caller.
func (s *TopicService) CreateTopic(ctx context.Context, actor auth.Context, title, description string) (*topicPort.TopicDTO, error) {
	if !actor.HasRole(auth.RoleForumUser) {
		return nil, errs.ErrForbidden
	}

	t := &topicEntity.Topic{
		Title:       title,
		Description: description,
		CreatedAt:   s.now().UTC(),
		IsDeleted:   false,
		UserID:      actor.UserID,
	}
	created, err := s.TopicRepository.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return topicPort.ToDTO(created), nil
}

// UpdateTopic changes the description; only the owner or an admin may do it.
func (s *TopicService) UpdateTopic(ctx context.Context, actor auth.Context, id uint, description string) (*topicPort.TopicDTO, error) {
	t, err := s.TopicRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(t.UserID) {
		return nil, errs.ErrForbidden
	}

	t.Description = description
	if err := s.TopicRepository.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update topic %d: %w", id, err)
	}
	return topicPort.ToDTO(t), nil
}

// DeleteTopic is admin only and removes every post and comment under the topic.
func (s *TopicService) DeleteTopic(ctx context.Context, actor auth.Context, id uint) error {
	if _, err := s.TopicRepository.FindByID(ctx, id); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}
	if err := s.TopicRepository.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("delete topic %d: %w", id, err)
	}
	return nil
}
