package postapp

import (
	"context"
	"fmt"
	"time"

	"forum/internal/core/auth"
	"forum/internal/core/errs"
	"forum/internal/core/pagination"
	postEntity "forum/internal/core/post"
	postPort "forum/internal/ports/post"
	topicPort "forum/internal/ports/topic"
)

type PostService struct {
	PostRepository  postPort.PostRepository
	TopicRepository topicPort.TopicRepository // ancestor lookups
	now             func() time.Time
}

func NewPostService(postRepo postPort.PostRepository, topicRepo topicPort.TopicRepository) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		TopicRepository: topicRepo,
		now:             time.Now,
	}
}

// ListPosts pages the posts of a topic. A missing topic and an empty page
// both yield errs.ErrNotFound.
func (s *PostService) ListPosts(ctx context.Context, topicID uint, params pagination.Params) (pagination.PagedList[*postPort.PostDTO], error) {
	var empty pagination.PagedList[*postPort.PostDTO]
	if _, err := s.TopicRepository.FindByID(ctx, topicID); err != nil {
		return empty, err
	}

	posts, total, err := s.PostRepository.ListByTopic(ctx, topicID, params.Offset(), params.Limit())
	if err != nil {
		return empty, fmt.Errorf("list posts of topic %d: %w", topicID, err)
	}
	page := pagination.New(posts, params, int(total))
	if page.Empty() {
		return empty, errs.ErrNotFound
	}
	return pagination.Map(page, postPort.ToDTO), nil
}

func (s *PostService) GetPost(ctx context.Context, topicID, postID uint) (*postPort.PostDTO, error) {
	p, err := s.resolve(ctx, topicID, postID)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p), nil
}

func (s *PostService) CreatePost(ctx context.Context, actor auth.Context, topicID uint, title, body string) (*postPort.PostDTO, error) {
	if !actor.HasRole(auth.RoleForumUser) {
		return nil, errs.ErrForbidden
	}
	if _, err := s.TopicRepository.FindByID(ctx, topicID); err != nil {
		return nil, err
	}

	p := &postEntity.Post{
		Title:     title,
		Body:      body,
		CreatedAt: s.now().UTC(),
		IsDeleted: false,
		UserID:    actor.UserID,
		TopicID:   topicID,
	}
	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return postPort.ToDTO(created), nil
}

// UpdatePost changes the body; owner or admin only.
func (s *PostService) UpdatePost(ctx context.Context, actor auth.Context, topicID, postID uint, body string) (*postPort.PostDTO, error) {
	p, err := s.resolve(ctx, topicID, postID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(p.UserID) {
		return nil, errs.ErrForbidden
	}

	p.Body = body
	if err := s.PostRepository.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update post %d: %w", postID, err)
	}
	return postPort.ToDTO(p), nil
}

// DeletePost removes the post and its comments; owner or admin only.
func (s *PostService) DeletePost(ctx context.Context, actor auth.Context, topicID, postID uint) error {
	p, err := s.resolve(ctx, topicID, postID)
	if err != nil {
		return err
	}
	if !actor.CanModify(p.UserID) {
		return errs.ErrForbidden
	}
	if err := s.PostRepository.DeleteCascade(ctx, topicID, postID); err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}
	return nil
}

func (s *PostService) resolve(ctx context.Context, topicID, postID uint) (*postEntity.Post, error) {
	if _, err := s.TopicRepository.FindByID(ctx, topicID); err != nil {
		return nil, err
	}
	return s.PostRepository.FindByID(ctx, topicID, postID)
}
