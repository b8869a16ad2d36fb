package commentapp

import (
	"context"
	"fmt"
	"time"

	"forum/internal/core/auth"
	commentEntity "forum/internal/core/comment"
	"forum/internal/core/errs"
	"forum/internal/core/pagination"
	commentPort "forum/internal/ports/comment"
	postPort "forum/internal/ports/post"
	topicPort "forum/internal/ports/topic"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	TopicRepository   topicPort.TopicRepository
	now               func() time.Time
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	topicRepo topicPort.TopicRepository,
) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		TopicRepository:   topicRepo,
		now:               time.Now,
	}
}

// ListComments pages the comments of a post; like posts, an empty page is not found.
func (s *CommentService) ListComments(ctx context.Context, topicID, postID uint, params pagination.Params) (pagination.PagedList[*commentPort.CommentDTO], error) {
	var empty pagination.PagedList[*commentPort.CommentDTO]
	if err := s.resolveAncestors(ctx, topicID, postID); err != nil {
		return empty, err
	}

	comments, total, err := s.CommentRepository.ListByPost(ctx, postID, params.Offset(), params.Limit())
	if err != nil {
		return empty, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	page := pagination.New(comments, params, int(total))
	if page.Empty() {
		return empty, errs.ErrNotFound
	}
	return pagination.Map(page, commentPort.ToDTO), nil
}

func (s *CommentService) GetComment(ctx context.Context, topicID, postID, commentID uint) (*commentPort.CommentDTO, error) {
	c, err := s.resolve(ctx, topicID, postID, commentID)
	if err != nil {
		return nil, err
	}
	return commentPort.ToDTO(c), nil
}

func (s *CommentService) CreateComment(ctx context.Context, actor auth.Context, topicID, postID uint, content string) (*commentPort.CommentDTO, error) {
	if !actor.HasRole(auth.RoleForumUser) {
		return nil, errs.ErrForbidden
	}
	if err := s.resolveAncestors(ctx, topicID, postID); err != nil {
		return nil, err
	}

	c := &commentEntity.Comment{
		Content:   content,
		CreatedAt: s.now().UTC(),
		IsDeleted: false,
		UserID:    actor.UserID,
		PostID:    postID,
	}
	created, err := s.CommentRepository.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return commentPort.ToDTO(created), nil
}

func (s *CommentService) UpdateComment(ctx context.Context, actor auth.Context, topicID, postID, commentID uint, content string) (*commentPort.CommentDTO, error) {
	c, err := s.resolve(ctx, topicID, postID, commentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(c.UserID) {
		return nil, errs.ErrForbidden
	}

	c.Content = content
	if err := s.CommentRepository.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update comment %d: %w", commentID, err)
	}
	return commentPort.ToDTO(c), nil
}

func (s *CommentService) DeleteComment(ctx context.Context, actor auth.Context, topicID, postID, commentID uint) error {
	c, err := s.resolve(ctx, topicID, postID, commentID)
	if err != nil {
		return err
	}
	if !actor.CanModify(c.UserID) {
		return errs.ErrForbidden
	}
	if err := s.CommentRepository.Delete(ctx, postID, commentID); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return nil
}

// resolveAncestors checks that the topic exists and the post belongs to it.
func (s *CommentService) resolveAncestors(ctx context.Context, topicID, postID uint) error {
	if _, err := s.TopicRepository.FindByID(ctx, topicID); err != nil {
		return err
	}
	_, err := s.PostRepository.FindByID(ctx, topicID, postID)
	return err
}

func (s *CommentService) resolve(ctx context.Context, topicID, postID, commentID uint) (*commentEntity.Comment, error) {
	if err := s.resolveAncestors(ctx, topicID, postID); err != nil {
		return nil, err
	}
	return s.CommentRepository.FindByID(ctx, postID, commentID)
}
