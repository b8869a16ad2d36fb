package memory

import (
	"context"
	"time"

	"forum/internal/core/comment"
	"forum/internal/core/errs"
)

type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[c.PostID]; !ok {
		return nil, errs.ErrNotFound
	}
	r.s.commentSeq++
	c.ID = r.s.commentSeq
	stored := *c
	r.s.comments[c.ID] = &stored
	return c, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, postID, commentID uint) (*comment.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[commentID]
	if !ok || c.PostID != postID {
		return nil, errs.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uint, offset, limit int) ([]*comment.Comment, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*comment.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			cp := *c
			all = append(all, &cp)
		}
	}
	items, total := page(all,
		func(c *comment.Comment) time.Time { return c.CreatedAt },
		func(c *comment.Comment) uint { return c.ID },
		offset, limit)
	return items, total, nil
}

func (r *CommentRepository) Update(ctx context.Context, c *comment.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[c.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *c
	r.s.comments[c.ID] = &stored
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, postID, commentID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[commentID]
	if !ok || c.PostID != postID {
		return errs.ErrNotFound
	}
	delete(r.s.comments, commentID)
	return nil
}
