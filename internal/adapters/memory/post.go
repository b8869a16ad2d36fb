package memory

import (
	"context"
	"time"

	"forum/internal/core/errs"
	"forum/internal/core/post"
)

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.topics[p.TopicID]; !ok {
		return nil, errs.ErrNotFound
	}
	r.s.postSeq++
	p.ID = r.s.postSeq
	stored := *p
	r.s.posts[p.ID] = &stored
	return p, nil
}

func (r *PostRepository) FindByID(ctx context.Context, topicID, postID uint) (*post.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok || p.TopicID != topicID {
		return nil, errs.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *PostRepository) ListByTopic(ctx context.Context, topicID uint, offset, limit int) ([]*post.Post, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*post.Post
	for _, p := range r.s.posts {
		if p.TopicID == topicID {
			c := *p
			all = append(all, &c)
		}
	}
	items, total := page(all,
		func(p *post.Post) time.Time { return p.CreatedAt },
		func(p *post.Post) uint { return p.ID },
		offset, limit)
	return items, total, nil
}

func (r *PostRepository) Update(ctx context.Context, p *post.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[p.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *p
	r.s.posts[p.ID] = &stored
	return nil
}

func (r *PostRepository) DeleteCascade(ctx context.Context, topicID, postID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok || p.TopicID != topicID {
		return errs.ErrNotFound
	}
	r.s.deletePostLocked(postID)
	return nil
}

// deletePostLocked removes a post and its comments; the caller holds mu.
func (s *Store) deletePostLocked(postID uint) {
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	delete(s.posts, postID)
}
