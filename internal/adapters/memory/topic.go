package memory

import (
	"context"
	"time"

	"forum/internal/core/errs"
	"forum/internal/core/topic"
)

type TopicRepository struct{ s *Store }

func (r *TopicRepository) Create(ctx context.Context, t *topic.Topic) (*topic.Topic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.topicSeq++
	t.ID = r.s.topicSeq
	stored := *t
	r.s.topics[t.ID] = &stored
	return t, nil
}

func (r *TopicRepository) FindByID(ctx context.Context, id uint) (*topic.Topic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.topics[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (r *TopicRepository) List(ctx context.Context, offset, limit int) ([]*topic.Topic, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]*topic.Topic, 0, len(r.s.topics))
	for _, t := range r.s.topics {
		c := *t
		all = append(all, &c)
	}
	items, total := page(all,
		func(t *topic.Topic) time.Time { return t.CreatedAt },
		func(t *topic.Topic) uint { return t.ID },
		offset, limit)
	return items, total, nil
}

func (r *TopicRepository) Update(ctx context.Context, t *topic.Topic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.topics[t.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *t
	r.s.topics[t.ID] = &stored
	return nil
}

func (r *TopicRepository) DeleteCascade(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.topics[id]; !ok {
		return errs.ErrNotFound
	}
	for postID, p := range r.s.posts {
		if p.TopicID == id {
			r.s.deletePostLocked(postID)
		}
	}
	delete(r.s.topics, id)
	return nil
}
