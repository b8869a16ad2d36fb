// Package memory implements the repositories in process, for local runs and tests.
package memory

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"forum/internal/core/comment"
	"forum/internal/core/post"
	"forum/internal/core/topic"
	"forum/internal/core/user"
	commentPort "forum/internal/ports/comment"
	postPort "forum/internal/ports/post"
	topicPort "forum/internal/ports/topic"
	userPort "forum/internal/ports/user"

	"github.com/gofrs/uuid"
)

// Store holds every forum table behind one mutex so cascades are atomic.
type Store struct {
	mu       sync.Mutex
	topics   map[uint]*topic.Topic
	posts    map[uint]*post.Post
	comments map[uint]*comment.Comment
	users    map[uuid.UUID]*user.User

	topicSeq   uint
	postSeq    uint
	commentSeq uint
}

func New() *Store {
	return &Store{
		topics:   make(map[uint]*topic.Topic),
		posts:    make(map[uint]*post.Post),
		comments: make(map[uint]*comment.Comment),
		users:    make(map[uuid.UUID]*user.User),
	}
}

// Ensure interfaces are met.
var _ topicPort.TopicRepository = (*TopicRepository)(nil)
var _ postPort.PostRepository = (*PostRepository)(nil)
var _ commentPort.CommentRepository = (*CommentRepository)(nil)
var _ userPort.UserRepository = (*UserRepository)(nil)

func (s *Store) Topics() *TopicRepository { return &TopicRepository{s: s} }

func (s *Store) Posts() *PostRepository { return &PostRepository{s: s} }

func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// page orders by creation time then id and cuts out [offset, offset+limit).
func page[T any](items []T, createdAt func(T) time.Time, id func(T) uint, offset, limit int) ([]T, int64) {
	slices.SortFunc(items, func(a, b T) int {
		if c := createdAt(a).Compare(createdAt(b)); c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})
	total := len(items)
	start := min(max(offset, 0), total)
	end := min(start+max(limit, 0), total)
	return items[start:end], int64(total)
}
