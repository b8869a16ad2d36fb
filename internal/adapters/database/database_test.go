package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"forum/internal/core/comment"
	"forum/internal/core/errs"
	"forum/internal/core/post"
	"forum/internal/core/topic"
	"forum/internal/core/user"

	"github.com/glebarez/sqlite"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database and migrates the schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to connect to in-memory SQLite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection, otherwise every connection gets its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&user.User{}, &topic.Topic{}, &post.Post{}, &comment.Comment{})
	require.NoError(t, err, "Failed to migrate database schema")
	return db
}

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func createTestTopic(t *testing.T, repo *TopicRepositoryDatabase, n int) *topic.Topic {
	t.Helper()
	created, err := repo.Create(context.Background(), &topic.Topic{
		Title:       fmt.Sprintf("Topic%d", n),
		Description: fmt.Sprintf("Description %d", n),
		CreatedAt:   base.Add(time.Duration(n) * time.Minute),
		UserID:      "user-1",
	})
	require.NoError(t, err)
	return created
}

func createTestPost(t *testing.T, repo *PostRepositoryDatabase, topicID uint, n int) *post.Post {
	t.Helper()
	created, err := repo.Create(context.Background(), &post.Post{
		Title:     fmt.Sprintf("Post%d", n),
		Body:      "body",
		CreatedAt: base.Add(time.Duration(n) * time.Minute),
		UserID:    "user-1",
		TopicID:   topicID,
	})
	require.NoError(t, err)
	return created
}

func createTestComment(t *testing.T, repo *CommentRepositoryDatabase, postID uint, n int) *comment.Comment {
	t.Helper()
	created, err := repo.Create(context.Background(), &comment.Comment{
		Content:   fmt.Sprintf("Comment %d", n),
		CreatedAt: base.Add(time.Duration(n) * time.Minute),
		UserID:    "user-1",
		PostID:    postID,
	})
	require.NoError(t, err)
	return created
}

func TestTopicRepositoryDatabase_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicRepositoryDatabase(db)
	ctx := context.Background()

	created := createTestTopic(t, repo, 1)
	assert.NotZero(t, created.ID)

	t.Run("Find existing topic", func(t *testing.T) {
		got, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Topic1", got.Title)
		assert.Equal(t, "user-1", got.UserID)
		assert.False(t, got.IsDeleted)
	})

	t.Run("Find missing topic", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("Update only touches the description", func(t *testing.T) {
		changed := *created
		changed.Description = "Changed description"
		changed.Title = "ignored"
		require.NoError(t, repo.Update(ctx, &changed))

		got, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Changed description", got.Description)
		assert.Equal(t, "Topic1", got.Title)
	})

	t.Run("Update missing topic", func(t *testing.T) {
		err := repo.Update(ctx, &topic.Topic{ID: 9999, Description: "whatever"})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestTopicRepositoryDatabase_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicRepositoryDatabase(db)
	ctx := context.Background()

	// created out of order so the ORDER BY is what sorts them
	for _, n := range []int{3, 1, 4, 2, 5} {
		createTestTopic(t, repo, n)
	}

	items, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Topic1", items[0].Title)
	assert.Equal(t, "Topic2", items[1].Title)

	items, _, err = repo.List(ctx, 4, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Topic5", items[0].Title)
}

func TestTopicRepositoryDatabase_DeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	topics := NewTopicRepositoryDatabase(db)
	posts := NewPostRepositoryDatabase(db)
	comments := NewCommentRepositoryDatabase(db)
	ctx := context.Background()

	doomed := createTestTopic(t, topics, 1)
	kept := createTestTopic(t, topics, 2)

	var doomedPosts []*post.Post
	for i := 0; i < 3; i++ {
		p := createTestPost(t, posts, doomed.ID, i)
		doomedPosts = append(doomedPosts, p)
		for j := 0; j < 2; j++ {
			createTestComment(t, comments, p.ID, j)
		}
	}
	keptPost := createTestPost(t, posts, kept.ID, 10)
	keptComment := createTestComment(t, comments, keptPost.ID, 10)

	require.NoError(t, topics.DeleteCascade(ctx, doomed.ID))

	_, err := topics.FindByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	var postCount, commentCount int64
	require.NoError(t, db.Model(&post.Post{}).Where("topic_id = ?", doomed.ID).Count(&postCount).Error)
	assert.Zero(t, postCount)
	for _, p := range doomedPosts {
		require.NoError(t, db.Model(&comment.Comment{}).Where("post_id = ?", p.ID).Count(&commentCount).Error)
		assert.Zero(t, commentCount)
	}

	_, err = posts.FindByID(ctx, kept.ID, keptPost.ID)
	assert.NoError(t, err)
	_, err = comments.FindByID(ctx, keptPost.ID, keptComment.ID)
	assert.NoError(t, err)

	t.Run("Missing topic", func(t *testing.T) {
		assert.ErrorIs(t, topics.DeleteCascade(ctx, doomed.ID), errs.ErrNotFound)
	})
}

func TestPostRepositoryDatabase(t *testing.T) {
	db := setupTestDB(t)
	topics := NewTopicRepositoryDatabase(db)
	posts := NewPostRepositoryDatabase(db)
	comments := NewCommentRepositoryDatabase(db)
	ctx := context.Background()

	t1 := createTestTopic(t, topics, 1)
	t2 := createTestTopic(t, topics, 2)
	p := createTestPost(t, posts, t1.ID, 1)
	createTestPost(t, posts, t1.ID, 2)
	createTestPost(t, posts, t2.ID, 3)

	t.Run("Post is scoped to its topic", func(t *testing.T) {
		_, err := posts.FindByID(ctx, t1.ID, p.ID)
		assert.NoError(t, err)
		_, err = posts.FindByID(ctx, t2.ID, p.ID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("List by topic", func(t *testing.T) {
		items, total, err := posts.ListByTopic(ctx, t1.ID, 0, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, items, 2)
		assert.Equal(t, "Post1", items[0].Title)
	})

	t.Run("Update body", func(t *testing.T) {
		changed := *p
		changed.Body = "new body"
		require.NoError(t, posts.Update(ctx, &changed))

		got, err := posts.FindByID(ctx, t1.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "new body", got.Body)
	})

	t.Run("Delete cascades to comments", func(t *testing.T) {
		c := createTestComment(t, comments, p.ID, 1)

		require.NoError(t, posts.DeleteCascade(ctx, t1.ID, p.ID))

		_, err := posts.FindByID(ctx, t1.ID, p.ID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		_, err = comments.FindByID(ctx, p.ID, c.ID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("Delete under the wrong topic", func(t *testing.T) {
		other := createTestPost(t, posts, t2.ID, 4)
		assert.ErrorIs(t, posts.DeleteCascade(ctx, t1.ID, other.ID), errs.ErrNotFound)
	})
}

func TestCommentRepositoryDatabase(t *testing.T) {
	db := setupTestDB(t)
	topics := NewTopicRepositoryDatabase(db)
	posts := NewPostRepositoryDatabase(db)
	comments := NewCommentRepositoryDatabase(db)
	ctx := context.Background()

	tp := createTestTopic(t, topics, 1)
	p := createTestPost(t, posts, tp.ID, 1)
	for i := 1; i <= 7; i++ {
		createTestComment(t, comments, p.ID, i)
	}

	items, total, err := comments.ListByPost(ctx, p.ID, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Comment 6", items[0].Content)

	c := items[1]
	c.Content = "edited"
	require.NoError(t, comments.Update(ctx, c))
	got, err := comments.FindByID(ctx, p.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	require.NoError(t, comments.Delete(ctx, p.ID, c.ID))
	assert.ErrorIs(t, comments.Delete(ctx, p.ID, c.ID), errs.ErrNotFound)
}

func TestUserRepositoryDatabase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepositoryDatabase(db)
	ctx := context.Background()

	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "testuser",
		Email:    "test@example.com",
		Password: "hash",
	}
	u.SetRoles([]string{"ForumUser"})

	_, err := repo.Create(ctx, u)
	require.NoError(t, err)

	byName, err := repo.FindByUsername(ctx, "testuser")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, []string{"ForumUser"}, byName.RoleList())

	byID, err := repo.FindByID(ctx, u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "testuser", byID.Username)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	t.Run("Duplicate username", func(t *testing.T) {
		dup := *u
		dup.ID = uuid.Must(uuid.NewV4())
		_, err := repo.Create(ctx, &dup)
		assert.ErrorIs(t, err, errs.ErrUsernameTaken)
	})
}

func TestDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"sqlite", errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"), true},
		{"mysql", errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.idx_users_username'"), true},
		{"postgres", errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, duplicateKey(tt.err))
		})
	}
}
