package postapp

import (
	"context"
	"fmt"
	"testing"

	"forum/internal/adapters/memory"
	"forum/internal/core/auth"
	"forum/internal/core/comment"
	"forum/internal/core/errs"
	"forum/internal/core/pagination"
	"forum/internal/core/topic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner    = auth.Context{UserID: "owner", Roles: []string{auth.RoleForumUser}}
	stranger = auth.Context{UserID: "stranger", Roles: []string{auth.RoleForumUser}}
	admin    = auth.Context{UserID: "admin", Roles: []string{auth.RoleAdmin, auth.RoleForumUser}}
)

func setup(t *testing.T) (*PostService, *memory.Store, uint) {
	t.Helper()
	store := memory.New()
	tp, err := store.Topics().Create(context.Background(), &topic.Topic{Title: "Topic", Description: "Description", UserID: "owner"})
	require.NoError(t, err)
	return NewPostService(store.Posts(), store.Topics()), store, tp.ID
}

func TestCreatePost(t *testing.T) {
	svc, _, topicID := setup(t)
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, owner, topicID, "Title", "Body")
	require.NoError(t, err)
	assert.Equal(t, "Title", p.Title)

	got, err := svc.GetPost(ctx, topicID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Body", got.Body)

	t.Run("Missing topic", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, owner, 999, "Title", "Body")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("Missing role wins over missing topic", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, auth.Context{UserID: "x"}, 999, "Title", "Body")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("Without the forum user role", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, auth.Context{UserID: "x"}, topicID, "Title", "Body")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestListPosts(t *testing.T) {
	svc, store, topicID := setup(t)
	ctx := context.Background()

	_, err := svc.ListPosts(ctx, topicID, pagination.NewParams(1, 5))
	assert.ErrorIs(t, err, errs.ErrNotFound, "empty first page")

	for i := 1; i <= 6; i++ {
		_, err := svc.CreatePost(ctx, owner, topicID, fmt.Sprintf("Post%d", i), "Body")
		require.NoError(t, err)
	}
	other, err := store.Topics().Create(ctx, &topic.Topic{Title: "Other", Description: "Other topic"})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, owner, other.ID, "Elsewhere", "Body")
	require.NoError(t, err)

	page, err := svc.ListPosts(ctx, topicID, pagination.NewParams(2, 5))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Post6", page.Items[0].Title)
	assert.Equal(t, 6, page.TotalCount)

	_, err = svc.ListPosts(ctx, topicID, pagination.NewParams(3, 5))
	assert.ErrorIs(t, err, errs.ErrNotFound, "page past the end")

	_, err = svc.ListPosts(ctx, 999, pagination.NewParams(1, 5))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateAndDeletePost(t *testing.T) {
	svc, store, topicID := setup(t)
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, owner, topicID, "Title", "Body")
	require.NoError(t, err)

	_, err = svc.UpdatePost(ctx, stranger, topicID, p.ID, "hijacked")
	assert.ErrorIs(t, err, errs.ErrForbidden)

	updated, err := svc.UpdatePost(ctx, owner, topicID, p.ID, "new body")
	require.NoError(t, err)
	assert.Equal(t, "new body", updated.Body)
	assert.Equal(t, "Title", updated.Title)

	updated, err = svc.UpdatePost(ctx, admin, topicID, p.ID, "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Body)

	_, err = store.Comments().Create(ctx, &comment.Comment{Content: "c", PostID: p.ID, UserID: "stranger"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(ctx, stranger, topicID, p.ID), errs.ErrForbidden)
	require.NoError(t, svc.DeletePost(ctx, owner, topicID, p.ID))

	_, err = svc.GetPost(ctx, topicID, p.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, total, err := store.Comments().ListByPost(ctx, p.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}
