package topicapp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"forum/internal/adapters/memory"
	"forum/internal/core/auth"
	"forum/internal/core/errs"
	"forum/internal/core/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner    = auth.Context{UserID: "owner", Roles: []string{auth.RoleForumUser}}
	stranger = auth.Context{UserID: "stranger", Roles: []string{auth.RoleForumUser}}
	admin    = auth.Context{UserID: "admin", Roles: []string{auth.RoleAdmin, auth.RoleForumUser}}
)

func newService() (*TopicService, *memory.Store) {
	store := memory.New()
	return NewTopicService(store.Topics()), store
}

func TestCreateTopic(t *testing.T) {
	svc, _ := newService()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	svc.now = func() time.Time { return fixed }

	created, err := svc.CreateTopic(context.Background(), owner, "Hello1", "World desc")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, fixed.UTC(), created.CreatedAt)
	assert.Equal(t, time.UTC, created.CreatedAt.Location())

	stored, err := svc.TopicRepository.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", stored.UserID)
	assert.False(t, stored.IsDeleted)

	t.Run("Without the forum user role", func(t *testing.T) {
		_, err := svc.CreateTopic(context.Background(), auth.Context{UserID: "x"}, "Hello2", "World desc")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestUpdateTopic(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	created, err := svc.CreateTopic(ctx, owner, "Hello1", "World desc")
	require.NoError(t, err)

	tests := []struct {
		name    string
		actor   auth.Context
		id      uint
		wantErr error
	}{
		{"Stranger", stranger, created.ID, errs.ErrForbidden},
		{"Owner", owner, created.ID, nil},
		{"Admin", admin, created.ID, nil},
		{"Missing topic", admin, 999, errs.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := "Edited by " + tt.name
			got, err := svc.UpdateTopic(ctx, tt.actor, tt.id, desc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, desc, got.Description)
			assert.Equal(t, "Hello1", got.Title)
		})
	}
}

func TestDeleteTopic(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	created, err := svc.CreateTopic(ctx, owner, "Hello1", "World desc")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteTopic(ctx, owner, created.ID), errs.ErrForbidden)
	require.NoError(t, svc.DeleteTopic(ctx, admin, created.ID))

	_, err = svc.GetTopic(ctx, created.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteTopic(ctx, admin, created.ID), errs.ErrNotFound)
}

func TestListTopics(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 10; i++ {
		n := i
		svc.now = func() time.Time { return base.Add(time.Duration(n) * time.Minute) }
		_, err := svc.CreateTopic(ctx, owner, fmt.Sprintf("Topic%d", i), "Description")
		require.NoError(t, err)
	}

	page, err := svc.ListTopics(ctx, pagination.NewParams(2, 4))
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	assert.Equal(t, "Topic5", page.Items[0].Title)
	assert.Equal(t, 10, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasPrevious())
	assert.True(t, page.HasNext())

	t.Run("Past the end is an empty page, not an error", func(t *testing.T) {
		page, err := svc.ListTopics(ctx, pagination.NewParams(9, 4))
		require.NoError(t, err)
		assert.True(t, page.Empty())
	})
}
