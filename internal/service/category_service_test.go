package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/mocks"
	"github.com/phrazzld/tasker-api/internal/service"
	"github.com/phrazzld/tasker-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := mocks.NewMemory()
	owner := seedUser(t, db, "alice")
	stranger := seedUser(t, db, "bob")
	svc := service.NewCategoryService(db.Categories(), discardLogger)

	work, err := svc.Create(ctx, owner, "  Work ")
	require.NoError(t, err)
	assert.Equal(t, "Work", work.Name)
	assert.Equal(t, owner, work.UserID)

	_, err = svc.Create(ctx, owner, "Home")
	require.NoError(t, err)
	_, err = svc.Create(ctx, stranger, "Bob's")
	require.NoError(t, err)

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, "   ")
		assert.ErrorIs(t, err, domain.ErrEmptyCategoryName)
	})

	t.Run("list is owner scoped and ordered", func(t *testing.T) {
		categories, err := svc.List(ctx, owner)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Work", categories[0].Name)
		assert.Equal(t, "Home", categories[1].Name)
	})

	t.Run("strangers see not found", func(t *testing.T) {
		_, err := svc.Get(ctx, stranger, work.ID)
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
		_, err = svc.Rename(ctx, stranger, work.ID, "Mine")
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, stranger, work.ID), store.ErrCategoryNotFound)

		got, err := svc.Get(ctx, owner, work.ID)
		require.NoError(t, err)
		assert.Equal(t, "Work", got.Name)
	})

	t.Run("rename", func(t *testing.T) {
		renamed, err := svc.Rename(ctx, owner, work.ID, "Office")
		require.NoError(t, err)
		assert.Equal(t, "Office", renamed.Name)

		_, err = svc.Rename(ctx, owner, work.ID, "")
		assert.ErrorIs(t, err, domain.ErrEmptyCategoryName)

		got, err := svc.Get(ctx, owner, work.ID)
		require.NoError(t, err)
		assert.Equal(t, "Office", got.Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, owner, work.ID))
		assert.ErrorIs(t, svc.Delete(ctx, owner, work.ID), store.ErrCategoryNotFound)
		_, err := svc.Get(ctx, owner, uuid.New())
		assert.True(t, store.IsNotFoundError(err))
	})
}

func TestCategoryService_StoreFailure(t *testing.T) {
	t.Parallel()

	db := mocks.NewMemory()
	owner := seedUser(t, db, "alice")
	dbErr := errors.New("connection reset")
	db.Err = dbErr
	svc := service.NewCategoryService(db.Categories(), discardLogger)

	_, err := svc.List(context.Background(), owner)
	assert.ErrorIs(t, err, dbErr)
	var serviceErr *service.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "category", serviceErr.Service)
	assert.Equal(t, "list", serviceErr.Op)
}
