package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subtrackr/subtrackr/internal/utils"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func setupUserService() *ServiceImpl {
	return NewUserService(NewStubUserRepo(), &utils.MockClock{FixedNow: testNow})
}

func TestServiceImpl_CreateUser(t *testing.T) {
	t.Run("assigns an id and creation time", func(t *testing.T) {
		ctx := context.Background()
		service := setupUserService()

		created, err := service.CreateUser(ctx, User{Username: "alice", DisplayName: "Alice"})

		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.NoError(t, uuid.Validate(created.ID))
		assert.Equal(t, testNow, created.CreatedAt)

		stored, err := service.GetUser(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, created, stored)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		ctx := context.Background()
		service := setupUserService()

		_, err := service.CreateUser(ctx, User{Username: "alice"})
		require.NoError(t, err)

		_, err = service.CreateUser(ctx, User{Username: "alice"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already taken")
	})
}

func TestServiceImpl_GetCurrentUser(t *testing.T) {
	t.Run("resolves the user from the context", func(t *testing.T) {
		service := setupUserService()
		created, err := service.CreateUser(context.Background(), User{Username: "alice"})
		require.NoError(t, err)

		ctx := WithUser(context.Background(), created)

		current, err := service.GetCurrentUser(ctx)

		assert.NoError(t, err)
		assert.Equal(t, created.ID, current.ID)
	})

	t.Run("fails without a user in context", func(t *testing.T) {
		service := setupUserService()

		_, err := service.GetCurrentUser(context.Background())

		assert.ErrorIs(t, err, ErrNoUser)
	})
}

func TestServiceImpl_IsUsernameAvailable(t *testing.T) {
	ctx := context.Background()
	service := setupUserService()

	_, err := service.CreateUser(ctx, User{Username: "alice"})
	require.NoError(t, err)

	available, err := service.IsUsernameAvailable(ctx, "alice")
	assert.NoError(t, err)
	assert.False(t, available)

	available, err = service.IsUsernameAvailable(ctx, "bob")
	assert.NoError(t, err)
	assert.True(t, available)
}

func TestServiceImpl_DeleteUser(t *testing.T) {
	t.Run("deletes an existing user", func(t *testing.T) {
		ctx := context.Background()
		service := setupUserService()
		created, err := service.CreateUser(ctx, User{Username: "alice"})
		require.NoError(t, err)

		err = service.DeleteUser(ctx, created.ID)

		assert.NoError(t, err)
		_, err = service.GetUser(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNoUser)
	})

	t.Run("returns an error for an unknown id", func(t *testing.T) {
		service := setupUserService()

		err := service.DeleteUser(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrNoUser)
	})
}
