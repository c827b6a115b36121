package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subtrackr/subtrackr/internal/test_utils"
)

func setupTestRepo(t *testing.T) (context.Context, Repo) {
	db := test_utils.SetupTestDB(t)
	return context.Background(), NewUserRepo(db)
}

func testUser(id, username string) User {
	return User{
		ID:          id,
		Username:    username,
		DisplayName: "Test User",
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepoImpl_CreateAndGetUser(t *testing.T) {
	// given
	ctx, repo := setupTestRepo(t)
	u := testUser("user-1", "alice")

	// when
	err := repo.CreateUser(ctx, u)
	require.NoError(t, err)

	// then
	stored, err := repo.GetUser(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, u, stored)
}

func TestRepoImpl_GetUser_NotFound(t *testing.T) {
	ctx, repo := setupTestRepo(t)

	_, err := repo.GetUser(ctx, "missing")

	assert.ErrorIs(t, err, ErrNoUser)
}

func TestRepoImpl_GetAllUsers_OrdersByUsername(t *testing.T) {
	// given
	ctx, repo := setupTestRepo(t)
	require.NoError(t, repo.CreateUser(ctx, testUser("user-1", "bob")))
	require.NoError(t, repo.CreateUser(ctx, testUser("user-2", "alice")))

	// when
	users, err := repo.GetAllUsers(ctx)

	// then
	assert.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestRepoImpl_IsUsernameTaken(t *testing.T) {
	ctx, repo := setupTestRepo(t)
	require.NoError(t, repo.CreateUser(ctx, testUser("user-1", "alice")))

	taken, err := repo.IsUsernameTaken(ctx, "alice")
	assert.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.IsUsernameTaken(ctx, "bob")
	assert.NoError(t, err)
	assert.False(t, taken)
}

func TestRepoImpl_DeleteUser(t *testing.T) {
	// given
	ctx, repo := setupTestRepo(t)
	require.NoError(t, repo.CreateUser(ctx, testUser("user-1", "alice")))

	// when
	deleted, err := repo.DeleteUser(ctx, "user-1")

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetUser(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestRepoImpl_DeleteUser_UnknownId(t *testing.T) {
	ctx, repo := setupTestRepo(t)

	deleted, err := repo.DeleteUser(ctx, "missing")

	assert.NoError(t, err)
	assert.False(t, deleted)
}
