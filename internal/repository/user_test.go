package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voblako/voblako/internal/repository"
	"github.com/voblako/voblako/internal/seed"
)

func TestUserCreateAndLookup(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	created, err := repo.Create("ivan@example.com", "hash-1")
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	byID, err := repo.ByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", byID.Email)
	assert.Equal(t, "hash-1", byID.PasswordHash)

	byEmail, err := repo.ByEmail("ivan@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestUserDuplicateEmailRejected(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	_, err := repo.Create("dup@example.com", "hash-1")
	require.NoError(t, err)

	_, err = repo.Create("dup@example.com", "hash-2")
	assert.Error(t, err)
}

func TestUserNotFound(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	_, err := repo.ByID(404)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.ByEmail("nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserResetKeepsSequence(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	first, err := repo.Create("first@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, repo.Reset())

	_, err = repo.ByID(first.ID)
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	// IDs are never handed out twice, even across a reset
	second, err := repo.Create("second@example.com", "hash")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestApplyUsersSeedsDemoAccountOnce(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))

	require.NoError(t, seed.ApplyUsers(repo))
	demo, err := repo.ByEmail(seed.DemoEmail)
	require.NoError(t, err)

	// Applying again keeps the existing account
	require.NoError(t, seed.ApplyUsers(repo))
	again, err := repo.ByEmail(seed.DemoEmail)
	require.NoError(t, err)
	assert.Equal(t, demo.ID, again.ID)
}
