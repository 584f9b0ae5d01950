package repository_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voblako/voblako/internal/db"
	"github.com/voblako/voblako/internal/model"
	"github.com/voblako/voblako/internal/repository"
	"github.com/voblako/voblako/internal/seed"
	"github.com/voblako/voblako/internal/storage"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func newSeededRepo(t *testing.T) repository.FileRepository {
	t.Helper()

	repo := repository.NewFileRepository(newTestDB(t))
	require.NoError(t, seed.ApplyFiles(repo, storage.NewMemoryStorage()))
	return repo
}

func intPtr(v int) *int { return &v }

func TestSeedingIsIdempotent(t *testing.T) {
	repo := newSeededRepo(t)

	count, err := repo.Count()
	require.NoError(t, err)
	require.Equal(t, len(seed.Files), count)

	// A second apply over a non-empty store must be a no-op
	require.NoError(t, seed.ApplyFiles(repo, storage.NewMemoryStorage()))

	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, len(seed.Files), count)
}

func TestListDefaultsAndClamping(t *testing.T) {
	repo := newSeededRepo(t)

	t.Run("nil limit falls back to default", func(t *testing.T) {
		files, err := repo.List(model.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, files, repository.DefaultListLimit)
	})

	t.Run("zero limit yields an empty page", func(t *testing.T) {
		files, err := repo.List(model.ListOptions{Limit: intPtr(0)})
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("limit above ceiling is clamped", func(t *testing.T) {
		files, err := repo.List(model.ListOptions{Limit: intPtr(1000)})
		require.NoError(t, err)
		assert.Len(t, files, len(seed.Files))
	})

	t.Run("negative limit is treated as zero", func(t *testing.T) {
		files, err := repo.List(model.ListOptions{Limit: intPtr(-5)})
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("offset pages through without overlap", func(t *testing.T) {
		first, err := repo.List(model.ListOptions{Limit: intPtr(10)})
		require.NoError(t, err)
		second, err := repo.List(model.ListOptions{Limit: intPtr(10), Offset: intPtr(10)})
		require.NoError(t, err)

		require.Len(t, first, 10)
		require.Len(t, second, 10)
		assert.NotEqual(t, first[0].UUID, second[0].UUID)

		seen := map[string]bool{}
		for _, meta := range append(first, second...) {
			assert.False(t, seen[meta.UUID], "uuid %s returned twice", meta.UUID)
			seen[meta.UUID] = true
		}
	})

	t.Run("offset beyond the end is empty, not an error", func(t *testing.T) {
		files, err := repo.List(model.ListOptions{Offset: intPtr(10000)})
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestListOrderedByRecency(t *testing.T) {
	repo := newSeededRepo(t)

	files, err := repo.List(model.ListOptions{Limit: intPtr(repository.MaxListLimit)})
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for i := 1; i < len(files); i++ {
		assert.False(t, files[i].UpdateTime.After(files[i-1].UpdateTime),
			"listing not ordered by update_time at position %d", i)
	}

	// Seed order doubles as recency order
	assert.Equal(t, seed.Files[0].UUID, files[0].UUID)
}

func TestSoftDeleteVisibility(t *testing.T) {
	repo := newSeededRepo(t)
	target := seed.FileIDs["roadmap"]

	deleted, err := repo.SoftDelete(target)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	require.NotNil(t, deleted.DeletedTime)

	// Excluded from the default listing
	files, err := repo.List(model.ListOptions{Limit: intPtr(repository.MaxListLimit)})
	require.NoError(t, err)
	for _, meta := range files {
		assert.NotEqual(t, target, meta.UUID)
	}
	assert.Len(t, files, len(seed.Files)-1)

	// Still present with WithDeleted
	files, err = repo.List(model.ListOptions{Limit: intPtr(repository.MaxListLimit), WithDeleted: true})
	require.NoError(t, err)
	assert.Len(t, files, len(seed.Files))

	// And still reachable directly
	meta, err := repo.ByID(target)
	require.NoError(t, err)
	assert.True(t, meta.IsDeleted)
}

func TestRenameBumpsUpdateTime(t *testing.T) {
	repo := newSeededRepo(t)
	target := seed.FileIDs["report-q1"]

	before, err := repo.ByID(target)
	require.NoError(t, err)

	renamed, err := repo.Rename(target, "Отчет Q1 (финальный).pdf")
	require.NoError(t, err)

	assert.Equal(t, "Отчет Q1 (финальный).pdf", renamed.Filename)
	assert.Equal(t, before.ContentType, renamed.ContentType)
	assert.Equal(t, before.Size, renamed.Size)
	assert.Equal(t, before.UploadTime, renamed.UploadTime)
	assert.True(t, renamed.UpdateTime.After(before.UpdateTime))
}

func TestReplaceRevivesSoftDeletedFile(t *testing.T) {
	repo := newSeededRepo(t)
	target := seed.FileIDs["estimate"]

	_, err := repo.SoftDelete(target)
	require.NoError(t, err)

	replaced, err := repo.Replace(target, "Смета v2.xlsx", "application/vnd.ms-excel", 2048)
	require.NoError(t, err)

	assert.Equal(t, "Смета v2.xlsx", replaced.Filename)
	assert.Equal(t, "application/vnd.ms-excel", replaced.ContentType)
	assert.Equal(t, int64(2048), replaced.Size)
	assert.False(t, replaced.IsDeleted)
	assert.Nil(t, replaced.DeletedTime)
}

func TestMutationsOnUnknownID(t *testing.T) {
	repo := newSeededRepo(t)

	_, err := repo.ByID("no-such-uuid")
	assert.ErrorIs(t, err, repository.ErrFileNotFound)

	_, err = repo.Rename("no-such-uuid", "x")
	assert.ErrorIs(t, err, repository.ErrFileNotFound)

	_, err = repo.Replace("no-such-uuid", "x", "text/plain", 1)
	assert.ErrorIs(t, err, repository.ErrFileNotFound)

	_, err = repo.SoftDelete("no-such-uuid")
	assert.ErrorIs(t, err, repository.ErrFileNotFound)
}

func TestResetEmptiesStore(t *testing.T) {
	repo := newSeededRepo(t)

	require.NoError(t, repo.Reset())

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	// Reseeding after a reset starts a fresh fixture
	require.NoError(t, seed.ApplyFiles(repo, storage.NewMemoryStorage()))
	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, len(seed.Files), count)
}

func TestCreateRoundTrip(t *testing.T) {
	repo := repository.NewFileRepository(newTestDB(t))

	now := time.Now().UTC().Truncate(time.Second)
	meta := &model.FileMetadata{
		UUID:        "22222222-bbbb-4b2b-9c22-000000000001",
		OwnerID:     seed.DefaultOwnerID,
		Filename:    "заметка.txt",
		ContentType: "text/plain",
		Size:        42,
		UploadTime:  now,
		UpdateTime:  now,
	}
	require.NoError(t, repo.Create(meta))

	got, err := repo.ByID(meta.UUID)
	require.NoError(t, err)
	assert.Equal(t, meta.Filename, got.Filename)
	assert.Equal(t, meta.Size, got.Size)
	assert.False(t, got.IsDeleted)
	assert.Nil(t, got.DeletedTime)
}
