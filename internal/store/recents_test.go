package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenDB_CreatesFileAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "recents.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM recent_projects`).Scan(&n))
	assert.Zero(t, n)
}

func TestMigrate_Rerunnable(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestRecents_TouchAndList(t *testing.T) {
	repo := NewSQLiteRecentsRepo(newTestDB(t))
	ctx := context.Background()

	first := RecentProject{UUID: uuid.New(), Path: "/jobs/a.m8", Name: "Job A",
		OpenedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)}
	second := RecentProject{UUID: uuid.New(), Path: "/jobs/b.m8", Name: "Job B",
		OpenedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Touch(ctx, first))
	require.NoError(t, repo.Touch(ctx, second))

	got, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Job B", got[0].Name) // newest first
	assert.Equal(t, first.UUID, got[1].UUID)
	assert.Equal(t, first.OpenedAt, got[1].OpenedAt)
}

func TestRecents_TouchUpdatesInPlace(t *testing.T) {
	repo := NewSQLiteRecentsRepo(newTestDB(t))
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Touch(ctx, RecentProject{UUID: id, Path: "/old.m8", Name: "Old"}))
	require.NoError(t, repo.Touch(ctx, RecentProject{UUID: id, Path: "/new.m8", Name: "New"}))

	got, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/new.m8", got[0].Path)
	assert.Equal(t, "New", got[0].Name)
}

func TestRecents_PrunesBeyondCap(t *testing.T) {
	repo := NewSQLiteRecentsRepo(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxRecents+5; i++ {
		e := RecentProject{
			UUID:     uuid.New(),
			Path:     fmt.Sprintf("/jobs/%d.m8", i),
			Name:     fmt.Sprintf("Job %d", i),
			OpenedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Touch(ctx, e))
	}

	got, err := repo.List(ctx, 100)
	require.NoError(t, err)
	require.Len(t, got, maxRecents)
	// The five oldest entries were evicted.
	assert.Equal(t, fmt.Sprintf("Job %d", maxRecents+4), got[0].Name)
	assert.Equal(t, "Job 5", got[len(got)-1].Name)
}

func TestRecents_ListLimit(t *testing.T) {
	repo := NewSQLiteRecentsRepo(newTestDB(t))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Touch(ctx, RecentProject{UUID: uuid.New(), Path: "/p.m8", Name: "P"}))
	}

	got, err := repo.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRecents_Remove(t *testing.T) {
	repo := NewSQLiteRecentsRepo(newTestDB(t))
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Touch(ctx, RecentProject{UUID: id, Path: "/p.m8", Name: "P"}))
	require.NoError(t, repo.Remove(ctx, id))
	require.NoError(t, repo.Remove(ctx, uuid.New())) // absent id is a no-op

	got, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
