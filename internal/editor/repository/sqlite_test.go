package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "editor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background()))

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func TestRepository_SaveAndLatest(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Save(ctx, "bldg-1", []byte(`{"v":1}`))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := repo.Save(ctx, "bldg-1", []byte(`{"v":2}`))
	require.NoError(t, err)

	latest, err := repo.Latest(ctx, "bldg-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, `{"v":2}`, string(latest.Payload))
	assert.True(t, latest.CreatedAt.Equal(second.CreatedAt))
}

func TestRepository_LatestMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Latest(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListIsScopedAndOrdered(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	a, err := repo.Save(ctx, "bldg-1", []byte(`{}`))
	require.NoError(t, err)
	_, err = repo.Save(ctx, "bldg-2", []byte(`{}`))
	require.NoError(t, err)
	b, err := repo.Save(ctx, "bldg-1", []byte(`{}`))
	require.NoError(t, err)

	list, err := repo.List(ctx, "bldg-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)

	empty, err := repo.List(ctx, "bldg-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_SaveRequiresBuilding(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Save(context.Background(), "", []byte(`{}`))
	assert.Error(t, err)
}

func TestRepository_InitIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Init(context.Background()))
	require.NoError(t, repo.Ping(context.Background()))
}
