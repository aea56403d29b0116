package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/client/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "."))
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "refreshToken", "r1"))

	v, ok, err := r.Get(ctx, "refreshToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "r1", v)
}

func TestGet_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSet_Upsert(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "old"))
	require.NoError(t, r.Set(ctx, "k", "new"))

	v, _, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestDelete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "v"))
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.Delete(ctx, "k"))

	_, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClosedDB(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())
	ctx := context.Background()

	_, _, err := r.Get(ctx, "k")
	require.Error(t, err)
	require.Error(t, r.Set(ctx, "k", "v"))
	require.Error(t, r.Delete(ctx, "k"))
}
