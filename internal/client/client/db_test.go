package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, tableExists(t, db, "goose_db_version"))
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestInitDatabase_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, metadata.NewSQLiteRepository(db).Set(ctx, "refreshToken", "r1"))
	require.NoError(t, db.Close())

	db, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := metadata.NewSQLiteRepository(db).Get(ctx, "refreshToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "r1", v)
}

func TestInitDatabase_CreatesMissingDirs(t *testing.T) {
	db, err := InitDatabase(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "app.db"))
	require.NoError(t, err)
	defer db.Close()
	assert.True(t, tableExists(t, db, "metadata"))
}
