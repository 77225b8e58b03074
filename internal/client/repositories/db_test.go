package repositories

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n))
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "state", "roomadmin.db")

	repos, err := InitDatabase(ctx, dsn, time.Minute)
	require.NoError(t, err)
	defer repos.Close()

	for _, table := range []string{"goose_db_version", "metadata", "query_cache"} {
		assert.True(t, tableExists(t, repos.DB, table), table)
	}

	require.NoError(t, repos.Metadata.Set(ctx, "username", "admin"))
	require.NoError(t, repos.Cache.Set(ctx, "rooms/detail/r1", map[string]string{"id": "r1"}))

	var got map[string]string
	hit, err := repos.Cache.Get(ctx, "rooms/detail/r1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "query_cache"))
}

func TestInitDatabase_MigrationError(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	boom := errors.New("boom")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	}

	_, err := InitDatabase(context.Background(), filepath.Join(t.TempDir(), "x.db"), 0)
	assert.ErrorIs(t, err, boom)
}
