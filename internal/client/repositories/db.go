// Package repositories opens the local SQLite database of the CLI, applies
// the embedded goose migrations and vends the repositories living in it.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/roomadmin/internal/client/migrations"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/querycache"
	"github.com/dmitrijs2005/roomadmin/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB       *sql.DB
	Metadata metadata.Repository
	Cache    querycache.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, ".")
}

// InitDatabase opens dsn with the pure-Go sqlite driver and migrates it.
// cacheTTL bounds the age of cached query results.
func InitDatabase(ctx context.Context, dsn string, cacheTTL time.Duration) (*Repositories, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; concurrent sync workers queue on the pool.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		Cache:    querycache.NewSQLiteRepository(db, cacheTTL),
	}, nil
}
