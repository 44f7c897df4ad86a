// README: Postgres connection pool initialization using pgxpool.
package infra

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDB opens a pool and checks connectivity.
func NewDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

// NewTestDB connects to dsn and applies the repository migrations.
func NewTestDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	db, err := NewDB(ctx, dsn)
	if err != nil {
		return nil, err
	}
	root, err := RepoRoot()
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := Migrate(ctx, db, filepath.Join(root, "migrations")); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
