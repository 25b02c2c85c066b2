package repository

import (
	"context"
	"database/sql"
	"etfsim/internal/util"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// OpenBarCache connects to the configured cache database and makes
// sure the bar table exists
func OpenBarCache(ctx context.Context, cfg util.CacheConfig) (*sql.DB, BarCacheRepository, error) {
	dbConn, err := sql.Open(cfg.Driver, cfg.Dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == "sqlite3" {
		// sqlite serializes writers anyway
		dbConn.SetMaxOpenConns(1)
	}
	if err := dbConn.PingContext(ctx); err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping %s: %w", cfg.Driver, err)
	}

	repo := NewBarCacheRepository(dbConn)
	if err := repo.EnsureSchema(ctx); err != nil {
		dbConn.Close()
		return nil, nil, err
	}

	return dbConn, repo, nil
}
