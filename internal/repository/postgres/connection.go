package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TableNames holds dynamically prefixed table names
type TableNames struct {
	LegalPads string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		LegalPads: fmt.Sprintf("%slegal_pads", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Transaction poolers (port 6543 on hosted Postgres) do not support prepared
// statements; when one is detected and the user has not set an explicit mode,
// QueryExecModeCacheDescribe is used instead. It keeps the extended protocol
// (required for JSONB encoding) while avoiding "prepared statement already
// exists" errors. An explicit default_query_exec_mode in the connection string
// takes precedence.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for pooler compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
