package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	models "legalpad/internal/domain/models/legalpad"
	"legalpad/internal/domain/repositories/legalpad"
)

// defaultPadID keys the single-pad row. The application is single-user; the
// pad id column exists so a multi-pad schema does not require a migration.
const defaultPadID = "default"

// TreeStore persists the pad as one JSONB row per pad id, upserted whole on
// every save.
type TreeStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewTreeStore creates a Postgres-backed tree store and ensures its table
// exists.
func NewTreeStore(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, logger *slog.Logger) (legalpad.TreeStore, error) {
	store := &TreeStore{
		pool:   pool,
		tables: tables,
		logger: logger,
	}
	if err := store.ensureTable(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *TreeStore) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			tree JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL
		)
	`, s.tables.LegalPads)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure legal pads table: %w", err)
	}
	return nil
}

// Load reads the persisted tree. A missing row or unparseable blob falls back
// to the seed tree; load never fails the caller.
func (s *TreeStore) Load(ctx context.Context) (*models.Tree, error) {
	query := fmt.Sprintf(`
		SELECT tree
		FROM %s
		WHERE id = $1
	`, s.tables.LegalPads)

	var data []byte
	err := s.pool.QueryRow(ctx, query, defaultPadID).Scan(&data)
	if err != nil {
		if err != pgx.ErrNoRows {
			s.logger.Warn("failed to read pad row, seeding default pad", "error", err)
		}
		return models.SeedTree(), nil
	}

	var tree models.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		s.logger.Warn("failed to parse pad row, seeding default pad", "error", err)
		return models.SeedTree(), nil
	}

	if tree.Version == 0 {
		tree.Version = models.TreeVersion
	}
	if tree.Folders == nil {
		tree.Folders = []*models.Folder{}
	}

	return &tree, nil
}

// Save upserts the complete tree snapshot for the default pad.
func (s *TreeStore) Save(ctx context.Context, tree *models.Tree) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("serialize pad: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, tree, created_at, updated_at)
		VALUES ($1, $2, now(), $3)
		ON CONFLICT (id) DO UPDATE SET
			tree = EXCLUDED.tree,
			updated_at = EXCLUDED.updated_at
	`, s.tables.LegalPads)

	if _, err := s.pool.Exec(ctx, query, defaultPadID, data, time.Now()); err != nil {
		return fmt.Errorf("upsert pad: %w", err)
	}

	return nil
}
