package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	models "legalpad/internal/domain/models/legalpad"
	"legalpad/internal/domain/repositories/legalpad"
)

const treeFileName = "legalpad.json"

// TreeStore persists the pad as a single JSON snapshot on disk. Writes go
// through a temp file and rename so a crash mid-write never corrupts the
// previous snapshot.
type TreeStore struct {
	dataDir string
	logger  *slog.Logger
}

// NewTreeStore creates a file-backed tree store rooted at dataDir.
// The directory is created if it does not exist.
func NewTreeStore(dataDir string, logger *slog.Logger) (legalpad.TreeStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &TreeStore{
		dataDir: dataDir,
		logger:  logger,
	}, nil
}

// Load reads the persisted tree. A missing file or unparseable content falls
// back to the seed tree; load never fails the caller.
func (s *TreeStore) Load(ctx context.Context) (*models.Tree, error) {
	path := filepath.Join(s.dataDir, treeFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read pad file, seeding default pad",
				"path", path,
				"error", err,
			)
		}
		return models.SeedTree(), nil
	}

	var tree models.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		s.logger.Warn("failed to parse pad file, seeding default pad",
			"path", path,
			"error", err,
		)
		return models.SeedTree(), nil
	}

	// Pre-versioned snapshots are accepted as-is.
	if tree.Version == 0 {
		tree.Version = models.TreeVersion
	}
	if tree.Folders == nil {
		tree.Folders = []*models.Folder{}
	}

	return &tree, nil
}

// Save writes the complete tree snapshot, replacing any prior value.
func (s *TreeStore) Save(ctx context.Context, tree *models.Tree) error {
	path := filepath.Join(s.dataDir, treeFileName)

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize pad: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, treeFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write pad file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close pad file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace pad file: %w", err)
	}

	return nil
}
