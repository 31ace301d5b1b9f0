package legalpad

import (
	"context"

	models "legalpad/internal/domain/models/legalpad"
)

// TreeStore durably records the entire folder/note tree so it survives
// restarts. Save always writes the complete tree snapshot; there are no
// incremental diffs, so a crash between mutations never leaves partial state.
type TreeStore interface {
	// Load reads previously persisted state. Implementations return the seed
	// tree when no prior state exists or it fails to parse - a load failure is
	// never fatal.
	Load(ctx context.Context) (*models.Tree, error)

	// Save serializes the full tree and writes it, replacing any prior value.
	Save(ctx context.Context, tree *models.Tree) error
}
