package file

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	models "legalpad/internal/domain/models/legalpad"
)

func newTestStore(t *testing.T) (*TreeStore, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewTreeStore(dir, logger)
	if err != nil {
		t.Fatalf("NewTreeStore() error = %v", err)
	}
	return store.(*TreeStore), dir
}

func TestLoadSeedsWhenMissing(t *testing.T) {
	store, _ := newTestStore(t)

	tree, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tree.Version != models.TreeVersion {
		t.Errorf("version = %d, want %d", tree.Version, models.TreeVersion)
	}
	if len(tree.Folders) != 1 {
		t.Fatalf("folder count = %d, want 1", len(tree.Folders))
	}
	if tree.Folders[0].Name != "General Notes" {
		t.Errorf("seed folder name = %q, want %q", tree.Folders[0].Name, "General Notes")
	}
	if got := tree.NoteCount(); got != 1 {
		t.Errorf("seed note count = %d, want 1", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tree := &models.Tree{
		Version: models.TreeVersion,
		Folders: []*models.Folder{
			{
				ID:   "f1",
				Name: "Evidence",
				Notes: []*models.Note{
					{
						ID:        "n1",
						Title:     "Hearsay exceptions",
						Content:   "<p>FRE 803</p>",
						UpdatedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
						Tags:      []string{"evidence", "hearsay"},
						Color:     models.ColorBlue,
					},
				},
				IsExpanded: true,
			},
			{ID: "f2", Name: "Empty", Notes: []*models.Note{}, IsExpanded: false},
		},
	}

	if err := store.Save(ctx, tree); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got.Version != tree.Version {
		t.Errorf("version = %d, want %d", got.Version, tree.Version)
	}
	if len(got.Folders) != 2 {
		t.Fatalf("folder count = %d, want 2", len(got.Folders))
	}
	folder := got.Folders[0]
	if folder.ID != "f1" || folder.Name != "Evidence" || !folder.IsExpanded {
		t.Errorf("folder mismatch: %+v", folder)
	}
	note := folder.Notes[0]
	if note.Title != "Hearsay exceptions" || note.Color != models.ColorBlue {
		t.Errorf("note mismatch: %+v", note)
	}
	if len(note.Tags) != 2 || note.Tags[0] != "evidence" {
		t.Errorf("tags mismatch: %v", note.Tags)
	}
	if !note.UpdatedAt.Equal(tree.Folders[0].Notes[0].UpdatedAt) {
		t.Errorf("updated_at mismatch: %v", note.UpdatedAt)
	}
	if got.Folders[1].IsExpanded {
		t.Errorf("collapsed folder came back expanded")
	}
}

func TestLoadSeedsOnCorruptFile(t *testing.T) {
	store, dir := newTestStore(t)

	path := filepath.Join(dir, treeFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tree, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tree.Folders) != 1 || tree.Folders[0].Name != "General Notes" {
		t.Errorf("corrupt file did not fall back to the seed tree")
	}
}

func TestLoadBackfillsVersionAndFolders(t *testing.T) {
	store, dir := newTestStore(t)

	path := filepath.Join(dir, treeFileName)
	if err := os.WriteFile(path, []byte(`{"folders": null}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tree, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tree.Version != models.TreeVersion {
		t.Errorf("version = %d, want backfilled %d", tree.Version, models.TreeVersion)
	}
	if tree.Folders == nil {
		t.Errorf("folders = nil, want empty slice")
	}
}

func TestSaveReplacesPriorSnapshot(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	first := &models.Tree{Version: models.TreeVersion, Folders: []*models.Folder{
		{ID: "f1", Name: "First", Notes: []*models.Note{}},
	}}
	second := &models.Tree{Version: models.TreeVersion, Folders: []*models.Folder{
		{ID: "f2", Name: "Second", Notes: []*models.Note{}},
	}}

	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save() first error = %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save() second error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Folders) != 1 || got.Folders[0].ID != "f2" {
		t.Errorf("snapshot not replaced, folders = %+v", got.Folders)
	}

	// No temp files should survive a successful save.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("data dir has %d entries, want just the snapshot", len(entries))
	}
}
