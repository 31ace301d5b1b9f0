package legalpad

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"legalpad/internal/config"
	"legalpad/internal/domain"
	models "legalpad/internal/domain/models/legalpad"
	padRepo "legalpad/internal/domain/repositories/legalpad"
)

// Direction names a neighbor-swap direction for ReorderFolders.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// NoteField names a single mutable note field for UpdateNoteField.
type NoteField string

const (
	FieldTitle   NoteField = "title"
	FieldContent NoteField = "content"
	FieldTags    NoteField = "tags"
	FieldColor   NoteField = "color"
)

// State is a point-in-time copy of the pad handed to readers. Readers never
// see the live tree, so no mutation can race a render.
type State struct {
	Tree           *models.Tree `json:"tree"`
	ActiveFolderID string       `json:"active_folder_id"`
	ActiveNoteID   string       `json:"active_note_id"`
}

// Pad owns the folder/note tree and is its only write surface. Every mutation
// runs to completion under the lock and is followed by a full snapshot save;
// storage is a one-way mirror of the in-memory tree and is never read back
// between mutations.
type Pad struct {
	mu    sync.Mutex
	store padRepo.TreeStore
	tree  *models.Tree

	// Session selection, not persisted.
	activeFolderID string
	activeNoteID   string

	logger *slog.Logger
}

// NewPad loads the persisted tree (or the seed tree) and returns a pad ready
// for mutations.
func NewPad(ctx context.Context, store padRepo.TreeStore, logger *slog.Logger) (*Pad, error) {
	tree, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pad: %w", err)
	}

	return &Pad{
		store:  store,
		tree:   tree,
		logger: logger,
	}, nil
}

// State returns a deep copy of the tree plus the current selection.
func (p *Pad) State() *State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return &State{
		Tree:           cloneTree(p.tree),
		ActiveFolderID: p.activeFolderID,
		ActiveNoteID:   p.activeNoteID,
	}
}

// Select updates the active folder/note selection. Dangling ids clear the
// corresponding selection rather than failing.
func (p *Pad) Select(folderID, noteID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	folder, note := p.tree.Selection(folderID, noteID)
	if folder == nil {
		p.activeFolderID = ""
		p.activeNoteID = ""
		return
	}
	p.activeFolderID = folder.ID
	if note == nil {
		p.activeNoteID = ""
		return
	}
	p.activeNoteID = note.ID
}

// CreateFolder appends a new expanded folder with an empty note sequence and
// makes it the active folder. An empty name aborts with no state change.
func (p *Pad) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name cannot be empty", domain.ErrValidation)
	}
	if len(name) > config.MaxFolderNameLength {
		return nil, fmt.Errorf("%w: folder name exceeds %d characters", domain.ErrValidation, config.MaxFolderNameLength)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	folder := &models.Folder{
		ID:         uuid.NewString(),
		Name:       name,
		Notes:      []*models.Note{},
		IsExpanded: true,
	}
	p.tree.Folders = append(p.tree.Folders, folder)
	p.activeFolderID = folder.ID
	p.activeNoteID = ""

	p.persist(ctx)
	return cloneFolder(folder), nil
}

// RenameFolder replaces a folder's display name.
func (p *Pad) RenameFolder(ctx context.Context, folderID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: folder name cannot be empty", domain.ErrValidation)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	folder := p.tree.FindFolder(folderID)
	if folder == nil {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderID)
	}

	folder.Name = name
	p.persist(ctx)
	return nil
}

// DeleteFolder removes the folder and every note it owns. If the removed
// folder was active, the active folder and note selections are cleared.
func (p *Pad) DeleteFolder(ctx context.Context, folderID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.tree.FolderIndex(folderID)
	if idx < 0 {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderID)
	}

	p.tree.Folders = append(p.tree.Folders[:idx], p.tree.Folders[idx+1:]...)
	if p.activeFolderID == folderID {
		p.activeFolderID = ""
		p.activeNoteID = ""
	}

	p.persist(ctx)
	return nil
}

// CreateNote prepends a blank note to the folder's sequence and makes it the
// active note.
func (p *Pad) CreateNote(ctx context.Context, folderID string) (*models.Note, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	folder := p.tree.FindFolder(folderID)
	if folder == nil {
		return nil, fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderID)
	}

	note := &models.Note{
		ID:        uuid.NewString(),
		Title:     "",
		Content:   "",
		UpdatedAt: time.Now(),
		Tags:      []string{},
		Color:     models.DefaultColor,
	}
	folder.PrependNote(note)
	p.activeFolderID = folder.ID
	p.activeNoteID = note.ID

	p.persist(ctx)
	return cloneNote(note), nil
}

// DeleteNote removes the note from the named folder's sequence. If it was the
// active note, the active note selection is cleared.
func (p *Pad) DeleteNote(ctx context.Context, noteID, folderID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	folder := p.tree.FindFolder(folderID)
	if folder == nil {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderID)
	}
	if folder.RemoveNote(noteID) == nil {
		return fmt.Errorf("%w: note %s", domain.ErrNotFound, noteID)
	}

	if p.activeNoteID == noteID {
		p.activeNoteID = ""
	}

	p.persist(ctx)
	return nil
}

// UpdateNoteField replaces exactly one field of the note and refreshes
// updated_at regardless of which field changed.
func (p *Pad) UpdateNoteField(ctx context.Context, noteID, folderID string, field NoteField, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	folder := p.tree.FindFolder(folderID)
	if folder == nil {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderID)
	}
	note := folder.FindNote(noteID)
	if note == nil {
		return fmt.Errorf("%w: note %s", domain.ErrNotFound, noteID)
	}

	switch field {
	case FieldTitle:
		title, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: title must be a string", domain.ErrValidation)
		}
		if len(title) > config.MaxNoteTitleLength {
			return fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, config.MaxNoteTitleLength)
		}
		note.Title = title
	case FieldContent:
		content, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: content must be a string", domain.ErrValidation)
		}
		note.Content = content
	case FieldTags:
		tags, err := coerceTags(value)
		if err != nil {
			return err
		}
		note.Tags = models.NormalizeTags(tags)
	case FieldColor:
		raw, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: color must be a string", domain.ErrValidation)
		}
		color := models.NoteColor(raw)
		if !color.Valid() {
			return fmt.Errorf("%w: unknown color %q", domain.ErrValidation, raw)
		}
		note.Color = color
	default:
		return fmt.Errorf("%w: unknown field %q", domain.ErrValidation, field)
	}

	note.UpdatedAt = time.Now()
	p.persist(ctx)
	return nil
}

// ReorderFolders swaps the folder at index with its immediate neighbor in the
// given direction. A swap past the boundary is a silent no-op.
func (p *Pad) ReorderFolders(ctx context.Context, index int, direction Direction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.tree.Folders) {
		return fmt.Errorf("%w: folder index %d out of range", domain.ErrValidation, index)
	}

	var neighbor int
	switch direction {
	case DirectionUp:
		neighbor = index - 1
	case DirectionDown:
		neighbor = index + 1
	default:
		return fmt.Errorf("%w: unknown direction %q", domain.ErrValidation, direction)
	}

	if neighbor < 0 || neighbor >= len(p.tree.Folders) {
		return nil
	}

	folders := p.tree.Folders
	folders[index], folders[neighbor] = folders[neighbor], folders[index]

	p.persist(ctx)
	return nil
}

// ToggleFolderExpanded flips the folder's expansion flag. Notes are untouched.
func (p *Pad) ToggleFolderExpanded(ctx context.Context, folderID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	folder := p.tree.FindFolder(folderID)
	if folder == nil {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderID)
	}

	folder.IsExpanded = !folder.IsExpanded
	p.persist(ctx)
	return nil
}

// MoveNote transfers ownership of the note from the source folder to the
// target folder, prepending it to the target's sequence. Same-folder moves and
// notes absent from the source are silent no-ops. If the moved note was the
// active note, the active folder follows it to the target.
func (p *Pad) MoveNote(ctx context.Context, noteID, sourceFolderID, targetFolderID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if sourceFolderID == targetFolderID {
		return nil
	}

	target := p.tree.FindFolder(targetFolderID)
	if target == nil {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, targetFolderID)
	}

	source := p.tree.FindFolder(sourceFolderID)
	if source == nil {
		return nil
	}
	note := source.RemoveNote(noteID)
	if note == nil {
		return nil
	}

	target.PrependNote(note)
	if p.activeNoteID == noteID {
		p.activeFolderID = target.ID
	}

	p.persist(ctx)
	return nil
}

// ReorderFolderPosition removes the folder at sourceIndex and re-inserts it at
// targetIndex in the already-shortened sequence. The relative order of all
// other folders is preserved. Equal indices are a no-op.
func (p *Pad) ReorderFolderPosition(ctx context.Context, sourceIndex, targetIndex int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.tree.Folders)
	if sourceIndex < 0 || sourceIndex >= n {
		return fmt.Errorf("%w: source index %d out of range", domain.ErrValidation, sourceIndex)
	}
	if targetIndex < 0 || targetIndex >= n {
		return fmt.Errorf("%w: target index %d out of range", domain.ErrValidation, targetIndex)
	}
	if sourceIndex == targetIndex {
		return nil
	}

	folders := p.tree.Folders
	moved := folders[sourceIndex]
	folders = append(folders[:sourceIndex], folders[sourceIndex+1:]...)
	folders = append(folders[:targetIndex], append([]*models.Folder{moved}, folders[targetIndex:]...)...)
	p.tree.Folders = folders

	p.persist(ctx)
	return nil
}

// MergeFolder appends every note of the source folder to the end of the
// folder whose name exactly matches targetName, then removes the source
// folder. A missing or ambiguous-by-absence target aborts with the tree
// unchanged. If the active folder was the source, the target becomes active.
func (p *Pad) MergeFolder(ctx context.Context, sourceID, targetName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sourceIdx := p.tree.FolderIndex(sourceID)
	if sourceIdx < 0 {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, sourceID)
	}
	source := p.tree.Folders[sourceIdx]

	target := p.tree.FindFolderByName(targetName, sourceID)
	if target == nil {
		return fmt.Errorf("%w: no folder named %q to merge into", domain.ErrNotFound, targetName)
	}

	target.Notes = append(target.Notes, source.Notes...)
	p.tree.Folders = append(p.tree.Folders[:sourceIdx], p.tree.Folders[sourceIdx+1:]...)

	if p.activeFolderID == sourceID {
		p.activeFolderID = target.ID
	}

	p.persist(ctx)
	return nil
}

// persist mirrors the in-memory tree to storage. A save failure is logged and
// swallowed; the in-memory tree remains authoritative for the session.
// Callers must hold p.mu.
func (p *Pad) persist(ctx context.Context) {
	if err := p.store.Save(ctx, p.tree); err != nil {
		p.logger.Warn("failed to persist pad", "error", err)
	}
}

func coerceTags(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			tag, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: tags must be strings", domain.ErrValidation)
			}
			tags = append(tags, tag)
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("%w: tags must be a string list", domain.ErrValidation)
	}
}

func cloneTree(t *models.Tree) *models.Tree {
	clone := &models.Tree{
		Version: t.Version,
		Folders: make([]*models.Folder, len(t.Folders)),
	}
	for i, f := range t.Folders {
		clone.Folders[i] = cloneFolder(f)
	}
	return clone
}

func cloneFolder(f *models.Folder) *models.Folder {
	clone := &models.Folder{
		ID:         f.ID,
		Name:       f.Name,
		Notes:      make([]*models.Note, len(f.Notes)),
		IsExpanded: f.IsExpanded,
	}
	for i, n := range f.Notes {
		clone.Notes[i] = cloneNote(n)
	}
	return clone
}

func cloneNote(n *models.Note) *models.Note {
	clone := *n
	clone.Tags = append([]string(nil), n.Tags...)
	return &clone
}
