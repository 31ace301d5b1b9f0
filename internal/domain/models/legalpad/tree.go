package legalpad

import (
	"time"

	"github.com/google/uuid"
)

// TreeVersion is the current serialization envelope version. The original
// format carried no version field; the envelope adds one so future shape
// changes can migrate instead of silently losing data.
const TreeVersion = 1

// Tree is the ordered folder sequence that makes up a legal pad. Folder order
// and per-folder note order are the sole determinants of display order.
type Tree struct {
	Version int       `json:"version"`
	Folders []*Folder `json:"folders"`
}

// FindFolder returns the folder with the given ID, or nil if absent.
func (t *Tree) FindFolder(folderID string) *Folder {
	for _, f := range t.Folders {
		if f.ID == folderID {
			return f
		}
	}
	return nil
}

// FolderIndex returns the position of the folder with the given ID, or -1.
func (t *Tree) FolderIndex(folderID string) int {
	for i, f := range t.Folders {
		if f.ID == folderID {
			return i
		}
	}
	return -1
}

// FindFolderByName returns the first folder with an exact name match,
// excluding the folder with excludeID. Returns nil when nothing matches.
func (t *Tree) FindFolderByName(name, excludeID string) *Folder {
	for _, f := range t.Folders {
		if f.ID != excludeID && f.Name == name {
			return f
		}
	}
	return nil
}

// NoteCount returns the total number of notes across all folders.
func (t *Tree) NoteCount() int {
	count := 0
	for _, f := range t.Folders {
		count += len(f.Notes)
	}
	return count
}

// Selection resolves an active folder/note id pair against the tree.
// Dangling ids resolve to nil rather than an error.
func (t *Tree) Selection(folderID, noteID string) (*Folder, *Note) {
	folder := t.FindFolder(folderID)
	if folder == nil {
		return nil, nil
	}
	return folder, folder.FindNote(noteID)
}

// SeedTree returns the default single-folder, single-note pad used when no
// persisted state exists or the persisted state cannot be parsed.
func SeedTree() *Tree {
	return &Tree{
		Version: TreeVersion,
		Folders: []*Folder{
			{
				ID:   uuid.NewString(),
				Name: "General Notes",
				Notes: []*Note{
					{
						ID:        uuid.NewString(),
						Title:     "Welcome to LegalPad",
						Content:   "Use folders to organize your outlines, case briefs, and bar-prep notes.",
						UpdatedAt: time.Now(),
						Tags:      []string{},
						Color:     DefaultColor,
					},
				},
				IsExpanded: true,
			},
		},
	}
}
