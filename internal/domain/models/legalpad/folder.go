package legalpad

type Folder struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Notes      []*Note `json:"notes"`
	IsExpanded bool    `json:"is_expanded"`
}

// FindNote returns the note with the given ID, or nil if absent.
func (f *Folder) FindNote(noteID string) *Note {
	for _, n := range f.Notes {
		if n.ID == noteID {
			return n
		}
	}
	return nil
}

// NoteIndex returns the position of the note with the given ID, or -1.
func (f *Folder) NoteIndex(noteID string) int {
	for i, n := range f.Notes {
		if n.ID == noteID {
			return i
		}
	}
	return -1
}

// PrependNote inserts a note at the head of the folder's sequence.
// Newly created and moved notes always land at the head.
func (f *Folder) PrependNote(n *Note) {
	f.Notes = append([]*Note{n}, f.Notes...)
}

// RemoveNote removes the note with the given ID from the folder's sequence
// and returns it. Returns nil if the note is not in this folder.
func (f *Folder) RemoveNote(noteID string) *Note {
	idx := f.NoteIndex(noteID)
	if idx < 0 {
		return nil
	}
	n := f.Notes[idx]
	f.Notes = append(f.Notes[:idx], f.Notes[idx+1:]...)
	return n
}
