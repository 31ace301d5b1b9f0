package legalpad

import (
	"context"
	"fmt"
	"sync"

	"legalpad/internal/domain"
)

// DragKind names what is being dragged.
type DragKind string

const (
	DragKindNote   DragKind = "note"
	DragKindFolder DragKind = "folder"
)

type dragState int

const (
	dragIdle dragState = iota
	draggingNote
	draggingFolder
)

// DragController tracks the one in-flight drag operation and resolves a drop
// target into a pad mutation. It is decoupled from any input transport: the
// HTTP layer (or a test) drives it with start/drop/cancel calls.
//
// Single-pointer interaction means only one drag is ever active; starting a
// new drag replaces an in-flight one.
type DragController struct {
	mu  sync.Mutex
	pad *Pad

	state          dragState
	noteID         string
	sourceFolderID string
	folderID       string
	sourceIndex    int
}

// NewDragController creates a drag controller bound to a pad.
func NewDragController(pad *Pad) *DragController {
	return &DragController{pad: pad}
}

// StartNoteDrag transitions to DraggingNote, capturing the dragged note's
// identity and current folder.
func (d *DragController) StartNoteDrag(noteID, sourceFolderID string) error {
	if noteID == "" || sourceFolderID == "" {
		return fmt.Errorf("%w: note drag requires note and source folder ids", domain.ErrValidation)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = draggingNote
	d.noteID = noteID
	d.sourceFolderID = sourceFolderID
	d.folderID = ""
	return nil
}

// StartFolderDrag transitions to DraggingFolder, capturing the dragged
// folder's identity and its current position in the sequence.
func (d *DragController) StartFolderDrag(folderID string) error {
	if folderID == "" {
		return fmt.Errorf("%w: folder drag requires a folder id", domain.ErrValidation)
	}

	sourceIndex := d.pad.State().Tree.FolderIndex(folderID)
	if sourceIndex < 0 {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = draggingFolder
	d.folderID = folderID
	d.sourceIndex = sourceIndex
	d.noteID = ""
	d.sourceFolderID = ""
	return nil
}

// DropOnFolder resolves the in-flight drag against a drop target folder:
// a dragged note moves into the target, a dragged folder takes the target's
// current position. The controller returns to idle whether or not the
// resulting mutation succeeds.
func (d *DragController) DropOnFolder(ctx context.Context, targetFolderID string) error {
	d.mu.Lock()
	state := d.state
	noteID := d.noteID
	sourceFolderID := d.sourceFolderID
	sourceIndex := d.sourceIndex
	d.reset()
	d.mu.Unlock()

	switch state {
	case draggingNote:
		return d.pad.MoveNote(ctx, noteID, sourceFolderID, targetFolderID)

	case draggingFolder:
		targetIndex := d.pad.State().Tree.FolderIndex(targetFolderID)
		if targetIndex < 0 {
			return fmt.Errorf("%w: folder %s", domain.ErrNotFound, targetFolderID)
		}
		return d.pad.ReorderFolderPosition(ctx, sourceIndex, targetIndex)

	default:
		return fmt.Errorf("%w: no drag in progress", domain.ErrValidation)
	}
}

// Cancel ends the drag without a drop. No mutation occurs.
func (d *DragController) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// Dragging reports whether a drag is in flight.
func (d *DragController) Dragging() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state != dragIdle
}

// reset returns to idle. Callers must hold d.mu.
func (d *DragController) reset() {
	d.state = dragIdle
	d.noteID = ""
	d.sourceFolderID = ""
	d.folderID = ""
	d.sourceIndex = 0
}
