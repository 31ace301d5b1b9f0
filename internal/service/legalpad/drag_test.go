package legalpad

import (
	"context"
	"errors"
	"testing"

	"legalpad/internal/domain"
)

func TestDragNoteLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("start then drop moves the note", func(t *testing.T) {
		pad, _ := newTestPad(t, buildTree(
			folderWithNotes("a", "A", "n1", "n2"),
			folderWithNotes("b", "B", "m1"),
		))
		drag := NewDragController(pad)

		if err := drag.StartNoteDrag("n1", "a"); err != nil {
			t.Fatalf("StartNoteDrag() error = %v", err)
		}
		if !drag.Dragging() {
			t.Fatalf("Dragging() = false after start")
		}

		if err := drag.DropOnFolder(ctx, "b"); err != nil {
			t.Fatalf("DropOnFolder() error = %v", err)
		}
		if drag.Dragging() {
			t.Errorf("Dragging() = true after drop")
		}
		if got := noteIDs(pad.State().Tree.FindFolder("b")); !equalIDs(got, []string{"n1", "m1"}) {
			t.Errorf("B notes = %v, want [n1 m1]", got)
		}
	})

	t.Run("drop onto the source folder is a no-op", func(t *testing.T) {
		pad, store := newTestPad(t, buildTree(folderWithNotes("a", "A", "n1", "n2")))
		drag := NewDragController(pad)
		saves := store.saves

		if err := drag.StartNoteDrag("n1", "a"); err != nil {
			t.Fatalf("StartNoteDrag() error = %v", err)
		}
		if err := drag.DropOnFolder(ctx, "a"); err != nil {
			t.Fatalf("DropOnFolder() error = %v", err)
		}
		if store.saves != saves {
			t.Errorf("same-folder drop persisted a change")
		}
		if got := noteIDs(pad.State().Tree.FindFolder("a")); !equalIDs(got, []string{"n1", "n2"}) {
			t.Errorf("A notes = %v, want [n1 n2]", got)
		}
	})
}

func TestDragFolderLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("drop repositions at the target's index", func(t *testing.T) {
		pad, _ := newTestPad(t, buildTree(
			folderWithNotes("f0", "Zero"),
			folderWithNotes("f1", "One"),
			folderWithNotes("f2", "Two"),
		))
		drag := NewDragController(pad)

		if err := drag.StartFolderDrag("f0"); err != nil {
			t.Fatalf("StartFolderDrag() error = %v", err)
		}
		if err := drag.DropOnFolder(ctx, "f2"); err != nil {
			t.Fatalf("DropOnFolder() error = %v", err)
		}

		st := pad.State()
		got := make([]string, len(st.Tree.Folders))
		for i, f := range st.Tree.Folders {
			got[i] = f.ID
		}
		if !equalIDs(got, []string{"f1", "f2", "f0"}) {
			t.Errorf("folder order = %v, want [f1 f2 f0]", got)
		}
	})

	t.Run("dragging an unknown folder aborts at start", func(t *testing.T) {
		pad, _ := newTestPad(t, buildTree(folderWithNotes("f0", "Zero")))
		drag := NewDragController(pad)

		if err := drag.StartFolderDrag("ghost"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("StartFolderDrag() error = %v, want ErrNotFound", err)
		}
		if drag.Dragging() {
			t.Errorf("Dragging() = true after failed start")
		}
	})

	t.Run("drop onto itself keeps the order", func(t *testing.T) {
		pad, _ := newTestPad(t, buildTree(
			folderWithNotes("f0", "Zero"),
			folderWithNotes("f1", "One"),
		))
		drag := NewDragController(pad)

		if err := drag.StartFolderDrag("f1"); err != nil {
			t.Fatalf("StartFolderDrag() error = %v", err)
		}
		if err := drag.DropOnFolder(ctx, "f1"); err != nil {
			t.Fatalf("DropOnFolder() error = %v", err)
		}
		st := pad.State()
		if st.Tree.Folders[0].ID != "f0" || st.Tree.Folders[1].ID != "f1" {
			t.Errorf("folder order changed on self drop")
		}
	})
}

func TestDragCancelAndIdle(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel leaves the tree untouched", func(t *testing.T) {
		pad, store := newTestPad(t, buildTree(
			folderWithNotes("a", "A", "n1"),
			folderWithNotes("b", "B"),
		))
		drag := NewDragController(pad)
		saves := store.saves

		if err := drag.StartNoteDrag("n1", "a"); err != nil {
			t.Fatalf("StartNoteDrag() error = %v", err)
		}
		drag.Cancel()

		if drag.Dragging() {
			t.Errorf("Dragging() = true after cancel")
		}
		if store.saves != saves {
			t.Errorf("cancel persisted a change")
		}
		if got := noteIDs(pad.State().Tree.FindFolder("a")); !equalIDs(got, []string{"n1"}) {
			t.Errorf("A notes = %v, want [n1]", got)
		}
	})

	t.Run("drop with no drag in progress", func(t *testing.T) {
		pad, _ := newTestPad(t, buildTree(folderWithNotes("a", "A")))
		drag := NewDragController(pad)

		if err := drag.DropOnFolder(ctx, "a"); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("DropOnFolder() error = %v, want ErrValidation", err)
		}
	})

	t.Run("starting a new drag replaces the one in flight", func(t *testing.T) {
		pad, _ := newTestPad(t, buildTree(
			folderWithNotes("a", "A", "n1", "n2"),
			folderWithNotes("b", "B"),
		))
		drag := NewDragController(pad)

		if err := drag.StartNoteDrag("n1", "a"); err != nil {
			t.Fatalf("StartNoteDrag() error = %v", err)
		}
		if err := drag.StartNoteDrag("n2", "a"); err != nil {
			t.Fatalf("StartNoteDrag() replacement error = %v", err)
		}
		if err := drag.DropOnFolder(ctx, "b"); err != nil {
			t.Fatalf("DropOnFolder() error = %v", err)
		}

		st := pad.State()
		if got := noteIDs(st.Tree.FindFolder("b")); !equalIDs(got, []string{"n2"}) {
			t.Errorf("B notes = %v, want [n2] (second drag wins)", got)
		}
		if got := noteIDs(st.Tree.FindFolder("a")); !equalIDs(got, []string{"n1"}) {
			t.Errorf("A notes = %v, want [n1]", got)
		}
	})
}
