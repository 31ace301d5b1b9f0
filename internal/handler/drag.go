package handler

import (
	"log/slog"
	"net/http"

	"legalpad/internal/httputil"
	padSvc "legalpad/internal/service/legalpad"
)

// DragHandler exposes the drag-interaction state machine over HTTP. The
// client reports drag lifecycle events; drops resolve into pad mutations
// server-side.
type DragHandler struct {
	drag   *padSvc.DragController
	logger *slog.Logger
}

// NewDragHandler creates a new drag handler
func NewDragHandler(drag *padSvc.DragController, logger *slog.Logger) *DragHandler {
	return &DragHandler{
		drag:   drag,
		logger: logger,
	}
}

// Start begins a drag, replacing any in-flight one
// POST /api/pad/drag/start
func (h *DragHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind     string `json:"kind"`
		NoteID   string `json:"note_id"`
		FolderID string `json:"folder_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var err error
	switch padSvc.DragKind(req.Kind) {
	case padSvc.DragKindNote:
		err = h.drag.StartNoteDrag(req.NoteID, req.FolderID)
	case padSvc.DragKindFolder:
		err = h.drag.StartFolderDrag(req.FolderID)
	default:
		httputil.RespondError(w, http.StatusBadRequest, "kind must be \"note\" or \"folder\"")
		return
	}

	if err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Drop resolves the in-flight drag against a target folder
// POST /api/pad/drag/drop
func (h *DragHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetFolderID string `json:"target_folder_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TargetFolderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "target_folder_id is required")
		return
	}

	if err := h.drag.DropOnFolder(r.Context(), req.TargetFolderID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Cancel ends the drag without a drop; no mutation occurs
// POST /api/pad/drag/cancel
func (h *DragHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.drag.Cancel()
	w.WriteHeader(http.StatusNoContent)
}
