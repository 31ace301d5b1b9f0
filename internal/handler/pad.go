package handler

import (
	"log/slog"
	"net/http"
	"time"

	"legalpad/internal/httputil"
	padSvc "legalpad/internal/service/legalpad"
)

// PadHandler handles legal pad HTTP requests
type PadHandler struct {
	pad    *padSvc.Pad
	logger *slog.Logger
}

// NewPadHandler creates a new pad handler
func NewPadHandler(pad *padSvc.Pad, logger *slog.Logger) *PadHandler {
	return &PadHandler{
		pad:    pad,
		logger: logger,
	}
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *PadHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}

// GetTree returns the full folder/note tree plus the active selection
// GET /api/pad/tree
func (h *PadHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.pad.State())
}

// CreateFolder appends a new folder and makes it active
// POST /api/pad/folders
func (h *PadHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.pad.CreateFolder(r.Context(), req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// RenameFolder replaces a folder's name
// PATCH /api/pad/folders/{id}
func (h *PadHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.pad.RenameFolder(r.Context(), id, req.Name); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteFolder removes a folder and every note it owns. Confirmation is the
// client's responsibility.
// DELETE /api/pad/folders/{id}
func (h *PadHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	if err := h.pad.DeleteFolder(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleFolder flips a folder's expansion flag
// POST /api/pad/folders/{id}/toggle
func (h *PadHandler) ToggleFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	if err := h.pad.ToggleFolderExpanded(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MergeFolder absorbs a folder's notes into the folder named in the request,
// then removes the source folder
// POST /api/pad/folders/{id}/merge
func (h *PadHandler) MergeFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	var req struct {
		TargetName string `json:"target_name"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.pad.MergeFolder(r.Context(), id, req.TargetName); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderFolders reorders the folder sequence. Two request shapes are
// accepted: {index, direction} swaps a folder with its neighbor, and
// {source_index, target_index} moves a folder to a new position.
// POST /api/pad/folders/reorder
func (h *PadHandler) ReorderFolders(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index       *int   `json:"index"`
		Direction   string `json:"direction"`
		SourceIndex *int   `json:"source_index"`
		TargetIndex *int   `json:"target_index"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var err error
	switch {
	case req.Index != nil && req.Direction != "":
		err = h.pad.ReorderFolders(r.Context(), *req.Index, padSvc.Direction(req.Direction))
	case req.SourceIndex != nil && req.TargetIndex != nil:
		err = h.pad.ReorderFolderPosition(r.Context(), *req.SourceIndex, *req.TargetIndex)
	default:
		httputil.RespondError(w, http.StatusBadRequest, "provide index+direction or source_index+target_index")
		return
	}

	if err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateNote prepends a blank note to a folder and makes it active
// POST /api/pad/folders/{id}/notes
func (h *PadHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	note, err := h.pad.CreateNote(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, note)
}

// UpdateNote replaces exactly one field of a note
// PATCH /api/pad/notes/{id}
func (h *PadHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "note ID is required")
		return
	}

	var req struct {
		FolderID string      `json:"folder_id"`
		Field    string      `json:"field"`
		Value    interface{} `json:"value"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.FolderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder_id is required")
		return
	}

	if err := h.pad.UpdateNoteField(r.Context(), id, req.FolderID, padSvc.NoteField(req.Field), req.Value); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteNote removes a note from its folder. Confirmation is the client's
// responsibility.
// DELETE /api/pad/notes/{id}?folder_id=...
func (h *PadHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "note ID is required")
		return
	}
	folderID := r.URL.Query().Get("folder_id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder_id query parameter is required")
		return
	}

	if err := h.pad.DeleteNote(r.Context(), id, folderID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MoveNote transfers a note between folders
// POST /api/pad/notes/{id}/move
func (h *PadHandler) MoveNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "note ID is required")
		return
	}

	var req struct {
		SourceFolderID string `json:"source_folder_id"`
		TargetFolderID string `json:"target_folder_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SourceFolderID == "" || req.TargetFolderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "source_folder_id and target_folder_id are required")
		return
	}

	if err := h.pad.MoveNote(r.Context(), id, req.SourceFolderID, req.TargetFolderID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Select updates the active folder/note selection
// POST /api/pad/select
func (h *PadHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderID string `json:"folder_id"`
		NoteID   string `json:"note_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.pad.Select(req.FolderID, req.NoteID)
	httputil.RespondJSON(w, http.StatusOK, h.pad.State())
}
