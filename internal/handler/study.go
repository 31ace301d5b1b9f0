package handler

import (
	"log/slog"
	"net/http"

	"legalpad/internal/httputil"
	"legalpad/internal/service/studyaids"
)

// StudyHandler handles the AI study-aid surfaces: statute explanations, case
// digests, quiz questions, and contract drafts.
type StudyHandler struct {
	study  *studyaids.Service
	logger *slog.Logger
}

// NewStudyHandler creates a new study-aid handler
func NewStudyHandler(study *studyaids.Service, logger *slog.Logger) *StudyHandler {
	return &StudyHandler{
		study:  study,
		logger: logger,
	}
}

// htmlResult wraps a generated HTML fragment for the client.
type htmlResult struct {
	HTML string `json:"html"`
}

// ExplainStatute generates a plain-language statute explanation
// POST /api/study/statutes/explain
func (h *StudyHandler) ExplainStatute(w http.ResponseWriter, r *http.Request) {
	var req studyaids.ExplainStatuteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	html, err := h.study.ExplainStatute(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, htmlResult{HTML: html})
}

// DigestCase generates a case digest
// POST /api/study/cases/digest
func (h *StudyHandler) DigestCase(w http.ResponseWriter, r *http.Request) {
	var req studyaids.DigestCaseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	html, err := h.study.DigestCase(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, htmlResult{HTML: html})
}

// QuizQuestion generates one structured bar-exam question
// POST /api/study/quiz/question
func (h *StudyHandler) QuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req studyaids.QuizQuestionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.study.QuizQuestion(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, question)
}

// DraftContract generates a contract draft
// POST /api/study/contracts/draft
func (h *StudyHandler) DraftContract(w http.ResponseWriter, r *http.Request) {
	var req studyaids.DraftContractRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	html, err := h.study.DraftContract(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, htmlResult{HTML: html})
}
