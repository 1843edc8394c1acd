package http

import (
	"net/http"

	"quiz-platform/internal/app"
	"quiz-platform/internal/domain"
)

// internalTokenHeader carries the pre-shared secret on internal endpoints.
const internalTokenHeader = "X-Internal-Token"

// ResultsHandler exposes the user service's result bridge: the internal
// write side and the public read side.
type ResultsHandler struct {
	results *app.ResultService
}

func NewResultsHandler(results *app.ResultService) *ResultsHandler {
	return &ResultsHandler{results: results}
}

func (h *ResultsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /internal/results", h.ingest)
	mux.HandleFunc("POST /internal/quizzes/pending", h.quizPending)
	mux.HandleFunc("GET /api/results/history", h.history)
	mux.HandleFunc("GET /api/results/leaderboard", h.leaderboard)
}

func (h *ResultsHandler) ingest(w http.ResponseWriter, r *http.Request) {
	var req app.IngestRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.results.Ingest(r.Context(), r.Header.Get(internalTokenHeader), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *ResultsHandler) quizPending(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuizID string `json:"quiz_id"`
		Title  string `json:"title"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.results.QuizPending(r.Header.Get(internalTokenHeader), req.QuizID, req.Title); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "admins notified"})
}

func (h *ResultsHandler) history(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, domain.ErrValidation)
		return
	}
	results, err := h.results.History(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *ResultsHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.results.Leaderboard(r.Context(), r.URL.Query().Get("quiz_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
