package http

import (
	"net/http"
	"strconv"

	"quiz-platform/internal/app"
)

// QuizHandler exposes the quiz service's REST surface.
type QuizHandler struct {
	quizzes     *app.QuizService
	coordinator *app.Coordinator
}

func NewQuizHandler(quizzes *app.QuizService, coordinator *app.Coordinator) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, coordinator: coordinator}
}

// Register wires the quiz routes onto the mux.
func (h *QuizHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/quizzes", h.create)
	mux.HandleFunc("GET /api/quizzes", h.list)
	mux.HandleFunc("GET /api/quizzes/{id}", h.get)
	mux.HandleFunc("PATCH /api/quizzes/{id}/status", h.review)
	mux.HandleFunc("DELETE /api/quizzes/{id}", h.delete)
	mux.HandleFunc("POST /api/quizzes/{id}/submit", h.submit)
}

// requesterFrom reads caller identity from headers. Token-based auth is
// handled upstream; these headers identify the already-authenticated caller.
func requesterFrom(r *http.Request) app.Requester {
	userID, _ := strconv.ParseInt(r.Header.Get("X-Requester-Id"), 10, 64)
	return app.Requester{
		UserID: userID,
		Role:   r.Header.Get("X-Requester-Role"),
	}
}

func (h *QuizHandler) create(w http.ResponseWriter, r *http.Request) {
	var req app.CreateQuizRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	quiz, err := h.quizzes.CreateQuiz(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Quiz created and pending approval",
		"id":      quiz.ID,
	})
}

func (h *QuizHandler) list(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.ListQuizzes(r.Context(), requesterFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) get(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.GetQuiz(r.Context(), r.PathValue("id"), requesterFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) review(w http.ResponseWriter, r *http.Request) {
	var req app.ReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.quizzes.Review(r.Context(), r.PathValue("id"), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Quiz status updated to " + req.Status})
}

func (h *QuizHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.quizzes.DeleteQuiz(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Quiz deleted"})
}

// submit acknowledges with 202 Accepted; the score is delivered out-of-band
// once the detached pipeline finishes.
func (h *QuizHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req app.SubmitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.coordinator.Submit(r.Context(), r.PathValue("id"), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":  "accepted",
		"message": "Submission accepted; results will be delivered by email",
	})
}
