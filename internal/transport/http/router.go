package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"element-quiz/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the REST endpoints and the websocket entry point.
func NewRouter(service *app.QuizService, log *slog.Logger) http.Handler {
	h := &restHandler{service: service, log: log}
	ws := NewWSHandler(service, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/elements", h.listElements)
	r.Get("/users/{userID}/progress", h.progress)
	r.Get("/ws", ws.ServeWS)
	return r
}

type restHandler struct {
	service *app.QuizService
	log     *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *restHandler) listElements(w http.ResponseWriter, r *http.Request) {
	elements, err := h.service.Elements(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list elements failed", "error", err)
		h.respond(w, http.StatusServiceUnavailable, errorResponse{Error: "element pool unavailable"})
		return
	}
	h.respond(w, http.StatusOK, elements)
}

func (h *restHandler) progress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	progress, err := h.service.Progress(r.Context(), userID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "load progress failed", "user_id", userID, "error", err)
		h.respond(w, http.StatusInternalServerError, errorResponse{Error: "progress unavailable"})
		return
	}
	h.respond(w, http.StatusOK, progress)
}

func (h *restHandler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("failed to encode JSON response", "error", err)
	}
}
