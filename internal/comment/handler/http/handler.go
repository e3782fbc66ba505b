package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"

	"github.com/rs/zerolog"

	"github.com/MyNameIsWhaaat/comments/internal/comment/model"
	"github.com/MyNameIsWhaaat/comments/internal/comment/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	svc    service.CommentService
	health Pinger
	log    zerolog.Logger
}

func New(svc service.CommentService, health Pinger, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, health: health, log: log}
}

func (h *Handler) ListComments(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	items, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("list comments failed")
		writeJSON(w, stdhttp.StatusInternalServerError, map[string]any{"error": "Failed to fetch comments"})
		return
	}

	writeJSON(w, stdhttp.StatusOK, items)
}

func (h *Handler) DeleteComment(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id := r.PathValue("id")

	res, err := h.svc.DeleteByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Str("id", id).Msg("delete comment failed")
		writeJSON(w, stdhttp.StatusInternalServerError, map[string]any{"error": "Failed to delete comment"})
		return
	}

	if res == model.NotFound {
		writeJSON(w, stdhttp.StatusNotFound, map[string]any{"error": "Comment not found"})
		return
	}

	h.log.Info().Str("id", id).Msg("comment deleted")
	writeJSON(w, stdhttp.StatusOK, map[string]any{"message": "Comment deleted successfully"})
}

func (h *Handler) Healthz(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.log.Warn().Err(err).Msg("health check failed")
			writeJSON(w, stdhttp.StatusServiceUnavailable, map[string]any{"result": "unavailable"})
			return
		}
	}
	writeJSON(w, stdhttp.StatusOK, map[string]any{"result": "ok"})
}

func writeJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
