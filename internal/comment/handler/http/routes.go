package http

import (
	stdhttp "net/http"
)

func (h *Handler) Routes() stdhttp.Handler {
	mux := stdhttp.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /api/comments", h.ListComments)
	mux.HandleFunc("DELETE /api/comments/{id}", h.DeleteComment)

	return mux
}
