package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/catalog/internal/core/port"
)

type TagsHandler struct {
	tags port.TagManager
}

func RegisterTags(mux *http.ServeMux, tags port.TagManager) {
	h := TagsHandler{tags}
	mux.HandleFunc("POST /v1/tags", h.PostTag)
	mux.HandleFunc("GET /v1/tags", h.GetTags)
	mux.HandleFunc("DELETE /v1/tags/{id}", h.DeleteTag)
}

func (h TagsHandler) PostTag(w http.ResponseWriter, r *http.Request) {
	const op = "TagsHandler.PostTag"
	log := slog.With("op", op)

	var req TagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	t, err := h.tags.AddTag(r.Context(), req.Name)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, Tag(t))
}

func (h TagsHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	const op = "TagsHandler.GetTags"
	log := slog.With("op", op)

	ts, err := h.tags.ListTags(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, tagsFromDomain(ts))
}

func (h TagsHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	const op = "TagsHandler.DeleteTag"
	log := slog.With("op", op)

	if err := h.tags.DeleteTag(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
