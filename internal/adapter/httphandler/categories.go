package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

type CategoriesHandler struct {
	categories port.CategoryManager
}

func RegisterCategories(mux *http.ServeMux, categories port.CategoryManager) {
	h := CategoriesHandler{categories}
	mux.HandleFunc("POST /v1/categories", h.PostCategory)
	mux.HandleFunc("POST /v1/categories/bulk", h.PostCategories)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("GET /v1/categories/show", h.GetShownCategories)
	mux.HandleFunc("GET /v1/categories/{id}", h.GetCategory)
	mux.HandleFunc("PATCH /v1/categories/{id}", h.PatchCategory)
	mux.HandleFunc("DELETE /v1/categories/{id}", h.DeleteCategory)
	mux.HandleFunc("GET /v1/product-types/{type}/categories", h.GetTypeCategories)
}

func (h CategoriesHandler) PostCategory(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.PostCategory"
	log := slog.With("op", op)

	var req CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	c, err := h.categories.AddCategory(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, categoryFromDomain(c))
}

func (h CategoriesHandler) PostCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.PostCategories"
	log := slog.With("op", op)

	var req []CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	cs := make([]domain.Category, len(req))
	for i, c := range req {
		cs[i] = c.toDomain()
	}

	created, err := h.categories.AddCategories(r.Context(), cs)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, categoriesFromDomain(created))
}

func (h CategoriesHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.GetCategories"
	log := slog.With("op", op)

	cs, err := h.categories.ListCategories(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, categoriesFromDomain(cs))
}

func (h CategoriesHandler) GetShownCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.GetShownCategories"
	log := slog.With("op", op)

	cs, err := h.categories.ShownCategories(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, categoriesFromDomain(cs))
}

func (h CategoriesHandler) GetTypeCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.GetTypeCategories"
	log := slog.With("op", op)

	cs, err := h.categories.CategoriesByProductType(r.Context(), r.PathValue("type"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, categoriesFromDomain(cs))
}

func (h CategoriesHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.GetCategory"
	log := slog.With("op", op)

	c, err := h.categories.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, categoryFromDomain(c))
}

func (h CategoriesHandler) PatchCategory(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.PatchCategory"
	log := slog.With("op", op)

	var req CategoryPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	c, err := h.categories.UpdateCategory(r.Context(), r.PathValue("id"), req.toDomain())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, categoryFromDomain(c))
}

func (h CategoriesHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.DeleteCategory"
	log := slog.With("op", op)

	if err := h.categories.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
