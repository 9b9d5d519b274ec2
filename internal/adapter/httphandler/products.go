package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

type ProductsHandler struct {
	catalog port.CatalogManager
	querier port.ProductsQuerier
	updater port.QuantityUpdater
}

func RegisterProducts(
	mux *http.ServeMux,
	catalog port.CatalogManager,
	querier port.ProductsQuerier,
	updater port.QuantityUpdater,
) {
	h := ProductsHandler{catalog, querier, updater}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("POST /v1/products", h.PostProduct)
	mux.HandleFunc("GET /v1/products/top-rated", h.GetTopRated)
	mux.HandleFunc("GET /v1/products/stock-out", h.GetStockOut)
	mux.HandleFunc("PUT /v1/products/quantities", h.PutQuantities)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("PATCH /v1/products/{id}", h.PatchProduct)
	mux.HandleFunc("DELETE /v1/products/{id}", h.DeleteProduct)
	mux.HandleFunc("POST /v1/products/bulk", h.PostProducts)
	mux.HandleFunc("GET /v1/products/reviewed", h.GetReviewed)
	mux.HandleFunc("GET /v1/products/{id}/related", h.GetRelated)
	mux.HandleFunc("DELETE /v1/products/{id}/reviews", h.DeleteProductReviews)
	mux.HandleFunc("GET /v1/product-types/{type}/products", h.GetTypeProducts)
	mux.HandleFunc("GET /v1/product-types/{type}/popular", h.GetPopular)
	mux.HandleFunc("GET /v1/product-types/{type}/offers", h.GetOffers)
	mux.HandleFunc("POST /v1/reviews", h.PostReview)
	mux.HandleFunc("DELETE /v1/reviews/{id}", h.DeleteReview)
}

// GetProducts serves the filtered listing.
//
// Query: brand, category, productType, color, search, status, sortBy, skip, take.
func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	q := r.URL.Query()
	page, err := h.querier.QueryProducts(r.Context(), domain.ProductQuery{
		Brand:       q.Get("brand"),
		Category:    q.Get("category"),
		ProductType: q.Get("productType"),
		Color:       q.Get("color"),
		Search:      q.Get("search"),
		Status:      domain.ProductStatus(q.Get("status")),
		SortBy:      domain.SortBy(q.Get("sortBy")),
		Skip:        queryInt(r, "skip"),
		Take:        queryInt(r, "take"),
	})
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, pageFromDomain(page))
}

func (h ProductsHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProduct"
	log := slog.With("op", op)

	var req ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, productFromDomain(p))
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productFromDomain(p))
}

func (h ProductsHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PatchProduct"
	log := slog.With("op", op)

	var req ProductPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	p, err := h.catalog.UpdateProduct(r.Context(), r.PathValue("id"), req.toDomain())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productFromDomain(p))
}

func (h ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.DeleteProduct"
	log := slog.With("op", op)

	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h ProductsHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetRelated"
	log := slog.With("op", op)

	ps, err := h.catalog.RelatedProducts(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productsFromDomain(ps))
}

func (h ProductsHandler) GetTopRated(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetTopRated"
	log := slog.With("op", op)

	ps, err := h.catalog.TopRatedProducts(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productsFromDomain(ps))
}

func (h ProductsHandler) GetStockOut(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetStockOut"
	log := slog.With("op", op)

	ps, err := h.catalog.StockOutProducts(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productsFromDomain(ps))
}

// PutQuantities applies a feed synchronously. The body must be a JSON array
// of {"sku", "quantity"} objects.
func (h ProductsHandler) PutQuantities(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PutQuantities"
	log := slog.With("op", op)

	var raw json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		writeError(w, log, err)
		return
	}

	us, err := parseQuantityUpdates(raw)
	if err != nil {
		writeError(w, log, err)
		return
	}

	report, err := h.updater.ApplyQuantityUpdates(r.Context(), us)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, reportFromDomain(report))
}

func (h ProductsHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostReview"
	log := slog.With("op", op)

	var req ReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	rv, err := h.catalog.AddReview(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, reviewFromDomain(rv))
}

// PostProducts stores a JSON array of products at once.
func (h ProductsHandler) PostProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProducts"
	log := slog.With("op", op)

	var req []ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	ps := make([]domain.Product, len(req))
	for i, p := range req {
		ps[i] = p.toDomain()
	}

	created, err := h.catalog.AddProducts(r.Context(), ps)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, productsFromDomain(created))
}

func (h ProductsHandler) GetReviewed(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetReviewed"
	log := slog.With("op", op)

	ps, err := h.catalog.ReviewedProducts(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productsFromDomain(ps))
}

// GetTypeProducts lists in-stock products of the product type.
//
// Query: order=newest|top-sellers, or the boolean flags new and topSellers.
func (h ProductsHandler) GetTypeProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetTypeProducts"
	log := slog.With("op", op)

	ps, err := h.catalog.ProductsByType(
		r.Context(), r.PathValue("type"), typeOrder(r.URL.Query()),
	)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productsFromDomain(ps))
}

func typeOrder(q url.Values) domain.TypeOrder {
	switch {
	case q.Has("order"):
		return domain.TypeOrder(q.Get("order"))
	case q.Get("new") == "true":
		return domain.TypeOrderNewest
	case q.Get("topSellers") == "true":
		return domain.TypeOrderTopSellers
	}
	return domain.TypeOrderNone
}

func (h ProductsHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetPopular"
	log := slog.With("op", op)

	ps, err := h.catalog.PopularProducts(r.Context(), r.PathValue("type"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productsFromDomain(ps))
}

func (h ProductsHandler) GetOffers(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetOffers"
	log := slog.With("op", op)

	ps, err := h.catalog.OfferProducts(r.Context(), r.PathValue("type"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, productsFromDomain(ps))
}

func (h ProductsHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.DeleteReview"
	log := slog.With("op", op)

	if err := h.catalog.DeleteReview(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h ProductsHandler) DeleteProductReviews(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.DeleteProductReviews"
	log := slog.With("op", op)

	n, err := h.catalog.DeleteProductReviews(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, DeletedReviews{Deleted: n})
}
