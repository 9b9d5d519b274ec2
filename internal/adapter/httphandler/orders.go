package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

type OrdersHandler struct {
	orders port.OrderManager
}

func RegisterOrders(mux *http.ServeMux, orders port.OrderManager) {
	h := OrdersHandler{orders}
	mux.HandleFunc("POST /v1/orders", h.PostOrder)
	mux.HandleFunc("GET /v1/orders", h.GetOrders)
	mux.HandleFunc("GET /v1/orders/pending", h.GetPendingOrders)
	mux.HandleFunc("GET /v1/orders/{id}", h.GetOrder)
	mux.HandleFunc("PATCH /v1/orders/{id}/status", h.PatchOrderStatus)
}

func (h OrdersHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PostOrder"
	log := slog.With("op", op)

	var req OrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	o, err := h.orders.CreateOrder(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, orderFromDomain(o))
}

func (h OrdersHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetOrders"
	log := slog.With("op", op)

	list, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, ordersFromDomain(list))
}

func (h OrdersHandler) GetPendingOrders(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetPendingOrders"
	log := slog.With("op", op)

	list, err := h.orders.PendingOrders(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, ordersFromDomain(list))
}

func (h OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetOrder"
	log := slog.With("op", op)

	d, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, orderDetailFromDomain(d))
}

func (h OrdersHandler) PatchOrderStatus(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PatchOrderStatus"
	log := slog.With("op", op)

	var req OrderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	o, err := h.orders.UpdateOrderStatus(
		r.Context(), r.PathValue("id"), domain.OrderStatus(req.Status),
	)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, orderFromDomain(o))
}
