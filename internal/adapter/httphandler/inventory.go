package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/catalog/internal/core/port"
)

type InventoryHandler struct {
	feeds port.InventoryFeedSender
}

func RegisterInventory(mux *http.ServeMux, feeds port.InventoryFeedSender) {
	h := InventoryHandler{feeds}
	mux.HandleFunc("POST /v1/inventory/feed", h.PostFeed)
	mux.HandleFunc("GET /v1/inventory/feed/{source}", h.GetFeedReport)
}

type feedRequest struct {
	Source  string          `json:"source"`
	Updates json.RawMessage `json:"updates"`
}

// PostFeed accepts a feed for asynchronous processing (202 Accepted).
func (h InventoryHandler) PostFeed(w http.ResponseWriter, r *http.Request) {
	const op = "InventoryHandler.PostFeed"
	log := slog.With("op", op)

	var req feedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	us, err := parseQuantityUpdates(req.Updates)
	if err != nil {
		writeError(w, log, err)
		return
	}

	if err := h.feeds.SendFeed(r.Context(), req.Source, us); err != nil {
		writeError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	if _, err := w.Write([]byte("Accepted")); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}
	log.Info("accepted", "source", req.Source, "nUpdates", len(us))
}

func (h InventoryHandler) GetFeedReport(w http.ResponseWriter, r *http.Request) {
	const op = "InventoryHandler.GetFeedReport"
	log := slog.With("op", op)

	report, err := h.feeds.FeedReport(r.Context(), r.PathValue("source"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, FeedReport{
		Source:         report.Source,
		QuantityReport: reportFromDomain(report.QuantityReport),
	})
}
