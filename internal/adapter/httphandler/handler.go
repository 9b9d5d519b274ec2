package httphandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/catalog/internal/core/domain"
)

const maxBodyBytes = 4 << 20

var errNotList = fmt.Errorf("%w: updates should be a list", domain.ErrValidation)

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON data: %w", domain.ErrValidation, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError maps core errors to the status code. Messages of server errors
// stay in the log.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := errStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
		msg = http.StatusText(status)
	} else {
		log.Warn("request rejected", "status", status, "err", err)
	}
	writeJSON(w, log, status, ErrorResponse{Message: msg})
}

// parseQuantityUpdates decodes a feed array leniently. Entries that are not
// objects or carry a non-string sku are kept empty so the core counts them
// as discarded.
func parseQuantityUpdates(raw json.RawMessage) ([]domain.RawQuantityUpdate, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, errNotList
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON data: %w", domain.ErrValidation, err)
	}

	us := make([]domain.RawQuantityUpdate, len(entries))
	for i, e := range entries {
		dec := json.NewDecoder(bytes.NewReader(e))
		dec.UseNumber()
		var fields map[string]any
		if err := dec.Decode(&fields); err != nil {
			continue
		}
		sku, _ := fields["sku"].(string)
		us[i] = domain.RawQuantityUpdate{SKU: sku, Quantity: fields["quantity"]}
	}
	return us, nil
}

// queryInt returns the integer query parameter or zero when it is absent
// or malformed.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
