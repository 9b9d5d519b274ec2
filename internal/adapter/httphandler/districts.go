package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

type DistrictsHandler struct {
	districts port.DistrictManager
}

func RegisterDistricts(mux *http.ServeMux, districts port.DistrictManager) {
	h := DistrictsHandler{districts}
	mux.HandleFunc("POST /v1/districts", h.PostDistrict)
	mux.HandleFunc("GET /v1/districts", h.GetDistricts)
	mux.HandleFunc("GET /v1/districts/{id}", h.GetDistrict)
	mux.HandleFunc("PATCH /v1/districts/{id}", h.PatchDistrict)
	mux.HandleFunc("DELETE /v1/districts/{id}", h.DeleteDistrict)
}

func (h DistrictsHandler) PostDistrict(w http.ResponseWriter, r *http.Request) {
	const op = "DistrictsHandler.PostDistrict"
	log := slog.With("op", op)

	var req DistrictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	d, err := h.districts.AddDistrict(r.Context(), domain.DeliveryDistrict{
		Name:         req.Name,
		DeliveryCost: req.DeliveryCost,
	})
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, districtFromDomain(d))
}

func (h DistrictsHandler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	const op = "DistrictsHandler.GetDistricts"
	log := slog.With("op", op)

	ds, err := h.districts.ListDistricts(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, districtsFromDomain(ds))
}

func (h DistrictsHandler) GetDistrict(w http.ResponseWriter, r *http.Request) {
	const op = "DistrictsHandler.GetDistrict"
	log := slog.With("op", op)

	d, err := h.districts.GetDistrict(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, districtFromDomain(d))
}

func (h DistrictsHandler) PatchDistrict(w http.ResponseWriter, r *http.Request) {
	const op = "DistrictsHandler.PatchDistrict"
	log := slog.With("op", op)

	var req DistrictPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	d, err := h.districts.UpdateDistrict(
		r.Context(), r.PathValue("id"), domain.DistrictPatch(req),
	)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, districtFromDomain(d))
}

func (h DistrictsHandler) DeleteDistrict(w http.ResponseWriter, r *http.Request) {
	const op = "DistrictsHandler.DeleteDistrict"
	log := slog.With("op", op)

	if err := h.districts.DeleteDistrict(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
