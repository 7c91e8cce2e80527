package pricelist

import (
	"encoding/json"
	"net/http"

	"github.com/agropuls/backend-quote/internal/common"
)

// Handler wires the price list service to HTTP.
type Handler struct {
	Svc *Service
}

// Get returns the full price list.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "pricelist service not configured", nil)
		return
	}
	common.Data(w, http.StatusOK, h.Svc.List(r.Context()))
}

// Put replaces the price list wholesale.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "pricelist service not configured", nil)
		return
	}
	var payload struct {
		Items []Item `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	common.Data(w, http.StatusOK, h.Svc.Replace(r.Context(), payload.Items))
}
