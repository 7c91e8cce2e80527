package draft

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/agropuls/backend-quote/internal/common"
	"github.com/agropuls/backend-quote/internal/quote"
)

// Handler wires the draft service to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// Get returns the draft, suppliers, and computed summary.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	common.Data(w, http.StatusOK, h.Svc.Get(r.Context()))
}

// Summary returns only the totals and VAT breakdown.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	common.Data(w, http.StatusOK, h.Svc.Summary(r.Context()))
}

// Update applies a partial header update to the draft.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	var patch DraftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(patch); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid field value", err.Error())
			return
		}
	}
	common.Data(w, http.StatusOK, h.Svc.UpdateDraft(r.Context(), patch))
}

// UpdateCustomer applies a partial update to the customer party.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	var patch quote.PartyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	common.Data(w, http.StatusOK, h.Svc.UpdateCustomer(r.Context(), patch))
}

// AddItem appends a blank line item.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	common.Data(w, http.StatusCreated, h.Svc.AddItem(r.Context()))
}

// UpdateItem applies a partial update to one line item.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	var patch ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	view, err := h.Svc.UpdateItem(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, view)
}

// RemoveItem deletes one line item; unknown ids are a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	common.Data(w, http.StatusOK, h.Svc.RemoveItem(r.Context(), id))
}

// AddFromPriceList seeds line items from catalog entries.
func (h *Handler) AddFromPriceList(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	common.Data(w, http.StatusCreated, h.Svc.AddFromPriceList(r.Context(), payload.IDs))
}

// Reset drops the persisted draft and price list and returns defaults.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	common.Data(w, http.StatusOK, h.Svc.Reset(r.Context()))
}

// Suppliers returns the supplier registry.
func (h *Handler) Suppliers(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	common.Data(w, http.StatusOK, h.Svc.Suppliers(r.Context()))
}

// AddSupplier appends a blank supplier and makes it active.
func (h *Handler) AddSupplier(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	common.Data(w, http.StatusCreated, h.Svc.AddSupplier(r.Context()))
}

// RemoveSupplier deletes a supplier; removing the last one conflicts.
func (h *Handler) RemoveSupplier(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	set, err := h.Svc.RemoveSupplier(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, set)
}

// ActivateSupplier switches the active supplier.
func (h *Handler) ActivateSupplier(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	set, err := h.Svc.ActivateSupplier(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Data(w, http.StatusOK, set)
}

// UpdateActiveSupplier applies a partial update to the active supplier.
func (h *Handler) UpdateActiveSupplier(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "draft service not configured", nil)
		return
	}
	var patch quote.PartyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	common.Data(w, http.StatusOK, h.Svc.UpdateActiveSupplier(r.Context(), patch))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "BAD_REQUEST"
		}
		common.JSONError(w, status, code, appErr.Message, nil)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
}
