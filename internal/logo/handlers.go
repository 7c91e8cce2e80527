package logo

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/agropuls/backend-quote/internal/common"
	"github.com/agropuls/backend-quote/internal/draft"
	"github.com/agropuls/backend-quote/internal/obs"
	"github.com/agropuls/backend-quote/internal/quote"
	"github.com/agropuls/backend-quote/internal/store"
)

// LogoKeyPrefix prefixes the per-supplier logo document key.
const LogoKeyPrefix = "quote:logo:"

// Handler manages the active supplier's logo.
type Handler struct {
	Proc     Processor
	Svc      *draft.Service
	Docs     store.Docs
	MaxBytes int64
}

func logoKey(supplierID string) string {
	return LogoKeyPrefix + supplierID
}

// Upload reads the image from the request body (multipart "logo" field
// or raw bytes), processes it, and attaches the result to the active
// supplier.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "logo handler not configured", nil)
		return
	}
	data, err := h.readImage(r)
	if err != nil {
		countUpload("rejected")
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	ref, err := h.Proc.Process(data)
	if err != nil {
		countUpload("rejected")
		common.JSONError(w, http.StatusUnprocessableEntity, "UNSUPPORTED_IMAGE", "could not decode image", nil)
		return
	}

	active := h.Svc.ActiveSupplier(r.Context())
	key := logoKey(active.ID)
	h.Docs.Save(r.Context(), key, ref)
	set := h.Svc.UpdateActiveSupplier(r.Context(), quote.PartyPatch{LogoRef: &key})
	countUpload("ok")

	active, _ = set.Active()
	common.Data(w, http.StatusOK, map[string]any{
		"logoRef": active.LogoRef,
		"logo":    ref,
	})
}

// Get returns the active supplier's stored logo.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "logo handler not configured", nil)
		return
	}
	active := h.Svc.ActiveSupplier(r.Context())
	var ref string
	if active.LogoRef == "" || !h.Docs.Load(r.Context(), active.LogoRef, &ref) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "no logo uploaded", nil)
		return
	}
	common.Data(w, http.StatusOK, map[string]any{"logo": ref})
}

// Delete removes the active supplier's logo.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "logo handler not configured", nil)
		return
	}
	active := h.Svc.ActiveSupplier(r.Context())
	if active.LogoRef != "" {
		h.Docs.Remove(r.Context(), active.LogoRef)
	}
	empty := ""
	set := h.Svc.UpdateActiveSupplier(r.Context(), quote.PartyPatch{LogoRef: &empty})
	active, _ = set.Active()
	common.Data(w, http.StatusOK, map[string]any{"logoRef": active.LogoRef})
}

func (h *Handler) readImage(r *http.Request) ([]byte, error) {
	limit := h.MaxBytes
	if limit <= 0 {
		limit = 2 << 20
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(limit); err != nil {
			return nil, errors.New("invalid multipart payload")
		}
		file, _, err := r.FormFile("logo")
		if err != nil {
			return nil, errors.New("missing logo field")
		}
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, limit))
	}
	body := http.MaxBytesReader(nil, r.Body, limit)
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.New("image exceeds the size limit")
	}
	if len(data) == 0 {
		return nil, errors.New("empty image payload")
	}
	return data, nil
}

func countUpload(result string) {
	if obs.LogoUploadsTotal != nil {
		obs.LogoUploadsTotal.WithLabelValues(result).Inc()
	}
}
