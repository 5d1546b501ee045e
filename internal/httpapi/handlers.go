package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/xtding233/towerclimb-backend/internal/catalog"
)

// PurchaseRequest is the body of POST /players/{id}/purchase.
type PurchaseRequest struct {
	PackageID string `json:"packageId" validate:"required"`
	Qty       int    `json:"qty" validate:"min=1,max=100"`
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) openPackage(w http.ResponseWriter, r *http.Request) {
	res, err := h.shop.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handler) getPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := h.shop.Player(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *handler) purchase(w http.ResponseWriter, r *http.Request) {
	req := PurchaseRequest{Qty: 1}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		loggerFor(r).Debug("bad purchase body", zap.Error(err))
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "invalid request",
			Fields: fieldErrors(err),
		})
		return
	}

	rc, err := h.shop.Purchase(r.Context(), chi.URLParam(r, "id"), req.PackageID, req.Qty)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rc)
}

func (h *handler) useScroll(w http.ResponseWriter, r *http.Request) {
	res, err := h.shop.UseScroll(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "scroll"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request) {
	ref := catalog.RefOf(chi.URLParam(r, "id"), chi.URLParam(r, "kind"))
	respondJSON(w, http.StatusOK, h.shop.Lookup(ref))
}

func fieldErrors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = "failed " + fe.Tag()
	}
	return out
}
