package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/xtding233/towerclimb-backend/internal/player"
	"github.com/xtding233/towerclimb-backend/internal/pricing"
	"github.com/xtding233/towerclimb-backend/internal/reward"
	"github.com/xtding233/towerclimb-backend/internal/shop"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		zap.L().Error("failed to encode JSON response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		zap.L().Error("failed to write response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, reward.ErrPackageNotFound),
		errors.Is(err, pricing.ErrNotForSale):
		return http.StatusNotFound
	case errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, player.ErrInvalidPlayerID):
		return http.StatusBadRequest
	case errors.Is(err, shop.ErrInsufficientFunds),
		errors.Is(err, shop.ErrScrollNotOwned):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err with its mapped status. Internal errors are
// logged and hidden from the client.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		loggerFor(r).Error("request failed", zap.Error(err))
		respondError(w, status, "internal error")
		return
	}
	respondError(w, status, err.Error())
}
