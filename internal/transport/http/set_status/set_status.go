package setstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/quickjuice/backend/internal/service/models/order"
)

// service is an interface for the service layer.
type service interface {
	SetStatus(ctx context.Context, id int64, status string) (*order.Order, error)
}

// setStatusRequest represents a set status request.
type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles the set order status request.
func SetStatus(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	statusReq := setStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for set status", "error", err)

		return
	}

	updated, err := service.SetStatus(r.Context(), id, statusReq.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		slog.Error("Error setting order status", "order_id", id, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("Error sending response for set status", "error", err)
	}
}
