package getjuice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/quickjuice/backend/internal/service/models/juice"
)

// service is an interface for the service layer.
type service interface {
	GetJuice(ctx context.Context, id int64) (*juice.Juice, error)
}

// GetJuice handles the get juice request.
func GetJuice(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid juice id", http.StatusBadRequest)

		return
	}

	j, err := service.GetJuice(r.Context(), id)
	if err != nil {
		if errors.Is(err, juice.ErrJuiceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		slog.Error("Error getting juice", "juice_id", id, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(j); err != nil {
		slog.Error("Error sending response for get juice", "error", err)
	}
}
