package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/quickjuice/backend/internal/service/models/dashboard"
)

// service is an interface for the service layer.
type service interface {
	Dashboard(ctx context.Context) (*dashboard.Dashboard, error)
}

// Dashboard handles the admin dashboard request.
func Dashboard(w http.ResponseWriter, r *http.Request, service service) {
	d, err := service.Dashboard(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error assembling dashboard", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		slog.Error("Error sending response for dashboard", "error", err)
	}
}
