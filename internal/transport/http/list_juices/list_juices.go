package listjuices

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/quickjuice/backend/internal/service/models/juice"
)

// service is an interface for the service layer.
type service interface {
	ListJuices(ctx context.Context, filter juice.QueryJuicesModel) ([]juice.Juice, error)
}

// ListJuices handles the list juices request.
func ListJuices(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	filter := juice.QueryJuicesModel{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}

	if availabilityStr := query.Get("availability"); availabilityStr != "" {
		availability := availabilityStr == "true"
		filter.Availability = &availability
	}

	if featuredStr := query.Get("featured"); featuredStr != "" {
		featured := featuredStr == "true"
		filter.Featured = &featured
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	juices, err := service.ListJuices(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing juices", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(juices); err != nil {
		slog.Error("Error sending response for list juices", "error", err)
	}
}
