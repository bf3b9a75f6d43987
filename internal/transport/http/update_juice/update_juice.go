package updatejuice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/quickjuice/backend/internal/service/models/juice"
)

// service is an interface for the service layer.
type service interface {
	UpdateJuice(ctx context.Context, j juice.Juice) (*juice.Juice, error)
}

// updateJuiceRequest represents an update juice request.
type updateJuiceRequest struct {
	Name         string          `json:"name"         validate:"required"`
	Description  string          `json:"description"  validate:"required"`
	About        string          `json:"about"        validate:"required"`
	PriceCents   int64           `json:"priceCents"   validate:"gte=0"`
	Image        string          `json:"image"        validate:"required"`
	Category     string          `json:"category"     validate:"required"`
	Ingredients  []string        `json:"ingredients"`
	Tags         []string        `json:"tags"`
	Nutrition    juice.Nutrition `json:"nutrition"`
	Availability bool            `json:"availability"`
	Stock        int             `json:"stock"        validate:"gte=0"`
	Featured     bool            `json:"featured"`
}

// Validate validates the update juice request.
func (r *updateJuiceRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts updateJuiceRequest to juice.Juice.
func (r *updateJuiceRequest) toModel(id int64) (*juice.Juice, error) {
	cat, err := juice.ParseCategory(r.Category)
	if err != nil {
		return nil, err
	}

	return &juice.Juice{
		ID:           id,
		Name:         r.Name,
		Description:  r.Description,
		About:        r.About,
		PriceCents:   r.PriceCents,
		Image:        r.Image,
		Category:     cat,
		Ingredients:  r.Ingredients,
		Tags:         r.Tags,
		Nutrition:    r.Nutrition,
		Availability: r.Availability,
		Stock:        r.Stock,
		Featured:     r.Featured,
	}, nil
}

// UpdateJuice handles the update juice request.
func UpdateJuice(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid juice id", http.StatusBadRequest)

		return
	}

	juiceReq := updateJuiceRequest{}
	if err := json.NewDecoder(r.Body).Decode(&juiceReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update juice", "error", err)

		return
	}

	if err := juiceReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update juice", "error", err)

		return
	}

	model, err := juiceReq.toModel(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error converting request to model for update juice", "error", err)

		return
	}

	updated, err := service.UpdateJuice(r.Context(), *model)
	if err != nil {
		if errors.Is(err, juice.ErrJuiceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		slog.Error("Error updating juice", "juice_id", id, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("Error sending response for update juice", "error", err)
	}
}
