package createjuice

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickjuice/backend/internal/service/models/juice"
)

// service is an interface for the service layer.
type service interface {
	CreateJuice(ctx context.Context, j juice.Juice) (*juice.Juice, error)
}

// createJuiceRequest represents a create juice request.
type createJuiceRequest struct {
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

// Validate validates the create juice request.
func (r *createJuiceRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createJuiceRequest to juice.Juice.
func (r *createJuiceRequest) toModel() (*juice.Juice, error) {
	cat, err := juice.ParseCategory(r.Category)
	if err != nil {
		return nil, err
	}

	return &juice.Juice{
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

// CreateJuice handles the create juice request.
func CreateJuice(w http.ResponseWriter, r *http.Request, service service) {
	juiceReq := createJuiceRequest{}
	if err := json.NewDecoder(r.Body).Decode(&juiceReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create juice", "error", err)

		return
	}

	if err := juiceReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create juice", "error", err)

		return
	}

	model, err := juiceReq.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error converting request to model for create juice", "error", err)

		return
	}

	created, err := service.CreateJuice(r.Context(), *model)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error creating juice", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create juice", "error", err)
	}
}
