package placeorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/quickjuice/backend/internal/service/models/juice"
	"github.com/quickjuice/backend/internal/service/models/order"
	"github.com/quickjuice/backend/internal/service/models/orderitem"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, o order.Order) (*order.Order, error)
}

// itemInPlaceOrderRequest represents an item in a place order request.
type itemInPlaceOrderRequest struct {
	JuiceID  int64 `json:"juiceId"  validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"gt=0"`
}

// customerInPlaceOrderRequest represents the customer contact details.
type customerInPlaceOrderRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// placeOrderRequest represents a place order request.
type placeOrderRequest struct {
	Customer        customerInPlaceOrderRequest `json:"customer"        validate:"required"`
	Items           []itemInPlaceOrderRequest   `json:"items"           validate:"required,min=1,dive"`
	DeliveryAddress string                      `json:"deliveryAddress" validate:"required"`
	PaymentMethod   string                      `json:"paymentMethod"   validate:"required"`
	Notes           string                      `json:"notes"`
}

// Validate validates the place order request.
func (r *placeOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts placeOrderRequest to order.Order.
func (r *placeOrderRequest) toModel() order.Order {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = orderitem.OrderItem{
			JuiceID:  it.JuiceID,
			Quantity: it.Quantity,
		}
	}

	return order.Order{
		Customer: order.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		DeliveryAddress: r.DeliveryAddress,
		PaymentMethod:   r.PaymentMethod,
		Notes:           r.Notes,
		Items:           items,
	}
}

// PlaceOrder handles the place order request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderReq := placeOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	if err := orderReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for place order", "error", err)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), orderReq.toModel())
	if err != nil {
		var stockErr *juice.InsufficientStockError
		switch {
		case errors.Is(err, juice.ErrJuiceNotFound), errors.As(err, &stockErr):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		slog.Error("Error placing order", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(placed); err != nil {
		slog.Error("Error sending response for place order", "error", err)
	}
}
