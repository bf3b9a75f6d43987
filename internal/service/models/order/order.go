package order

import (
	"errors"
	"time"

	"github.com/quickjuice/backend/internal/service/models/orderitem"
)

var (
	// ErrOrderNotFound is returned when a referenced order id does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNoItems is returned when an order is placed without any items.
	ErrNoItems = errors.New("order contains no items")
)

// Customer holds the contact details captured at order time. It is not a
// foreign reference; the values are snapshots.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order represents a placed purchase request.
type Order struct {
	ID                int64                 `json:"id"`
	Customer          Customer              `json:"customer"`
	DeliveryAddress   string                `json:"deliveryAddress"`
	PaymentMethod     string                `json:"paymentMethod"`
	Notes             string                `json:"notes,omitempty"`
	TotalCents        int64                 `json:"totalCents"`
	Status            Status                `json:"status"`
	EstimatedDelivery time.Time             `json:"estimatedDelivery"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
	Items             []orderitem.OrderItem `json:"items"`
}
