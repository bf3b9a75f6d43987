package juice

import (
	"errors"
	"fmt"
	"time"
)

// ErrJuiceNotFound is returned when a referenced juice id does not exist.
var ErrJuiceNotFound = errors.New("juice not found")

// InsufficientStockError reports a failed stock check during order placement.
type InsufficientStockError struct {
	JuiceID   int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for juice %d: available %d, requested %d",
		e.JuiceID, e.Available, e.Requested,
	)
}

// Nutrition holds the nutrition facts shown on a juice card.
type Nutrition struct {
	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
	Sugar    float64 `json:"sugar,omitempty"`
	Fiber    float64 `json:"fiber,omitempty"`
}

// Juice represents a catalog entry.
type Juice struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	About        string    `json:"about"`
	PriceCents   int64     `json:"priceCents"`
	Image        string    `json:"image"`
	Category     Category  `json:"category"`
	Ingredients  []string  `json:"ingredients"`
	Tags         []string  `json:"tags"`
	Nutrition    Nutrition `json:"nutrition"`
	Availability bool      `json:"availability"`
	Stock        int       `json:"stock"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
