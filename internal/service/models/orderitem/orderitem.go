package orderitem

import (
	"time"
)

// OrderItem represents an item within an order. JuiceName, JuiceImage and
// PriceCents are snapshots taken at placement time and stay fixed regardless
// of later catalog changes.
type OrderItem struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"orderId"`
	JuiceID    int64     `json:"juiceId"`
	Quantity   int       `json:"quantity"`
	JuiceName  string    `json:"juiceName"`
	JuiceImage string    `json:"juiceImage"`
	PriceCents int64     `json:"priceCents"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TotalCents returns the captured line total.
func (oi *OrderItem) TotalCents() int64 {
	return oi.PriceCents * int64(oi.Quantity)
}
