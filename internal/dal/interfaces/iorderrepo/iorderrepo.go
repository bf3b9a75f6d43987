package iorderrepo

import (
	"context"

	"github.com/quickjuice/backend/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	UpdateStatus(ctx context.Context, id int64, status order.Status) (*order.Order, error)
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
	RevenueCents(ctx context.Context) (int64, error)
}
