package ijuicerepo

import (
	"context"

	"github.com/quickjuice/backend/internal/service/models/juice"
)

// IJuiceRepository is an interface for the juice postgres repository.
type IJuiceRepository interface {
	GetByID(ctx context.Context, id int64) (*juice.Juice, error)
	Query(ctx context.Context, filter *juice.QueryJuicesModel) ([]juice.Juice, error)
	Insert(ctx context.Context, j juice.Juice) (*juice.Juice, error)
	Update(ctx context.Context, j juice.Juice) (*juice.Juice, error)
	Delete(ctx context.Context, id int64) error

	// UpdateStock adjusts stock by delta (negative to reserve, positive to
	// restore) and fails without mutating anything if the result would be
	// negative.
	UpdateStock(ctx context.Context, id int64, delta int) error

	Count(ctx context.Context) (int64, error)
	LowStock(ctx context.Context, threshold int) ([]juice.Juice, error)
}
