package catalogsvc

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quickjuice/backend/internal/dal/interfaces/ijuicerepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/iorderrepo"
	"github.com/quickjuice/backend/internal/dal/postgres"
	juicerepo "github.com/quickjuice/backend/internal/dal/repositories/juice/postgres"
	orderrepo "github.com/quickjuice/backend/internal/dal/repositories/order/postgres"
	"github.com/quickjuice/backend/internal/service/models/dashboard"
	"github.com/quickjuice/backend/internal/service/models/juice"
	"github.com/quickjuice/backend/internal/service/models/order"
)

const (
	lowStockThreshold = 10
	recentOrdersLimit = 5
)

// CatalogService manages the juice catalog and the admin dashboard.
type CatalogService struct {
	juices ijuicerepo.IJuiceRepository
	orders iorderrepo.IOrderRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.juices == nil || s.orders == nil {
		panic("catalogsvc: repositories are required")
	}

	return s
}

// WithPostgresClient binds the service repositories to the Postgres client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.juices = juicerepo.NewPostgresJuiceRepository(pgClient.Pool())
		s.orders = orderrepo.NewPostgresOrderRepository(pgClient.Pool())
	}
}

// WithRepositories sets the repositories directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRepositories(
	juices ijuicerepo.IJuiceRepository,
	orders iorderrepo.IOrderRepository,
) option {
	return func(s *CatalogService) {
		s.juices = juices
		s.orders = orders
	}
}

// ListJuices retrieves juices matching the filter.
func (s *CatalogService) ListJuices(
	ctx context.Context,
	filter juice.QueryJuicesModel,
) ([]juice.Juice, error) {
	return s.juices.Query(ctx, &filter)
}

// GetJuice retrieves a single juice.
func (s *CatalogService) GetJuice(ctx context.Context, id int64) (*juice.Juice, error) {
	return s.juices.GetByID(ctx, id)
}

// CreateJuice adds a juice to the catalog.
func (s *CatalogService) CreateJuice(ctx context.Context, j juice.Juice) (*juice.Juice, error) {
	now := time.Now()
	j.CreatedAt = now
	j.UpdatedAt = now

	return s.juices.Insert(ctx, j)
}

// UpdateJuice overwrites a catalog entry.
func (s *CatalogService) UpdateJuice(ctx context.Context, j juice.Juice) (*juice.Juice, error) {
	j.UpdatedAt = time.Now()

	return s.juices.Update(ctx, j)
}

// DeleteJuice removes a juice from the catalog.
func (s *CatalogService) DeleteJuice(ctx context.Context, id int64) error {
	return s.juices.Delete(ctx, id)
}

// Dashboard assembles the admin dashboard: aggregate counters, the newest
// orders and the juices running low on stock. The five reads are independent
// so they fan out concurrently.
func (s *CatalogService) Dashboard(ctx context.Context) (*dashboard.Dashboard, error) {
	var (
		totalOrders, revenue, totalJuices int64
		recent                            []order.Order
		lowStock                          []juice.Juice
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		totalOrders, err = s.orders.Count(ctx)

		return err
	})

	g.Go(func() (err error) {
		revenue, err = s.orders.RevenueCents(ctx)

		return err
	})

	g.Go(func() (err error) {
		totalJuices, err = s.juices.Count(ctx)

		return err
	})

	g.Go(func() (err error) {
		recent, err = s.orders.Query(ctx, &order.QueryOrdersModel{Limit: recentOrdersLimit})

		return err
	})

	g.Go(func() (err error) {
		lowStock, err = s.juices.LowStock(ctx, lowStockThreshold)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.Dashboard{
		Stats: dashboard.Stats{
			TotalOrders:       totalOrders,
			TotalRevenueCents: revenue,
			TotalJuices:       totalJuices,
			LowStockCount:     len(lowStock),
		},
		RecentOrders:   recent,
		LowStockJuices: lowStock,
	}, nil
}
