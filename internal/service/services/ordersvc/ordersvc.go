package ordersvc

import (
	"context"
	"errors"
	"time"

	"github.com/quickjuice/backend/internal/dal/interfaces/ijuicerepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/iorderitemrepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/iorderrepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/ioutboxrepo"
	"github.com/quickjuice/backend/internal/dal/postgres"
	"github.com/quickjuice/backend/internal/dal/uow"
	"github.com/quickjuice/backend/internal/metrics"
	"github.com/quickjuice/backend/internal/service/models/juice"
	"github.com/quickjuice/backend/internal/service/models/order"
	"github.com/quickjuice/backend/internal/service/models/orderitem"
)

// deliveryEstimate is the fixed offset added to the placement time.
const deliveryEstimate = 30 * time.Minute

// OrderService is a service for placing orders and driving them through
// their lifecycle.
type OrderService struct {
	pgClient *postgres.Client
	metrics  *metrics.Metrics
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	JuiceRepository() ijuicerepo.IJuiceRepository
	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("ordersvc: postgres client is required")
		}
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithMetrics sets the metrics collectors for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.Metrics) option {
	return func(s *OrderService) {
		s.metrics = m
	}
}

// PlaceOrder validates the proposed items against the catalog, snapshots
// prices, persists the order and reserves stock, all in one transaction. Any
// failure rolls the whole thing back, so no partial order or stock change is
// ever visible.
func (s *OrderService) PlaceOrder(ctx context.Context, o order.Order) (*order.Order, error) {
	if len(o.Items) == 0 {
		return nil, order.ErrNoItems
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	now := time.Now()
	var totalCents int64
	items := make([]orderitem.OrderItem, 0, len(o.Items))

	for _, it := range o.Items {
		j, err := work.JuiceRepository().GetByID(ctx, it.JuiceID)
		if err != nil {
			return nil, err
		}

		if j.Stock < it.Quantity {
			s.countStockRejection()

			return nil, &juice.InsufficientStockError{
				JuiceID:   j.ID,
				Available: j.Stock,
				Requested: it.Quantity,
			}
		}

		totalCents += j.PriceCents * int64(it.Quantity)
		items = append(items, orderitem.OrderItem{
			JuiceID:    j.ID,
			Quantity:   it.Quantity,
			JuiceName:  j.Name,
			JuiceImage: j.Image,
			PriceCents: j.PriceCents,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	o.Status = order.StatusPending
	o.TotalCents = totalCents
	o.EstimatedDelivery = now.Add(deliveryEstimate)
	o.CreatedAt = now
	o.UpdatedAt = now

	created, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = created.ID
	}

	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if err := work.JuiceRepository().UpdateStock(ctx, it.JuiceID, -it.Quantity); err != nil {
			var stockErr *juice.InsufficientStockError
			if errors.As(err, &stockErr) {
				s.countStockRejection()
			}

			return nil, err
		}
	}

	created.Items = items

	msg, err := newOrderMessage(QueueOrderCreated, created)
	if err != nil {
		return nil, err
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
	}

	return created, nil
}

// GetOrders retrieves orders with their items based on filter.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemQuery.OrderIds = append(itemQuery.OrderIds, o.ID)
	}
	items, err := work.OrderItemRepository().Query(ctx, itemQuery)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return orders, nil
}

// GetOrder retrieves a single order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{o.ID},
	})
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

// SetStatus overwrites the status of an order. Only the six recognized
// values are accepted; the transition itself is not constrained.
func (s *OrderService) SetStatus(ctx context.Context, id int64, status string) (*order.Order, error) {
	st, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	updated, err := work.OrderRepository().UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{updated.ID},
	})
	if err != nil {
		return nil, err
	}
	updated.Items = items

	msg, err := newOrderMessage(QueueOrderStatusChanged, updated)
	if err != nil {
		return nil, err
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

// CancelOrder removes an order and returns its stock reservation to the
// pool, unless the order was already delivered: delivered inventory has left
// the business and is never restored.
func (s *OrderService) CancelOrder(ctx context.Context, id int64) error {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer work.Rollback(ctx)

	o, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{o.ID},
	})
	if err != nil {
		return err
	}
	o.Items = items

	if o.Status != order.StatusDelivered {
		for _, it := range items {
			if err := work.JuiceRepository().UpdateStock(ctx, it.JuiceID, it.Quantity); err != nil {
				return err
			}
		}
	}

	if err := work.OrderItemRepository().DeleteByOrderID(ctx, o.ID); err != nil {
		return err
	}

	if err := work.OrderRepository().Delete(ctx, o.ID); err != nil {
		return err
	}

	msg, err := newOrderMessage(QueueOrderCancelled, o)
	if err != nil {
		return err
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.OrdersCancelled.Inc()
	}

	return nil
}

func (s *OrderService) countStockRejection() {
	if s.metrics != nil {
		s.metrics.StockRejections.Inc()
	}
}
