package catalogsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickjuice/backend/internal/service/models/juice"
	"github.com/quickjuice/backend/internal/service/models/order"
	"github.com/quickjuice/backend/internal/service/models/orderitem"
)

type memJuiceRepo struct {
	juices map[int64]juice.Juice
	nextID int64
}

func newMemJuiceRepo() *memJuiceRepo {
	return &memJuiceRepo{juices: map[int64]juice.Juice{}}
}

func (r *memJuiceRepo) add(j juice.Juice) juice.Juice {
	r.nextID++
	j.ID = r.nextID
	r.juices[j.ID] = j

	return j
}

func (r *memJuiceRepo) GetByID(_ context.Context, id int64) (*juice.Juice, error) {
	j, ok := r.juices[id]
	if !ok {
		return nil, juice.ErrJuiceNotFound
	}

	return &j, nil
}

func (r *memJuiceRepo) Query(
	_ context.Context,
	filter *juice.QueryJuicesModel,
) ([]juice.Juice, error) {
	out := []juice.Juice{}
	for _, j := range r.juices {
		if filter.Category != "" && j.Category.String() != filter.Category {
			continue
		}
		if filter.Featured != nil && j.Featured != *filter.Featured {
			continue
		}
		out = append(out, j)
	}

	return out, nil
}

func (r *memJuiceRepo) Insert(_ context.Context, j juice.Juice) (*juice.Juice, error) {
	j = r.add(j)

	return &j, nil
}

func (r *memJuiceRepo) Update(_ context.Context, j juice.Juice) (*juice.Juice, error) {
	if _, ok := r.juices[j.ID]; !ok {
		return nil, juice.ErrJuiceNotFound
	}
	r.juices[j.ID] = j

	return &j, nil
}

func (r *memJuiceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.juices[id]; !ok {
		return juice.ErrJuiceNotFound
	}
	delete(r.juices, id)

	return nil
}

func (r *memJuiceRepo) UpdateStock(_ context.Context, id int64, delta int) error {
	j, ok := r.juices[id]
	if !ok {
		return juice.ErrJuiceNotFound
	}
	if j.Stock+delta < 0 {
		return &juice.InsufficientStockError{JuiceID: id, Available: j.Stock, Requested: -delta}
	}
	j.Stock += delta
	r.juices[id] = j

	return nil
}

func (r *memJuiceRepo) Count(context.Context) (int64, error) {
	return int64(len(r.juices)), nil
}

func (r *memJuiceRepo) LowStock(_ context.Context, threshold int) ([]juice.Juice, error) {
	var out []juice.Juice
	for _, j := range r.juices {
		if j.Stock < threshold {
			out = append(out, j)
		}
	}

	return out, nil
}

type memOrderRepo struct {
	orders map[int64]order.Order
	nextID int64
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[int64]order.Order{}}
}

func (r *memOrderRepo) add(o order.Order) order.Order {
	r.nextID++
	o.ID = r.nextID
	r.orders[o.ID] = o

	return o
}

func (r *memOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	o = r.add(o)

	return &o, nil
}

func (r *memOrderRepo) Query(
	_ context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	out := []order.Order{}
	for _, o := range r.orders {
		out = append(out, o)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}

	return out, nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}

	return &o, nil
}

func (r *memOrderRepo) UpdateStatus(
	_ context.Context,
	id int64,
	status order.Status,
) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	o.Status = status
	r.orders[id] = o

	return &o, nil
}

func (r *memOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.orders, id)

	return nil
}

func (r *memOrderRepo) Count(context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) RevenueCents(context.Context) (int64, error) {
	var total int64
	for _, o := range r.orders {
		if o.Status != order.StatusCancelled {
			total += o.TotalCents
		}
	}

	return total, nil
}

func newTestService() (*CatalogService, *memJuiceRepo, *memOrderRepo) {
	juices := newMemJuiceRepo()
	orders := newMemOrderRepo()

	return MustNewCatalogService(WithRepositories(juices, orders)), juices, orders
}

func TestCreateJuice(t *testing.T) {
	svc, juices, _ := newTestService()

	created, err := svc.CreateJuice(context.Background(), juice.Juice{
		Name:       "Green Detox",
		PriceCents: 450,
		Category:   juice.CategorySmoothie,
		Stock:      20,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Contains(t, juices.juices, created.ID)
}

func TestUpdateJuice(t *testing.T) {
	svc, juices, _ := newTestService()
	j := juices.add(juice.Juice{Name: "Orange", PriceCents: 100, Stock: 5})

	j.PriceCents = 120
	before := time.Now()
	updated, err := svc.UpdateJuice(context.Background(), j)
	require.NoError(t, err)

	assert.Equal(t, int64(120), updated.PriceCents)
	assert.False(t, updated.UpdatedAt.Before(before))

	j.ID = 999
	_, err = svc.UpdateJuice(context.Background(), j)
	require.ErrorIs(t, err, juice.ErrJuiceNotFound)
}

func TestDeleteJuice(t *testing.T) {
	svc, juices, _ := newTestService()
	j := juices.add(juice.Juice{Name: "Orange", PriceCents: 100})

	require.NoError(t, svc.DeleteJuice(context.Background(), j.ID))
	assert.NotContains(t, juices.juices, j.ID)

	require.ErrorIs(t, svc.DeleteJuice(context.Background(), j.ID), juice.ErrJuiceNotFound)
}

func TestListJuicesFiltered(t *testing.T) {
	svc, juices, _ := newTestService()
	juices.add(juice.Juice{Name: "Orange", Category: juice.CategoryFruit})
	juices.add(juice.Juice{Name: "Carrot", Category: juice.CategoryVegetable})

	got, err := svc.ListJuices(context.Background(), juice.QueryJuicesModel{
		Category: juice.CategoryFruit.String(),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Orange", got[0].Name)
}

func TestDashboard(t *testing.T) {
	svc, juices, orders := newTestService()

	juices.add(juice.Juice{Name: "Orange", PriceCents: 100, Stock: 50})
	low := juices.add(juice.Juice{Name: "Beet", PriceCents: 250, Stock: 3})

	orders.add(order.Order{
		Status:     order.StatusConfirmed,
		TotalCents: 300,
		Items:      []orderitem.OrderItem{{JuiceID: 1, Quantity: 3}},
	})
	orders.add(order.Order{Status: order.StatusDelivered, TotalCents: 250})
	orders.add(order.Order{Status: order.StatusCancelled, TotalCents: 500})

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), dash.Stats.TotalOrders)
	assert.Equal(t, int64(550), dash.Stats.TotalRevenueCents)
	assert.Equal(t, int64(2), dash.Stats.TotalJuices)
	assert.Equal(t, 1, dash.Stats.LowStockCount)

	require.Len(t, dash.LowStockJuices, 1)
	assert.Equal(t, low.ID, dash.LowStockJuices[0].ID)
	assert.Len(t, dash.RecentOrders, 3)
}
