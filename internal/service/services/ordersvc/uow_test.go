package ordersvc

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quickjuice/backend/internal/dal/interfaces/ijuicerepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/iorderitemrepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/iorderrepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/ioutboxrepo"
	"github.com/quickjuice/backend/internal/service/models/juice"
	"github.com/quickjuice/backend/internal/service/models/order"
	"github.com/quickjuice/backend/internal/service/models/orderitem"
	"github.com/quickjuice/backend/internal/service/models/outbox"
)

// fakeState is a snapshot of the fake database.
type fakeState struct {
	juices map[int64]juice.Juice
	orders map[int64]order.Order
	items  map[int64]orderitem.OrderItem
	outbox []outbox.Message
}

func newFakeState() *fakeState {
	return &fakeState{
		juices: map[int64]juice.Juice{},
		orders: map[int64]order.Order{},
		items:  map[int64]orderitem.OrderItem{},
	}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for id, j := range s.juices {
		c.juices[id] = j
	}
	for id, o := range s.orders {
		c.orders[id] = o
	}
	for id, it := range s.items {
		c.items[id] = it
	}
	c.outbox = append(c.outbox, s.outbox...)

	return c
}

// fakeStore is an in-memory stand-in for Postgres. Begin takes the store
// lock and stages a copy of the state, Commit swaps it in, Rollback discards
// it, so transactions are serialized the way contended row locks serialize
// them in the real repository.
type fakeStore struct {
	mu     sync.Mutex
	state  *fakeState
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: newFakeState()}
}

func (s *fakeStore) newID() int64 {
	return atomic.AddInt64(&s.nextID, 1)
}

func (s *fakeStore) addJuice(j juice.Juice) juice.Juice {
	j.ID = s.newID()
	s.state.juices[j.ID] = j

	return j
}

func (s *fakeStore) service() *OrderService {
	return &OrderService{
		newUOW: func() unitOfWork {
			return &fakeUOW{store: s}
		},
	}
}

type fakeUOW struct {
	store  *fakeStore
	staged *fakeState
	inTx   bool
}

func (u *fakeUOW) Begin(context.Context) error {
	u.store.mu.Lock()
	u.staged = u.store.state.clone()
	u.inTx = true

	return nil
}

func (u *fakeUOW) Commit(context.Context) error {
	u.store.state = u.staged
	u.staged = nil
	u.inTx = false
	u.store.mu.Unlock()

	return nil
}

func (u *fakeUOW) Rollback(context.Context) error {
	if !u.inTx {
		return nil
	}
	u.staged = nil
	u.inTx = false
	u.store.mu.Unlock()

	return nil
}

// view returns the staged state inside a transaction and the committed state
// outside one.
func (u *fakeUOW) view() *fakeState {
	if u.inTx {
		return u.staged
	}

	return u.store.state
}

func (u *fakeUOW) JuiceRepository() ijuicerepo.IJuiceRepository {
	return &fakeJuiceRepo{uow: u}
}

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository {
	return &fakeOrderRepo{uow: u}
}

func (u *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return &fakeOrderItemRepo{uow: u}
}

func (u *fakeUOW) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return &fakeOutboxRepo{uow: u}
}

type fakeJuiceRepo struct {
	uow *fakeUOW
}

func (r *fakeJuiceRepo) GetByID(_ context.Context, id int64) (*juice.Juice, error) {
	j, ok := r.uow.view().juices[id]
	if !ok {
		return nil, juice.ErrJuiceNotFound
	}

	return &j, nil
}

func (r *fakeJuiceRepo) Query(
	_ context.Context,
	_ *juice.QueryJuicesModel,
) ([]juice.Juice, error) {
	out := make([]juice.Juice, 0, len(r.uow.view().juices))
	for _, j := range r.uow.view().juices {
		out = append(out, j)
	}

	return out, nil
}

func (r *fakeJuiceRepo) Insert(_ context.Context, j juice.Juice) (*juice.Juice, error) {
	j.ID = r.uow.store.newID()
	r.uow.view().juices[j.ID] = j

	return &j, nil
}

func (r *fakeJuiceRepo) Update(_ context.Context, j juice.Juice) (*juice.Juice, error) {
	if _, ok := r.uow.view().juices[j.ID]; !ok {
		return nil, juice.ErrJuiceNotFound
	}
	r.uow.view().juices[j.ID] = j

	return &j, nil
}

func (r *fakeJuiceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.uow.view().juices[id]; !ok {
		return juice.ErrJuiceNotFound
	}
	delete(r.uow.view().juices, id)

	return nil
}

func (r *fakeJuiceRepo) UpdateStock(_ context.Context, id int64, delta int) error {
	j, ok := r.uow.view().juices[id]
	if !ok {
		return juice.ErrJuiceNotFound
	}
	if j.Stock+delta < 0 {
		return &juice.InsufficientStockError{
			JuiceID:   id,
			Available: j.Stock,
			Requested: -delta,
		}
	}
	j.Stock += delta
	r.uow.view().juices[id] = j

	return nil
}

func (r *fakeJuiceRepo) Count(context.Context) (int64, error) {
	return int64(len(r.uow.view().juices)), nil
}

func (r *fakeJuiceRepo) LowStock(_ context.Context, threshold int) ([]juice.Juice, error) {
	var out []juice.Juice
	for _, j := range r.uow.view().juices {
		if j.Stock < threshold {
			out = append(out, j)
		}
	}

	return out, nil
}

type fakeOrderRepo struct {
	uow *fakeUOW
}

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	o.ID = r.uow.store.newID()
	o.Items = nil
	r.uow.view().orders[o.ID] = o

	return &o, nil
}

func (r *fakeOrderRepo) Query(
	_ context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	out := []order.Order{}
	for _, o := range r.uow.view().orders {
		if filter.Status != "" && o.Status.String() != filter.Status {
			continue
		}
		if filter.CustomerEmail != "" && o.Customer.Email != filter.CustomerEmail {
			continue
		}
		out = append(out, o)
	}

	return out, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.uow.view().orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}

	return &o, nil
}

func (r *fakeOrderRepo) UpdateStatus(
	_ context.Context,
	id int64,
	status order.Status,
) (*order.Order, error) {
	o, ok := r.uow.view().orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	r.uow.view().orders[id] = o

	return &o, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.uow.view().orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.uow.view().orders, id)

	return nil
}

func (r *fakeOrderRepo) Count(context.Context) (int64, error) {
	return int64(len(r.uow.view().orders)), nil
}

func (r *fakeOrderRepo) RevenueCents(context.Context) (int64, error) {
	var total int64
	for _, o := range r.uow.view().orders {
		if o.Status != order.StatusCancelled {
			total += o.TotalCents
		}
	}

	return total, nil
}

type fakeOrderItemRepo struct {
	uow *fakeUOW
}

func (r *fakeOrderItemRepo) BulkInsert(
	_ context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	out := make([]orderitem.OrderItem, 0, len(items))
	for _, it := range items {
		it.ID = r.uow.store.newID()
		r.uow.view().items[it.ID] = it
		out = append(out, it)
	}

	return out, nil
}

func (r *fakeOrderItemRepo) Query(
	_ context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	out := []orderitem.OrderItem{}
	for _, it := range r.uow.view().items {
		if len(filter.OrderIds) > 0 && !containsID(filter.OrderIds, it.OrderID) {
			continue
		}
		out = append(out, it)
	}

	return out, nil
}

func (r *fakeOrderItemRepo) DeleteByOrderID(_ context.Context, orderID int64) error {
	for id, it := range r.uow.view().items {
		if it.OrderID == orderID {
			delete(r.uow.view().items, id)
		}
	}

	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}

type fakeOutboxRepo struct {
	uow *fakeUOW
}

func (r *fakeOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	msg.ID = r.uow.store.newID()
	r.uow.view().outbox = append(r.uow.view().outbox, msg)

	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(
	_ context.Context,
	limit int,
) ([]outbox.Message, error) {
	msgs := r.uow.view().outbox
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}

	return msgs, nil
}

func (r *fakeOutboxRepo) Delete(_ context.Context, id int64) error {
	msgs := r.uow.view().outbox
	for i, msg := range msgs {
		if msg.ID == id {
			r.uow.view().outbox = append(msgs[:i], msgs[i+1:]...)

			return nil
		}
	}

	return nil
}

func (r *fakeOutboxRepo) UpdateRetry(
	_ context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	msgs := r.uow.view().outbox
	for i := range msgs {
		if msgs[i].ID == id {
			msgs[i].RetryCount = retryCount
			msgs[i].LastError = lastError
			msgs[i].NextRetryAt = nextRetryAt
		}
	}

	return nil
}
