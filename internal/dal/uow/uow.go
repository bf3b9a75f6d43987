package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quickjuice/backend/internal/dal/interfaces/ijuicerepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/iorderitemrepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/iorderrepo"
	"github.com/quickjuice/backend/internal/dal/interfaces/ioutboxrepo"
	"github.com/quickjuice/backend/internal/dal/postgres"
	juicerepo "github.com/quickjuice/backend/internal/dal/repositories/juice/postgres"
	orderrepo "github.com/quickjuice/backend/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/quickjuice/backend/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/quickjuice/backend/internal/dal/repositories/outbox/postgres"
)

// UnitOfWork binds the repositories to a single pgx transaction so the order
// flows can validate, persist and adjust stock all-or-nothing.
type UnitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	juiceRepo     ijuicerepo.IJuiceRepository
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work over the given Postgres client. Until
// Begin is called the repositories run directly against the pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.Querier) {
	u.juiceRepo = juicerepo.NewPostgresJuiceRepository(conn)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
}

func (u *UnitOfWork) JuiceRepository() ijuicerepo.IJuiceRepository {
	return u.juiceRepo
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

// Begin starts a transaction and rebinds the repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback aborts the transaction. Safe to call after Commit; pgx reports
// ErrTxClosed which is swallowed here.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	if err := u.tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return err
	}

	return nil
}
