package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/quickjuice/backend/internal/dal/postgres"
	"github.com/quickjuice/backend/internal/service/models/order"
	"github.com/quickjuice/backend/internal/service/models/orderitem"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id                int64     `db:"id"`
	CustomerName      string    `db:"customer_name"`
	CustomerEmail     string    `db:"customer_email"`
	CustomerPhone     string    `db:"customer_phone"`
	DeliveryAddress   string    `db:"delivery_address"`
	PaymentMethod     string    `db:"payment_method"`
	Notes             string    `db:"notes"`
	TotalCents        int64     `db:"total_cents"`
	Status            string    `db:"status"`
	EstimatedDelivery time.Time `db:"estimated_delivery"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID: o.Id,
		Customer: order.Customer{
			Name:  o.CustomerName,
			Email: o.CustomerEmail,
			Phone: o.CustomerPhone,
		},
		DeliveryAddress:   o.DeliveryAddress,
		PaymentMethod:     o.PaymentMethod,
		Notes:             o.Notes,
		TotalCents:        o.TotalCents,
		Status:            status,
		EstimatedDelivery: o.EstimatedDelivery,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Items:             []orderitem.OrderItem{}, // Populated separately
	}, nil
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:                o.ID,
		CustomerName:      o.Customer.Name,
		CustomerEmail:     o.Customer.Email,
		CustomerPhone:     o.Customer.Phone,
		DeliveryAddress:   o.DeliveryAddress,
		PaymentMethod:     o.PaymentMethod,
		Notes:             o.Notes,
		TotalCents:        o.TotalCents,
		Status:            o.Status.String(),
		EstimatedDelivery: o.EstimatedDelivery,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

var orderColumns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"delivery_address",
	"payment_method",
	"notes",
	"total_cents",
	"status",
	"estimated_delivery",
	"created_at",
	"updated_at",
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.CustomerName,
		&dal.CustomerEmail,
		&dal.CustomerPhone,
		&dal.DeliveryAddress,
		&dal.PaymentMethod,
		&dal.Notes,
		&dal.TotalCents,
		&dal.Status,
		&dal.EstimatedDelivery,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert inserts an order and returns the stored row.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	dal := OrderDalFromModel(&o)

	sql, args, err := r.sb.
		Insert("orders").
		Columns(
			"customer_name",
			"customer_email",
			"customer_phone",
			"delivery_address",
			"payment_method",
			"notes",
			"total_cents",
			"status",
			"estimated_delivery",
			"created_at",
			"updated_at",
		).
		Values(
			dal.CustomerName,
			dal.CustomerEmail,
			dal.CustomerPhone,
			dal.DeliveryAddress,
			dal.PaymentMethod,
			dal.Notes,
			dal.TotalCents,
			dal.Status,
			dal.EstimatedDelivery,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	model, err := scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return model, nil
}

// GetByID retrieves a single order by id.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	sql, args, err := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	model, err := scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return model, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": filter.Status})
	}

	if filter.CustomerEmail != "" {
		query = query.Where(sq.Eq{"customer_email": filter.CustomerEmail})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus overwrites the status of an order and returns the stored row.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status order.Status,
) (*order.Order, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", status.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	model, err := scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return model, nil
}

// Delete removes an order by id.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.
		Delete("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// Count returns the number of orders.
func (r *PostgresOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.conn.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// RevenueCents returns the revenue over all non-cancelled orders.
func (r *PostgresOrderRepository) RevenueCents(ctx context.Context) (int64, error) {
	var total int64
	sql := `SELECT coalesce(sum(total_cents), 0) FROM orders WHERE status <> $1`
	if err := r.conn.QueryRow(ctx, sql, order.StatusCancelled.String()).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum order revenue: %w", err)
	}

	return total, nil
}
