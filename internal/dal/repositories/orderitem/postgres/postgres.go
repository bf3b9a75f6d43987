package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/quickjuice/backend/internal/dal/postgres"
	"github.com/quickjuice/backend/internal/service/models/orderitem"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id         int64     `db:"id"`
	OrderId    int64     `db:"order_id"`
	JuiceId    int64     `db:"juice_id"`
	Quantity   int       `db:"quantity"`
	JuiceName  string    `db:"juice_name"`
	JuiceImage string    `db:"juice_image"`
	PriceCents int64     `db:"price_cents"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:         oi.Id,
		OrderID:    oi.OrderId,
		JuiceID:    oi.JuiceId,
		Quantity:   oi.Quantity,
		JuiceName:  oi.JuiceName,
		JuiceImage: oi.JuiceImage,
		PriceCents: oi.PriceCents,
		CreatedAt:  oi.CreatedAt,
		UpdatedAt:  oi.UpdatedAt,
	}
}

var orderItemColumns = []string{
	"id",
	"order_id",
	"juice_id",
	"quantity",
	"juice_name",
	"juice_image",
	"price_cents",
	"created_at",
	"updated_at",
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Querier) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanOrderItem(row pgx.Row) (*orderitem.OrderItem, error) {
	var dal OrderItemDal
	err := row.Scan(
		&dal.Id,
		&dal.OrderId,
		&dal.JuiceId,
		&dal.Quantity,
		&dal.JuiceName,
		&dal.JuiceImage,
		&dal.PriceCents,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel(), nil
}

// BulkInsert inserts multiple order items and returns the inserted items with IDs.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query := r.sb.
		Insert("order_items").
		Columns(
			"order_id",
			"juice_id",
			"quantity",
			"juice_name",
			"juice_image",
			"price_cents",
			"created_at",
			"updated_at",
		).
		Suffix("RETURNING " + strings.Join(orderItemColumns, ", "))

	for _, item := range items {
		query = query.Values(
			item.OrderID,
			item.JuiceID,
			item.Quantity,
			item.JuiceName,
			item.JuiceImage,
			item.PriceCents,
			item.CreatedAt,
			item.UpdatedAt,
		)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		model, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select(orderItemColumns...).
		From("order_items")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

	if len(filter.JuiceIds) > 0 {
		query = query.Where(sq.Eq{"juice_id": filter.JuiceIds})
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
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	result := []orderitem.OrderItem{}
	for rows.Next() {
		model, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DeleteByOrderID removes all items belonging to an order.
func (r *PostgresOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	sql, args, err := r.sb.
		Delete("order_items").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	return nil
}
