package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/quickjuice/backend/internal/dal/postgres"
	"github.com/quickjuice/backend/internal/service/models/juice"
)

// JuiceDal represents juice data access layer model.
type JuiceDal struct {
	Id           int64     `db:"id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	About        string    `db:"about"`
	PriceCents   int64     `db:"price_cents"`
	Image        string    `db:"image"`
	Category     string    `db:"category"`
	Ingredients  []string  `db:"ingredients"`
	Tags         []string  `db:"tags"`
	Nutrition    []byte    `db:"nutrition"`
	Availability bool      `db:"availability"`
	Stock        int       `db:"stock"`
	Featured     bool      `db:"featured"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ToModel converts JuiceDal to service layer Juice model.
func (j *JuiceDal) ToModel() (*juice.Juice, error) {
	cat, err := juice.ParseCategory(j.Category)
	if err != nil {
		return nil, err
	}

	var nutrition juice.Nutrition
	if len(j.Nutrition) > 0 {
		if err := json.Unmarshal(j.Nutrition, &nutrition); err != nil {
			return nil, fmt.Errorf("failed to decode nutrition: %w", err)
		}
	}

	return &juice.Juice{
		ID:           j.Id,
		Name:         j.Name,
		Description:  j.Description,
		About:        j.About,
		PriceCents:   j.PriceCents,
		Image:        j.Image,
		Category:     cat,
		Ingredients:  j.Ingredients,
		Tags:         j.Tags,
		Nutrition:    nutrition,
		Availability: j.Availability,
		Stock:        j.Stock,
		Featured:     j.Featured,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}, nil
}

// JuiceDalFromModel converts service layer Juice model to JuiceDal.
func JuiceDalFromModel(j *juice.Juice) (*JuiceDal, error) {
	nutrition, err := json.Marshal(j.Nutrition)
	if err != nil {
		return nil, fmt.Errorf("failed to encode nutrition: %w", err)
	}

	return &JuiceDal{
		Id:           j.ID,
		Name:         j.Name,
		Description:  j.Description,
		About:        j.About,
		PriceCents:   j.PriceCents,
		Image:        j.Image,
		Category:     j.Category.String(),
		Ingredients:  j.Ingredients,
		Tags:         j.Tags,
		Nutrition:    nutrition,
		Availability: j.Availability,
		Stock:        j.Stock,
		Featured:     j.Featured,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}, nil
}

var juiceColumns = []string{
	"id",
	"name",
	"description",
	"about",
	"price_cents",
	"image",
	"category",
	"ingredients",
	"tags",
	"nutrition",
	"availability",
	"stock",
	"featured",
	"created_at",
	"updated_at",
}

// PostgresJuiceRepository represents a Postgres juice repository.
type PostgresJuiceRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresJuiceRepository creates a new Postgres juice repository.
func NewPostgresJuiceRepository(conn postgres.Querier) *PostgresJuiceRepository {
	return &PostgresJuiceRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanJuice(row pgx.Row) (*juice.Juice, error) {
	var dal JuiceDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.About,
		&dal.PriceCents,
		&dal.Image,
		&dal.Category,
		&dal.Ingredients,
		&dal.Tags,
		&dal.Nutrition,
		&dal.Availability,
		&dal.Stock,
		&dal.Featured,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// GetByID retrieves a single juice by id.
func (r *PostgresJuiceRepository) GetByID(ctx context.Context, id int64) (*juice.Juice, error) {
	sql, args, err := r.sb.
		Select(juiceColumns...).
		From("juices").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	model, err := scanJuice(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, juice.ErrJuiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get juice: %w", err)
	}

	return model, nil
}

// Query retrieves juices based on filter criteria, newest first.
func (r *PostgresJuiceRepository) Query(
	ctx context.Context,
	filter *juice.QueryJuicesModel,
) ([]juice.Juice, error) {
	query := r.sb.
		Select(juiceColumns...).
		From("juices").
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if filter.Category != "" {
		query = query.Where(sq.Eq{"category": filter.Category})
	}

	if filter.Availability != nil {
		query = query.Where(sq.Eq{"availability": *filter.Availability})
	}

	if filter.Featured != nil {
		query = query.Where(sq.Eq{"featured": *filter.Featured})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
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
		return nil, fmt.Errorf("failed to query juices: %w", err)
	}
	defer rows.Close()

	result := []juice.Juice{}
	for rows.Next() {
		model, err := scanJuice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan juice: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert inserts a juice and returns the stored row.
func (r *PostgresJuiceRepository) Insert(ctx context.Context, j juice.Juice) (*juice.Juice, error) {
	dal, err := JuiceDalFromModel(&j)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.sb.
		Insert("juices").
		Columns(
			"name",
			"description",
			"about",
			"price_cents",
			"image",
			"category",
			"ingredients",
			"tags",
			"nutrition",
			"availability",
			"stock",
			"featured",
			"created_at",
			"updated_at",
		).
		Values(
			dal.Name,
			dal.Description,
			dal.About,
			dal.PriceCents,
			dal.Image,
			dal.Category,
			dal.Ingredients,
			dal.Tags,
			dal.Nutrition,
			dal.Availability,
			dal.Stock,
			dal.Featured,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix("RETURNING " + returningJuiceColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	model, err := scanJuice(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert juice: %w", err)
	}

	return model, nil
}

// Update overwrites a juice row and returns the stored row.
func (r *PostgresJuiceRepository) Update(ctx context.Context, j juice.Juice) (*juice.Juice, error) {
	dal, err := JuiceDalFromModel(&j)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.sb.
		Update("juices").
		Set("name", dal.Name).
		Set("description", dal.Description).
		Set("about", dal.About).
		Set("price_cents", dal.PriceCents).
		Set("image", dal.Image).
		Set("category", dal.Category).
		Set("ingredients", dal.Ingredients).
		Set("tags", dal.Tags).
		Set("nutrition", dal.Nutrition).
		Set("availability", dal.Availability).
		Set("stock", dal.Stock).
		Set("featured", dal.Featured).
		Set("updated_at", dal.UpdatedAt).
		Where(sq.Eq{"id": dal.Id}).
		Suffix("RETURNING " + returningJuiceColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	model, err := scanJuice(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, juice.ErrJuiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update juice: %w", err)
	}

	return model, nil
}

// Delete removes a juice by id.
func (r *PostgresJuiceRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.
		Delete("juices").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete juice: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return juice.ErrJuiceNotFound
	}

	return nil
}

// UpdateStock adjusts stock by delta. The WHERE guard makes the adjustment
// conditional, so a decrement that would drive stock negative affects no rows
// and two concurrent decrements can never oversell: the row lock held by the
// first update forces the second to re-check the guard after commit.
func (r *PostgresJuiceRepository) UpdateStock(ctx context.Context, id int64, delta int) error {
	sql := `
		UPDATE juices
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
	`

	tag, err := r.conn.Exec(ctx, sql, id, delta)
	if err != nil {
		return fmt.Errorf("failed to update juice stock: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguish a missing juice from an insufficient balance.
	var stock int
	err = r.conn.QueryRow(ctx, `SELECT stock FROM juices WHERE id = $1`, id).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return juice.ErrJuiceNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read juice stock: %w", err)
	}

	return &juice.InsufficientStockError{
		JuiceID:   id,
		Available: stock,
		Requested: -delta,
	}
}

// Count returns the number of juices in the catalog.
func (r *PostgresJuiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.conn.QueryRow(ctx, `SELECT count(*) FROM juices`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count juices: %w", err)
	}

	return count, nil
}

// LowStock retrieves juices with stock below the threshold.
func (r *PostgresJuiceRepository) LowStock(ctx context.Context, threshold int) ([]juice.Juice, error) {
	sql, args, err := r.sb.
		Select(juiceColumns...).
		From("juices").
		Where(sq.Lt{"stock": threshold}).
		OrderBy("stock ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock juices: %w", err)
	}
	defer rows.Close()

	result := []juice.Juice{}
	for rows.Next() {
		model, err := scanJuice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan juice: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func returningJuiceColumns() string {
	return strings.Join(juiceColumns, ", ")
}
