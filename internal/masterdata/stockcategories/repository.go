package stockcategories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ap-collections/backoffice/internal/masterdata/shared"
)

// Repository defines persistence operations for stock categories.
type Repository interface {
	List(ctx context.Context, searchTerm string) ([]StockCategory, error)
	Get(ctx context.Context, id int64) (StockCategory, error)
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	ReferenceCount(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, searchTerm string) ([]StockCategory, error) {
	query := `SELECT id, name FROM stock_categories`
	args := []interface{}{}
	if searchTerm != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+searchTerm+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stockcategories: list: %w", err)
	}
	defer rows.Close()

	var result []StockCategory
	for rows.Next() {
		var pt StockCategory
		if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, fmt.Errorf("stockcategories: scan: %w", err)
		}
		result = append(result, pt)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (StockCategory, error) {
	var pt StockCategory
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM stock_categories WHERE id = $1`, id).Scan(&pt.ID, &pt.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StockCategory{}, shared.ErrNotFound
		}
		return StockCategory{}, fmt.Errorf("stockcategories: get: %w", err)
	}
	return pt, nil
}

func (r *repository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `SELECT 1 FROM stock_categories WHERE LOWER(name) = LOWER($1)`
	args := []interface{}{name}
	if excludeID > 0 {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}
	var one int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stockcategories: name exists: %w", err)
	}
	return true, nil
}

func (r *repository) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO stock_categories (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, shared.ErrDuplicate
		}
		return 0, fmt.Errorf("stockcategories: create: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE stock_categories SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shared.ErrDuplicate
		}
		return fmt.Errorf("stockcategories: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stock_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("stockcategories: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReferenceCount counts order items still pointing at the stock category.
func (r *repository) ReferenceCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_items WHERE stock_category_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("stockcategories: reference count: %w", err)
	}
	return count, nil
}
