package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("customer not found")
	ErrDuplicate = errors.New("serial no/name already exists")
	ErrInvalid   = errors.New("invalid customer")
)

// Repository defines persistence operations for customers.
type Repository interface {
	List(ctx context.Context, searchTerm string) ([]Customer, error)
	Get(ctx context.Context, id int64) (*Customer, error)
	Exists(ctx context.Context, serialNo, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, c Customer) (int64, error)
	Update(ctx context.Context, id int64, c Customer) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = `id, serial_no, name, phone, home_address, delivery_address, city, state_region, country, created_at, updated_at`

func (r *repository) List(ctx context.Context, searchTerm string) ([]Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []interface{}{}
	if searchTerm != "" {
		query += `
			WHERE serial_no ILIKE $1
				OR name ILIKE $1
				OR phone ILIKE $1
				OR home_address ILIKE $1
				OR delivery_address ILIKE $1
				OR city ILIKE $1
				OR state_region ILIKE $1
				OR country ILIKE $1`
		args = append(args, "%"+searchTerm+"%")
	}
	query += ` ORDER BY serial_no, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("customers: list: %w", err)
	}
	defer rows.Close()

	var result []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(
			&c.ID, &c.SerialNo, &c.Name, &c.Phone, &c.HomeAddress, &c.DeliveryAddress,
			&c.City, &c.StateRegion, &c.Country, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("customers: scan: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id).Scan(
		&c.ID, &c.SerialNo, &c.Name, &c.Phone, &c.HomeAddress, &c.DeliveryAddress,
		&c.City, &c.StateRegion, &c.Country, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("customers: get: %w", err)
	}
	return &c, nil
}

// Exists reports whether a live customer already claims the identity pair.
// excludeID <= 0 means no exclusion.
func (r *repository) Exists(ctx context.Context, serialNo, name string, excludeID int64) (bool, error) {
	query := `SELECT 1 FROM customers WHERE LOWER(serial_no) = LOWER($1) AND LOWER(name) = LOWER($2)`
	args := []interface{}{serialNo, name}
	if excludeID > 0 {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}
	var one int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("customers: exists: %w", err)
	}
	return true, nil
}

func (r *repository) Create(ctx context.Context, c Customer) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (serial_no, name, phone, home_address, delivery_address, city, state_region, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id`,
		c.SerialNo, c.Name, c.Phone, c.HomeAddress, c.DeliveryAddress, c.City, c.StateRegion, c.Country,
	).Scan(&id)
	if err != nil {
		return 0, mapConstraint(err, "customers: create")
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Customer) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE customers
		SET serial_no = $1, name = $2, phone = $3, home_address = $4, delivery_address = $5,
			city = $6, state_region = $7, country = $8, updated_at = NOW()
		WHERE id = $9`,
		c.SerialNo, c.Name, c.Phone, c.HomeAddress, c.DeliveryAddress, c.City, c.StateRegion, c.Country, id,
	)
	if err != nil {
		return mapConstraint(err, "customers: update")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("customers: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// mapConstraint translates a unique violation into ErrDuplicate so the
// constraint stays the source of truth even when the pre-check races.
func mapConstraint(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}
