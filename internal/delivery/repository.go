package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ap-collections/backoffice/internal/orders"
)

var ErrNotFound = errors.New("delivery: order not found")

// State selects which side of the delivery flag a listing shows.
type State string

const (
	StateUndelivered State = "undelivered"
	StateDelivered   State = "delivered"
)

// Filter constrains the consolidated delivery listing. Zero values mean no
// constraint for that field.
type Filter struct {
	State         State
	DueBy         *time.Time
	OrderDateFrom *time.Time
	OrderDateTo   *time.Time
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        string
}

// Repository defines persistence operations for the delivery workflow.
type Repository interface {
	List(ctx context.Context, f Filter) ([]orders.OrderWithDetails, error)
	MarkDelivered(ctx context.Context, orderID int64, deliveredOn time.Time) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, f Filter) ([]orders.OrderWithDetails, error) {
	query := `
		SELECT id, date, order_no, customer_id, ttl_quantity, ttl_amount, discount, sub_total,
			delivery_address, delivery_charges, payment_type_id, paid_amount, measurement,
			is_delivered, delivery_date, created_at, updated_at,
			customer_serial_no, customer_name, customer_phone,
			customer_city, customer_state_region, customer_country, payment_type_name
		FROM v_orders
		WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	switch f.State {
	case StateUndelivered:
		query += ` AND is_delivered = FALSE`
	case StateDelivered:
		query += ` AND is_delivered = TRUE`
	}
	if f.DueBy != nil {
		query += fmt.Sprintf(` AND delivery_date <= $%d`, argPos)
		args = append(args, *f.DueBy)
		argPos++
	}
	if f.OrderDateFrom != nil {
		query += fmt.Sprintf(` AND date >= $%d`, argPos)
		args = append(args, *f.OrderDateFrom)
		argPos++
	}
	if f.OrderDateTo != nil {
		query += fmt.Sprintf(` AND date <= $%d`, argPos)
		args = append(args, *f.OrderDateTo)
		argPos++
	}
	if f.DateFrom != nil {
		query += fmt.Sprintf(` AND delivery_date >= $%d`, argPos)
		args = append(args, *f.DateFrom)
		argPos++
	}
	if f.DateTo != nil {
		query += fmt.Sprintf(` AND delivery_date <= $%d`, argPos)
		args = append(args, *f.DateTo)
		argPos++
	}
	if f.Search != "" {
		query += fmt.Sprintf(`
			AND (order_no ILIKE $%d
				OR customer_serial_no ILIKE $%d
				OR customer_name ILIKE $%d
				OR customer_phone ILIKE $%d
				OR delivery_address ILIKE $%d
				OR customer_city ILIKE $%d)`,
			argPos, argPos, argPos, argPos, argPos, argPos)
		args = append(args, "%"+f.Search+"%")
		argPos++
	}
	query += ` ORDER BY delivery_date, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("delivery: list: %w", err)
	}
	defer rows.Close()

	var result []orders.OrderWithDetails
	for rows.Next() {
		var o orders.OrderWithDetails
		if err := rows.Scan(
			&o.ID, &o.Date, &o.OrderNo, &o.CustomerID, &o.TTLQuantity, &o.TTLAmount, &o.Discount, &o.SubTotal,
			&o.DeliveryAddress, &o.DeliveryCharges, &o.PaymentTypeID, &o.PaidAmount, &o.Measurement,
			&o.IsDelivered, &o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt,
			&o.CustomerSerialNo, &o.CustomerName, &o.CustomerPhone,
			&o.CustomerCity, &o.CustomerStateRegion, &o.CustomerCountry, &o.PaymentTypeName,
		); err != nil {
			return nil, fmt.Errorf("delivery: scan: %w", err)
		}
		o.RefreshBalanceDue()
		result = append(result, o)
	}
	return result, rows.Err()
}

// MarkDelivered is last-write-wins; re-marking an already delivered order
// just refreshes the delivery date.
func (r *repository) MarkDelivered(ctx context.Context, orderID int64, deliveredOn time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET is_delivered = TRUE, delivery_date = $1, updated_at = NOW()
		WHERE id = $2`, deliveredOn, orderID)
	if err != nil {
		return fmt.Errorf("delivery: mark delivered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
