package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the raw rows the aggregation works on.
type Repository interface {
	OrderRows(ctx context.Context, from, to time.Time) ([]OrderRow, error)
	ExpenseRows(ctx context.Context, from, to time.Time) ([]ExpenseRow, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// OrderRows returns one row per order line in [from, to), header figures
// repeated on each line.
func (r *repository) OrderRows(ctx context.Context, from, to time.Time) ([]OrderRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.order_no, o.date, o.paid_amount, o.ttl_quantity,
			c.name, c.city, c.country, pt.name, sc.name, oi.quantity, oi.amount
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN customers c ON o.customer_id = c.id
		JOIN payment_types pt ON o.payment_type_id = pt.id
		JOIN stock_categories sc ON oi.stock_category_id = sc.id
		WHERE o.date >= $1 AND o.date < $2
		ORDER BY o.date, o.id, oi.id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports: order rows: %w", err)
	}
	defer rows.Close()

	var result []OrderRow
	for rows.Next() {
		var row OrderRow
		if err := rows.Scan(&row.OrderID, &row.OrderNo, &row.Date, &row.PaidAmount, &row.TTLQuantity,
			&row.CustomerName, &row.City, &row.Country, &row.PaymentType, &row.StockCategory,
			&row.Quantity, &row.ItemAmount); err != nil {
			return nil, fmt.Errorf("reports: scan order row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *repository) ExpenseRows(ctx context.Context, from, to time.Time) ([]ExpenseRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.date, et.name, e.amount
		FROM expenses e
		JOIN expense_types et ON e.expense_type_id = et.id
		WHERE e.date >= $1 AND e.date < $2
		ORDER BY e.date, e.id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports: expense rows: %w", err)
	}
	defer rows.Close()

	var result []ExpenseRow
	for rows.Next() {
		var row ExpenseRow
		if err := rows.Scan(&row.Date, &row.ExpenseType, &row.Amount); err != nil {
			return nil, fmt.Errorf("reports: scan expense row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
