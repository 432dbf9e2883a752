package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ap-collections/backoffice/internal/platform/db"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrDuplicateNo = errors.New("order no already exists")
	ErrNoItems     = errors.New("order must have at least one item")
	ErrInvalid     = errors.New("invalid order")
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Order, error)
	GetDetails(ctx context.Context, id int64) (*OrderWithDetails, error)
	GetItems(ctx context.Context, orderID int64) ([]OrderItem, error)
	List(ctx context.Context, req ListOrdersRequest) ([]OrderWithDetails, error)
	OrderNoExists(ctx context.Context, orderNo string, excludeID int64) (bool, error)
	Insert(ctx context.Context, o Order) (int64, error)
	Update(ctx context.Context, id int64, o Order) error
	Delete(ctx context.Context, id int64) error
	InsertItem(ctx context.Context, item OrderItem) (int64, error)
	DeleteItems(ctx context.Context, orderID int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

// WithTx runs fn against a repository bound to one transaction. Commit on
// nil, rollback otherwise.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const orderColumns = `id, date, order_no, customer_id, ttl_quantity, ttl_amount, discount, sub_total,
	delivery_address, delivery_charges, payment_type_id, paid_amount, measurement,
	is_delivered, delivery_date, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.Date, &o.OrderNo, &o.CustomerID, &o.TTLQuantity, &o.TTLAmount, &o.Discount, &o.SubTotal,
		&o.DeliveryAddress, &o.DeliveryCharges, &o.PaymentTypeID, &o.PaidAmount, &o.Measurement,
		&o.IsDelivered, &o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("orders: scan: %w", err)
	}
	o.RefreshBalanceDue()
	return &o, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	items, err := r.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// GetDetails loads one denormalized row from v_orders, items included.
func (r *repository) GetDetails(ctx context.Context, id int64) (*OrderWithDetails, error) {
	var o OrderWithDetails
	err := r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`,
			customer_serial_no, customer_name, customer_phone,
			customer_city, customer_state_region, customer_country, payment_type_name
		FROM v_orders
		WHERE id = $1`, id).Scan(
		&o.ID, &o.Date, &o.OrderNo, &o.CustomerID, &o.TTLQuantity, &o.TTLAmount, &o.Discount, &o.SubTotal,
		&o.DeliveryAddress, &o.DeliveryCharges, &o.PaymentTypeID, &o.PaidAmount, &o.Measurement,
		&o.IsDelivered, &o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt,
		&o.CustomerSerialNo, &o.CustomerName, &o.CustomerPhone,
		&o.CustomerCity, &o.CustomerStateRegion, &o.CustomerCountry, &o.PaymentTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("orders: get details: %w", err)
	}
	o.RefreshBalanceDue()
	items, err := r.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *repository) GetItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.stock_category_id, sc.name, oi.quantity, oi.unit_price, oi.extra, oi.description, oi.amount
		FROM order_items oi
		JOIN stock_categories sc ON oi.stock_category_id = sc.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("orders: get items: %w", err)
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.StockCategoryID, &it.StockCategoryName,
			&it.Quantity, &it.UnitPrice, &it.Extra, &it.Description, &it.Amount); err != nil {
			return nil, fmt.Errorf("orders: scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List reads the denormalized v_orders view, optionally constrained to a
// single day and/or a substring search across the visible text columns.
func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]OrderWithDetails, error) {
	query := `
		SELECT ` + orderColumns + `,
			customer_serial_no, customer_name, customer_phone,
			customer_city, customer_state_region, customer_country, payment_type_name
		FROM v_orders
		WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if req.Date != nil {
		query += fmt.Sprintf(" AND date >= $%d AND date < $%d + INTERVAL '1 day'", argPos, argPos)
		args = append(args, req.Date.Format("2006-01-02"))
		argPos++
	}
	if req.SearchTerm != "" {
		query += fmt.Sprintf(`
			AND (order_no ILIKE $%d
				OR customer_serial_no ILIKE $%d
				OR customer_name ILIKE $%d
				OR customer_phone ILIKE $%d
				OR customer_city ILIKE $%d
				OR customer_state_region ILIKE $%d
				OR customer_country ILIKE $%d
				OR payment_type_name ILIKE $%d)`,
			argPos, argPos, argPos, argPos, argPos, argPos, argPos, argPos)
		args = append(args, "%"+req.SearchTerm+"%")
		argPos++
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	defer rows.Close()

	var result []OrderWithDetails
	for rows.Next() {
		var o OrderWithDetails
		if err := rows.Scan(
			&o.ID, &o.Date, &o.OrderNo, &o.CustomerID, &o.TTLQuantity, &o.TTLAmount, &o.Discount, &o.SubTotal,
			&o.DeliveryAddress, &o.DeliveryCharges, &o.PaymentTypeID, &o.PaidAmount, &o.Measurement,
			&o.IsDelivered, &o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt,
			&o.CustomerSerialNo, &o.CustomerName, &o.CustomerPhone,
			&o.CustomerCity, &o.CustomerStateRegion, &o.CustomerCountry, &o.PaymentTypeName,
		); err != nil {
			return nil, fmt.Errorf("orders: scan listing: %w", err)
		}
		o.RefreshBalanceDue()
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *repository) OrderNoExists(ctx context.Context, orderNo string, excludeID int64) (bool, error) {
	query := `SELECT 1 FROM orders WHERE LOWER(order_no) = LOWER($1)`
	args := []interface{}{orderNo}
	if excludeID > 0 {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}
	var one int
	err := r.db.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("orders: order no exists: %w", err)
	}
	return true, nil
}

func (r *repository) Insert(ctx context.Context, o Order) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (date, order_no, customer_id, ttl_quantity, ttl_amount, discount, sub_total,
			delivery_address, delivery_charges, payment_type_id, paid_amount, measurement,
			is_delivered, delivery_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id`,
		o.Date, o.OrderNo, o.CustomerID, o.TTLQuantity, o.TTLAmount, o.Discount, o.SubTotal,
		o.DeliveryAddress, o.DeliveryCharges, o.PaymentTypeID, o.PaidAmount, o.Measurement,
		o.IsDelivered, o.DeliveryDate,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateNo
		}
		return 0, fmt.Errorf("orders: insert: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, o Order) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET date = $1, customer_id = $2, ttl_quantity = $3, ttl_amount = $4, discount = $5,
			sub_total = $6, delivery_address = $7, delivery_charges = $8, payment_type_id = $9,
			paid_amount = $10, measurement = $11, updated_at = NOW()
		WHERE id = $12`,
		o.Date, o.CustomerID, o.TTLQuantity, o.TTLAmount, o.Discount,
		o.SubTotal, o.DeliveryAddress, o.DeliveryCharges, o.PaymentTypeID,
		o.PaidAmount, o.Measurement, id,
	)
	if err != nil {
		return fmt.Errorf("orders: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("orders: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) InsertItem(ctx context.Context, item OrderItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO order_items (order_id, stock_category_id, quantity, unit_price, extra, description, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		item.OrderID, item.StockCategoryID, item.Quantity, item.UnitPrice, item.Extra, item.Description, item.Amount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("orders: insert item: %w", err)
	}
	return id, nil
}

func (r *repository) DeleteItems(ctx context.Context, orderID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("orders: delete items: %w", err)
	}
	return nil
}
