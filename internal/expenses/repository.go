package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("expense not found")
	ErrInvalid  = errors.New("invalid expense")
)

// Repository defines persistence operations for expenses.
type Repository interface {
	List(ctx context.Context, req ListExpensesRequest) ([]ExpenseWithType, error)
	Get(ctx context.Context, id int64) (*Expense, error)
	Create(ctx context.Context, e Expense) (int64, error)
	Update(ctx context.Context, id int64, e Expense) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// List reads the denormalized v_expenses view with optional date range and
// substring search over type name and description.
func (r *repository) List(ctx context.Context, req ListExpensesRequest) ([]ExpenseWithType, error) {
	query := `
		SELECT id, date, expense_type_id, description, amount, created_at, updated_at, expense_type_name
		FROM v_expenses
		WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if req.DateFrom != nil {
		query += fmt.Sprintf(` AND date >= $%d`, argPos)
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		query += fmt.Sprintf(` AND date <= $%d`, argPos)
		args = append(args, *req.DateTo)
		argPos++
	}
	if req.SearchTerm != "" {
		query += fmt.Sprintf(` AND (expense_type_name ILIKE $%d OR description ILIKE $%d)`, argPos, argPos)
		args = append(args, "%"+req.SearchTerm+"%")
		argPos++
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("expenses: list: %w", err)
	}
	defer rows.Close()

	var result []ExpenseWithType
	for rows.Next() {
		var e ExpenseWithType
		if err := rows.Scan(&e.ID, &e.Date, &e.ExpenseTypeID, &e.Description, &e.Amount,
			&e.CreatedAt, &e.UpdatedAt, &e.ExpenseTypeName); err != nil {
			return nil, fmt.Errorf("expenses: scan: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Expense, error) {
	var e Expense
	err := r.pool.QueryRow(ctx, `
		SELECT id, date, expense_type_id, description, amount, created_at, updated_at
		FROM expenses WHERE id = $1`, id).Scan(
		&e.ID, &e.Date, &e.ExpenseTypeID, &e.Description, &e.Amount, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("expenses: get: %w", err)
	}
	return &e, nil
}

func (r *repository) Create(ctx context.Context, e Expense) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (date, expense_type_id, description, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`,
		e.Date, e.ExpenseTypeID, e.Description, e.Amount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("expenses: create: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, e Expense) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE expenses
		SET date = $1, expense_type_id = $2, description = $3, amount = $4, updated_at = NOW()
		WHERE id = $5`,
		e.Date, e.ExpenseTypeID, e.Description, e.Amount, id,
	)
	if err != nil {
		return fmt.Errorf("expenses: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("expenses: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
