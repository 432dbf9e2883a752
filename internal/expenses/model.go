package expenses

import "time"

// Expense is one recorded business outgoing.
type Expense struct {
	ID            int64     `json:"id"`
	Date          time.Time `json:"date"`
	ExpenseTypeID int64     `json:"expense_type_id"`
	Description   string    `json:"description,omitempty"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExpenseWithType is the denormalized listing row (v_expenses projection).
type ExpenseWithType struct {
	Expense
	ExpenseTypeName string `json:"expense_type_name"`
}
