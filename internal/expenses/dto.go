package expenses

import "time"

// ExpenseInput creates or fully replaces an expense.
type ExpenseInput struct {
	Date          time.Time `json:"date" validate:"required"`
	ExpenseTypeID int64     `json:"expense_type_id" validate:"required,gt=0"`
	Description   string    `json:"description" validate:"max=200"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
}

// ListExpensesRequest filters the expense listing. Zero values mean no
// constraint for that field.
type ListExpensesRequest struct {
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	SearchTerm string     `json:"search_term,omitempty"`
}
