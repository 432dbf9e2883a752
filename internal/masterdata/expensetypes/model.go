package expensetypes

// ExpenseType is a named expense grouping referenced by expenses.
type ExpenseType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
