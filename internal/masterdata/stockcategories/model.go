package stockcategories

// StockCategory is a named merchandise grouping referenced by order items.
type StockCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
