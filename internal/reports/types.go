package reports

import (
	"html/template"
	"time"
)

// OrderRow is one denormalized order line used for aggregation. Header
// figures (PaidAmount, TTLQuantity) repeat on every line of the same order
// and must be deduplicated before summing.
type OrderRow struct {
	OrderID       int64     `json:"order_id"`
	OrderNo       string    `json:"order_no"`
	Date          time.Time `json:"date"`
	PaidAmount    float64   `json:"paid_amount"`
	TTLQuantity   int       `json:"ttl_quantity"`
	CustomerName  string    `json:"customer_name"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	PaymentType   string    `json:"payment_type"`
	StockCategory string    `json:"stock_category"`
	Quantity      int       `json:"quantity"`
	ItemAmount    float64   `json:"item_amount"`
}

// ExpenseRow is one expense line for a reporting range.
type ExpenseRow struct {
	Date        time.Time `json:"date"`
	ExpenseType string    `json:"expense_type"`
	Amount      float64   `json:"amount"`
}

// NamedAmount is a single breakdown bucket.
type NamedAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// CategoryBreakdown carries quantity next to amount for item-level buckets.
type CategoryBreakdown struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// SeriesPoint is one labelled value of a chart series.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// OrderSummary is one row of the dashboard order table, unique per order no.
type OrderSummary struct {
	OrderNo      string  `json:"order_no"`
	CustomerName string  `json:"customer_name"`
	City         string  `json:"city"`
	PaymentType  string  `json:"payment_type"`
	Quantity     int     `json:"quantity"`
	PaidAmount   float64 `json:"paid_amount"`
}

// DailyDashboard is the payload for one day, with deltas against the day
// before.
type DailyDashboard struct {
	Date              string              `json:"date"`
	TotalOrders       int                 `json:"total_orders"`
	OrdersChangePct   float64             `json:"orders_change_pct"`
	TotalQuantity     int                 `json:"total_quantity"`
	QuantityChangePct float64             `json:"quantity_change_pct"`
	Revenue           float64             `json:"revenue"`
	RevenueChangePct  float64             `json:"revenue_change_pct"`
	ByStockCategory   []CategoryBreakdown `json:"by_stock_category"`
	ByPaymentType     []NamedAmount       `json:"by_payment_type"`
	ByCity            []NamedAmount       `json:"by_city"`
	ByCountry         []NamedAmount       `json:"by_country"`
	Orders            []OrderSummary      `json:"orders"`
	CategoryChart     template.HTML       `json:"category_chart,omitempty"`
}

// MonthlyReport is the payload for one calendar month, with deltas against
// the month before.
type MonthlyReport struct {
	Year              int                 `json:"year"`
	Month             int                 `json:"month"`
	TotalOrders       int                 `json:"total_orders"`
	OrdersChangePct   float64             `json:"orders_change_pct"`
	TotalQuantity     int                 `json:"total_quantity"`
	QuantityChangePct float64             `json:"quantity_change_pct"`
	Revenue           float64             `json:"revenue"`
	RevenueChangePct  float64             `json:"revenue_change_pct"`
	DailyRevenue      []SeriesPoint       `json:"daily_revenue"`
	ByStockCategory   []CategoryBreakdown `json:"by_stock_category"`
	ByPaymentType     []NamedAmount       `json:"by_payment_type"`
	RevenueChart      template.HTML       `json:"revenue_chart,omitempty"`
}

// MonthProfit is one income-statement month.
type MonthProfit struct {
	Month               int           `json:"month"`
	Income              float64       `json:"income"`
	Expense             float64       `json:"expense"`
	Profit              float64       `json:"profit"`
	IncomeByPaymentType []NamedAmount `json:"income_by_payment_type"`
	ExpenseByType       []NamedAmount `json:"expense_by_type"`
}

// IncomeStatement is the yearly profit view.
type IncomeStatement struct {
	Year         int           `json:"year"`
	Months       []MonthProfit `json:"months"`
	TotalIncome  float64       `json:"total_income"`
	TotalExpense float64       `json:"total_expense"`
	TotalProfit  float64       `json:"total_profit"`
	Chart        template.HTML `json:"chart,omitempty"`
}
