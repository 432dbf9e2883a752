package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	orderRows   []OrderRow
	expenseRows []ExpenseRow
}

func (m *memoryRepo) OrderRows(_ context.Context, from, to time.Time) ([]OrderRow, error) {
	var out []OrderRow
	for _, r := range m.orderRows {
		if !r.Date.Before(from) && r.Date.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepo) ExpenseRows(_ context.Context, from, to time.Time) ([]ExpenseRow, error) {
	var out []ExpenseRow
	for _, e := range m.expenseRows {
		if !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// threeLineOrder is one order spread over three item rows; header figures
// repeat on every line.
func threeLineOrder(date time.Time) []OrderRow {
	base := OrderRow{
		OrderID: 1, OrderNo: "20240510-130405-C001", Date: date,
		PaidAmount: 4000, TTLQuantity: 3,
		CustomerName: "Daw Mya", City: "Yangon", Country: "Myanmar", PaymentType: "Cash",
	}
	a, b, c := base, base, base
	a.StockCategory, a.Quantity, a.ItemAmount = "Longyi", 1, 1000
	b.StockCategory, b.Quantity, b.ItemAmount = "Longyi", 1, 1000
	c.StockCategory, c.Quantity, c.ItemAmount = "Shirt", 1, 1500
	return []OrderRow{a, b, c}
}

func TestPercentageChange(t *testing.T) {
	assert.Equal(t, 0.0, PercentageChange(0, 0))
	assert.Equal(t, 100.0, PercentageChange(50, 0))
	assert.Equal(t, 50.0, PercentageChange(150, 100))
	assert.Equal(t, -25.0, PercentageChange(75, 100))
}

func TestDailyDeduplicatesHeaderFigures(t *testing.T) {
	repo := &memoryRepo{orderRows: threeLineOrder(day(2024, 5, 10))}
	svc := NewService(repo, nil)

	d, err := svc.Daily(context.Background(), day(2024, 5, 10))
	require.NoError(t, err)

	// one order across three item rows counts once
	assert.Equal(t, 1, d.TotalOrders)
	assert.Equal(t, 3, d.TotalQuantity)
	assert.Equal(t, 4000.0, d.Revenue)
	require.Len(t, d.Orders, 1)
	assert.Equal(t, "20240510-130405-C001", d.Orders[0].OrderNo)
}

func TestDailyStockCategoryBreakdownSumsLines(t *testing.T) {
	repo := &memoryRepo{orderRows: threeLineOrder(day(2024, 5, 10))}
	svc := NewService(repo, nil)

	d, err := svc.Daily(context.Background(), day(2024, 5, 10))
	require.NoError(t, err)

	require.Len(t, d.ByStockCategory, 2)
	assert.Equal(t, CategoryBreakdown{Name: "Longyi", Quantity: 2, Amount: 2000}, d.ByStockCategory[0])
	assert.Equal(t, CategoryBreakdown{Name: "Shirt", Quantity: 1, Amount: 1500}, d.ByStockCategory[1])
}

func TestDailyDeltasAgainstPreviousDay(t *testing.T) {
	rows := threeLineOrder(day(2024, 5, 10))
	prev := OrderRow{
		OrderID: 2, OrderNo: "20240509-090000-C002", Date: day(2024, 5, 9),
		PaidAmount: 2000, TTLQuantity: 1, PaymentType: "Cash",
		StockCategory: "Shirt", Quantity: 1, ItemAmount: 2000,
	}
	repo := &memoryRepo{orderRows: append(rows, prev)}
	svc := NewService(repo, nil)

	d, err := svc.Daily(context.Background(), day(2024, 5, 10))
	require.NoError(t, err)

	assert.Equal(t, 0.0, d.OrdersChangePct)
	assert.Equal(t, 100.0, d.RevenueChangePct)
	assert.Equal(t, 200.0, d.QuantityChangePct)
}

func TestDailyNoPreviousDay(t *testing.T) {
	repo := &memoryRepo{orderRows: threeLineOrder(day(2024, 5, 10))}
	svc := NewService(repo, nil)

	d, err := svc.Daily(context.Background(), day(2024, 5, 10))
	require.NoError(t, err)
	assert.Equal(t, 100.0, d.RevenueChangePct)
}

func TestDailyPaymentTypeAttributesOrderOnce(t *testing.T) {
	rows := threeLineOrder(day(2024, 5, 10))
	other := OrderRow{
		OrderID: 2, OrderNo: "20240510-140000-C002", Date: day(2024, 5, 10),
		PaidAmount: 1000, TTLQuantity: 1, PaymentType: "KPay",
		City: "Mandalay", Country: "Myanmar",
		StockCategory: "Shirt", Quantity: 1, ItemAmount: 1000,
	}
	repo := &memoryRepo{orderRows: append(rows, other)}
	svc := NewService(repo, nil)

	d, err := svc.Daily(context.Background(), day(2024, 5, 10))
	require.NoError(t, err)

	require.Len(t, d.ByPaymentType, 2)
	assert.Equal(t, NamedAmount{Name: "Cash", Amount: 4000}, d.ByPaymentType[0])
	assert.Equal(t, NamedAmount{Name: "KPay", Amount: 1000}, d.ByPaymentType[1])
	assert.Equal(t, []NamedAmount{{Name: "Yangon", Amount: 4000}, {Name: "Mandalay", Amount: 1000}}, d.ByCity)
}

func TestMonthlyDailySeries(t *testing.T) {
	rows := threeLineOrder(day(2024, 5, 10))
	later := OrderRow{
		OrderID: 3, OrderNo: "20240520-100000-C003", Date: day(2024, 5, 20),
		PaidAmount: 1500, TTLQuantity: 2, PaymentType: "Cash",
		StockCategory: "Longyi", Quantity: 2, ItemAmount: 1500,
	}
	repo := &memoryRepo{orderRows: append(rows, later)}
	svc := NewService(repo, nil)

	m, err := svc.Monthly(context.Background(), 2024, time.May)
	require.NoError(t, err)

	assert.Equal(t, 2, m.TotalOrders)
	assert.Equal(t, 5500.0, m.Revenue)
	require.Len(t, m.DailyRevenue, 31)
	assert.Equal(t, 4000.0, m.DailyRevenue[9].Value)
	assert.Equal(t, 1500.0, m.DailyRevenue[19].Value)
	assert.Equal(t, 0.0, m.DailyRevenue[0].Value)
	assert.NotEmpty(t, m.RevenueChart)
}

func TestIncomeStatementProfitPerMonth(t *testing.T) {
	repo := &memoryRepo{
		orderRows: threeLineOrder(day(2024, 5, 10)),
		expenseRows: []ExpenseRow{
			{Date: day(2024, 5, 3), ExpenseType: "Fabric", Amount: 900},
			{Date: day(2024, 5, 17), ExpenseType: "Rent", Amount: 600},
			{Date: day(2024, 6, 1), ExpenseType: "Rent", Amount: 600},
		},
	}
	svc := NewService(repo, nil)

	st, err := svc.IncomeStatement(context.Background(), 2024)
	require.NoError(t, err)

	may := st.Months[4]
	assert.Equal(t, 4000.0, may.Income)
	assert.Equal(t, 1500.0, may.Expense)
	assert.Equal(t, 2500.0, may.Profit)
	assert.Equal(t, []NamedAmount{{Name: "Cash", Amount: 4000}}, may.IncomeByPaymentType)
	assert.Equal(t, []NamedAmount{{Name: "Fabric", Amount: 900}, {Name: "Rent", Amount: 600}}, may.ExpenseByType)

	june := st.Months[5]
	assert.Equal(t, -600.0, june.Profit)

	assert.Equal(t, 4000.0, st.TotalIncome)
	assert.Equal(t, 2100.0, st.TotalExpense)
	assert.Equal(t, 1900.0, st.TotalProfit)
	assert.NotEmpty(t, st.Chart)
}

func TestIncomeStatementDedupsByOrderNo(t *testing.T) {
	// same order no on two distinct ids still counts once
	rows := threeLineOrder(day(2024, 5, 10))
	dup := rows[0]
	dup.OrderID = 99
	repo := &memoryRepo{orderRows: append(rows, dup)}
	svc := NewService(repo, nil)

	st, err := svc.IncomeStatement(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, st.Months[4].Income)
}
