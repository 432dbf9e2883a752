package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ap-collections/backoffice/internal/reports/svg"
)

// Service aggregates order and expense rows into report payloads. All
// grouping happens in memory over rows fetched for the requested range.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService constructs a Service. cache may be nil.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// PercentageChange reports the relative change from previous to current.
// With no previous figure there is nothing to compare against: the change is
// 0 when current is also zero, otherwise 100.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

// Daily builds the dashboard for one day, with deltas against the previous
// day. Current and previous rows are fetched concurrently.
func (s *Service) Daily(ctx context.Context, date time.Time) (DailyDashboard, error) {
	day := truncateToDay(date)
	loader := func(ctx context.Context) (interface{}, error) {
		var current, previous []OrderRow
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			current, err = s.repo.OrderRows(gctx, day, day.AddDate(0, 0, 1))
			return err
		})
		g.Go(func() error {
			var err error
			previous, err = s.repo.OrderRows(gctx, day.AddDate(0, 0, -1), day)
			return err
		})
		if err := g.Wait(); err != nil {
			return DailyDashboard{}, err
		}
		return s.buildDaily(day, current, previous), nil
	}

	var result DailyDashboard
	if err := s.cache.FetchJSON(ctx, &result, loader, "daily", day.Format("2006-01-02")); err != nil {
		return DailyDashboard{}, err
	}
	return result, nil
}

func (s *Service) buildDaily(day time.Time, current, previous []OrderRow) DailyDashboard {
	curOrders, curQty, curRevenue := headerTotals(current)
	prevOrders, prevQty, prevRevenue := headerTotals(previous)

	d := DailyDashboard{
		Date:              day.Format("2006-01-02"),
		TotalOrders:       curOrders,
		OrdersChangePct:   PercentageChange(float64(curOrders), float64(prevOrders)),
		TotalQuantity:     curQty,
		QuantityChangePct: PercentageChange(float64(curQty), float64(prevQty)),
		Revenue:           curRevenue,
		RevenueChangePct:  PercentageChange(curRevenue, prevRevenue),
		ByStockCategory:   categoryBreakdown(current),
		ByPaymentType:     revenueBreakdown(current, func(r OrderRow) string { return r.PaymentType }),
		ByCity:            revenueBreakdown(current, func(r OrderRow) string { return r.City }),
		ByCountry:         revenueBreakdown(current, func(r OrderRow) string { return r.Country }),
		Orders:            orderSummaries(current),
	}

	if len(d.ByStockCategory) > 0 {
		series := make([]float64, len(d.ByStockCategory))
		labels := make([]string, len(d.ByStockCategory))
		for i, c := range d.ByStockCategory {
			series[i] = float64(c.Quantity)
			labels[i] = c.Name
		}
		if chart, err := svg.Bar(svg.DefaultWidth, svg.DefaultHeight, series, nil, labels,
			svg.BarOpts{Title: "Quantity by stock category"}); err == nil {
			d.CategoryChart = chart
		}
	}
	return d
}

// Monthly builds the report for one calendar month, with deltas against the
// previous month.
func (s *Service) Monthly(ctx context.Context, year int, month time.Month) (MonthlyReport, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	loader := func(ctx context.Context) (interface{}, error) {
		var current, previous []OrderRow
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			current, err = s.repo.OrderRows(gctx, start, start.AddDate(0, 1, 0))
			return err
		})
		g.Go(func() error {
			var err error
			previous, err = s.repo.OrderRows(gctx, start.AddDate(0, -1, 0), start)
			return err
		})
		if err := g.Wait(); err != nil {
			return MonthlyReport{}, err
		}
		return s.buildMonthly(start, current, previous), nil
	}

	var result MonthlyReport
	if err := s.cache.FetchJSON(ctx, &result, loader, "monthly", start.Format("2006-01")); err != nil {
		return MonthlyReport{}, err
	}
	return result, nil
}

func (s *Service) buildMonthly(start time.Time, current, previous []OrderRow) MonthlyReport {
	curOrders, curQty, curRevenue := headerTotals(current)
	prevOrders, prevQty, prevRevenue := headerTotals(previous)

	daysInMonth := start.AddDate(0, 1, -1).Day()
	perDay := make([]float64, daysInMonth)
	for _, r := range dedupByOrderID(current) {
		perDay[r.Date.Day()-1] += r.PaidAmount
	}
	series := make([]SeriesPoint, daysInMonth)
	labels := make([]string, daysInMonth)
	for i := range perDay {
		labels[i] = fmt.Sprintf("%02d", i+1)
		series[i] = SeriesPoint{Label: labels[i], Value: perDay[i]}
	}

	m := MonthlyReport{
		Year:              start.Year(),
		Month:             int(start.Month()),
		TotalOrders:       curOrders,
		OrdersChangePct:   PercentageChange(float64(curOrders), float64(prevOrders)),
		TotalQuantity:     curQty,
		QuantityChangePct: PercentageChange(float64(curQty), float64(prevQty)),
		Revenue:           curRevenue,
		RevenueChangePct:  PercentageChange(curRevenue, prevRevenue),
		DailyRevenue:      series,
		ByStockCategory:   categoryBreakdown(current),
		ByPaymentType:     revenueBreakdown(current, func(r OrderRow) string { return r.PaymentType }),
	}
	if chart, err := svg.Line(svg.DefaultWidth, svg.DefaultHeight, perDay, labels,
		svg.LineOpts{Title: "Daily revenue"}); err == nil {
		m.RevenueChart = chart
	}
	return m
}

// IncomeStatement builds the yearly profit view: monthly income by payment
// type against monthly expenses by type. Orders and expenses are fetched
// concurrently.
func (s *Service) IncomeStatement(ctx context.Context, year int) (IncomeStatement, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	loader := func(ctx context.Context) (interface{}, error) {
		var orderRows []OrderRow
		var expenseRows []ExpenseRow
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			orderRows, err = s.repo.OrderRows(gctx, start, end)
			return err
		})
		g.Go(func() error {
			var err error
			expenseRows, err = s.repo.ExpenseRows(gctx, start, end)
			return err
		})
		if err := g.Wait(); err != nil {
			return IncomeStatement{}, err
		}
		return buildIncomeStatement(year, orderRows, expenseRows), nil
	}

	var result IncomeStatement
	if err := s.cache.FetchJSON(ctx, &result, loader, "income", fmt.Sprintf("%d", year)); err != nil {
		return IncomeStatement{}, err
	}
	return result, nil
}

func buildIncomeStatement(year int, orderRows []OrderRow, expenseRows []ExpenseRow) IncomeStatement {
	st := IncomeStatement{Year: year, Months: make([]MonthProfit, 12)}

	incomeByMonth := make([]map[string]float64, 12)
	expenseByMonth := make([]map[string]float64, 12)
	for i := range st.Months {
		st.Months[i].Month = i + 1
		incomeByMonth[i] = map[string]float64{}
		expenseByMonth[i] = map[string]float64{}
	}

	for _, r := range dedupByOrderNo(orderRows) {
		i := int(r.Date.Month()) - 1
		st.Months[i].Income += r.PaidAmount
		incomeByMonth[i][r.PaymentType] += r.PaidAmount
	}
	for _, e := range expenseRows {
		i := int(e.Date.Month()) - 1
		st.Months[i].Expense += e.Amount
		expenseByMonth[i][e.ExpenseType] += e.Amount
	}

	incomeSeries := make([]float64, 12)
	expenseSeries := make([]float64, 12)
	labels := make([]string, 12)
	for i := range st.Months {
		st.Months[i].Profit = st.Months[i].Income - st.Months[i].Expense
		st.Months[i].IncomeByPaymentType = sortedAmounts(incomeByMonth[i])
		st.Months[i].ExpenseByType = sortedAmounts(expenseByMonth[i])
		st.TotalIncome += st.Months[i].Income
		st.TotalExpense += st.Months[i].Expense
		incomeSeries[i] = st.Months[i].Income
		expenseSeries[i] = st.Months[i].Expense
		labels[i] = time.Month(i + 1).String()[:3]
	}
	st.TotalProfit = st.TotalIncome - st.TotalExpense

	if chart, err := svg.Bar(svg.DefaultWidth, svg.DefaultHeight, incomeSeries, expenseSeries, labels,
		svg.BarOpts{Title: "Income vs Expense", SeriesALabel: "Income", SeriesBLabel: "Expense"}); err == nil {
		st.Chart = chart
	}
	return st
}

// Warm precomputes today's dashboard into the cache.
func (s *Service) Warm(ctx context.Context, now time.Time) error {
	_, err := s.Daily(ctx, now)
	return err
}

// InvalidateCache drops every cached report.
func (s *Service) InvalidateCache(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// headerTotals sums order-level figures exactly once per order.
func headerTotals(rows []OrderRow) (orders, quantity int, revenue float64) {
	for _, r := range dedupByOrderID(rows) {
		orders++
		quantity += r.TTLQuantity
		revenue += r.PaidAmount
	}
	return orders, quantity, revenue
}

func dedupByOrderID(rows []OrderRow) []OrderRow {
	seen := make(map[int64]bool, len(rows))
	var out []OrderRow
	for _, r := range rows {
		if seen[r.OrderID] {
			continue
		}
		seen[r.OrderID] = true
		out = append(out, r)
	}
	return out
}

func dedupByOrderNo(rows []OrderRow) []OrderRow {
	seen := make(map[string]bool, len(rows))
	var out []OrderRow
	for _, r := range rows {
		if seen[r.OrderNo] {
			continue
		}
		seen[r.OrderNo] = true
		out = append(out, r)
	}
	return out
}

// categoryBreakdown sums item-level quantity and amount per stock category.
// No dedup: every line belongs to exactly one bucket.
func categoryBreakdown(rows []OrderRow) []CategoryBreakdown {
	qty := map[string]int{}
	amount := map[string]float64{}
	for _, r := range rows {
		qty[r.StockCategory] += r.Quantity
		amount[r.StockCategory] += r.ItemAmount
	}
	out := make([]CategoryBreakdown, 0, len(qty))
	for name := range qty {
		out = append(out, CategoryBreakdown{Name: name, Quantity: qty[name], Amount: amount[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// revenueBreakdown attributes each order's paid amount once to the bucket
// keyFn selects.
func revenueBreakdown(rows []OrderRow, keyFn func(OrderRow) string) []NamedAmount {
	buckets := map[string]float64{}
	for _, r := range dedupByOrderID(rows) {
		buckets[keyFn(r)] += r.PaidAmount
	}
	return sortedAmounts(buckets)
}

func sortedAmounts(buckets map[string]float64) []NamedAmount {
	out := make([]NamedAmount, 0, len(buckets))
	for name, amount := range buckets {
		out = append(out, NamedAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func orderSummaries(rows []OrderRow) []OrderSummary {
	var out []OrderSummary
	for _, r := range dedupByOrderNo(rows) {
		out = append(out, OrderSummary{
			OrderNo:      r.OrderNo,
			CustomerName: r.CustomerName,
			City:         r.City,
			PaymentType:  r.PaymentType,
			Quantity:     r.TTLQuantity,
			PaidAmount:   r.PaidAmount,
		})
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
