package core

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the landing-screen summary.
type DashboardStats struct {
	Date          string          `json:"date"`
	TodaySales    decimal.Decimal `json:"todaySales"`
	TodayOrders   int             `json:"todayOrders"`
	PendingOrders int             `json:"pendingOrders"`
	CreditDue     decimal.Decimal `json:"creditDue"`
	LowStockItems []Product       `json:"lowStockItems"`
}

// DaySummary is the end-of-business reconciliation for one calendar day.
type DaySummary struct {
	Date string `json:"date"`

	SalesTotal   decimal.Decimal `json:"salesTotal"`
	CashSales    decimal.Decimal `json:"cashSales"`
	UPISales     decimal.Decimal `json:"upiSales"`
	Transactions int             `json:"transactions"`

	ExpenseTotal     decimal.Decimal `json:"expenseTotal"`
	ExpenseBreakdown []CategoryShare `json:"expenseBreakdown"`

	CreditGiven    decimal.Decimal `json:"creditGiven"`
	CreditReceived decimal.Decimal `json:"creditReceived"`
	NetCredit      decimal.Decimal `json:"netCredit"`

	ItemsSold     int `json:"itemsSold"`
	LowStockItems int `json:"lowStockItems"`

	NetProfit  decimal.Decimal `json:"netProfit"`
	CashInHand decimal.Decimal `json:"cashInHand"`
}

// DayPoint is one day of the sales/expenses/profit series.
type DayPoint struct {
	Date     string          `json:"date"`
	Label    string          `json:"label"` // weekday short name
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// ProductSales is one row of the top-products report.
type ProductSales struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ReportingService derives dashboard numbers, the day-closing summary, and
// the report series from stored orders, expenses and ledgers. Everything is
// recomputed on read; nothing here mutates state.
type ReportingService interface {
	Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error)
	DayClosing(ctx context.Context, date string, now time.Time) (*DaySummary, error)
	// Series returns one point per day for the `days` days ending at `end`,
	// oldest first.
	Series(ctx context.Context, end time.Time, days int) ([]DayPoint, error)
	// TopProducts ranks items by quantity sold across accepted orders within
	// the window, highest first, at most limit rows.
	TopProducts(ctx context.Context, end time.Time, days, limit int) ([]ProductSales, error)
}

type reportingService struct {
	db *DB
}

func NewReportingService(db *DB) ReportingService {
	return &reportingService{db: db}
}

func (s *reportingService) Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error) {
	orders, err := s.db.Orders(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.db.Customers(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.db.Products(ctx)
	if err != nil {
		return nil, err
	}

	today := now.Format(dateFormat)
	stats := DashboardStats{Date: today, TodaySales: decimal.Zero, CreditDue: decimal.Zero}
	for _, o := range orders {
		if o.Status == OrderPending {
			stats.PendingOrders++
		}
		if o.Status == OrderAccepted && o.Timestamp.Format(dateFormat) == today {
			stats.TodaySales = stats.TodaySales.Add(o.Total)
			stats.TodayOrders++
		}
	}
	for _, c := range customers {
		stats.CreditDue = stats.CreditDue.Add(c.TotalCredit)
	}
	for _, p := range products {
		if p.LowStock() {
			stats.LowStockItems = append(stats.LowStockItems, p)
		}
	}
	return &stats, nil
}

func (s *reportingService) DayClosing(ctx context.Context, date string, now time.Time) (*DaySummary, error) {
	if date == "" {
		date = now.Format(dateFormat)
	}

	orders, err := s.db.Orders(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.db.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.db.Customers(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.db.Products(ctx)
	if err != nil {
		return nil, err
	}

	sum := DaySummary{
		Date:           date,
		SalesTotal:     decimal.Zero,
		CashSales:      decimal.Zero,
		UPISales:       decimal.Zero,
		ExpenseTotal:   decimal.Zero,
		CreditGiven:    decimal.Zero,
		CreditReceived: decimal.Zero,
	}

	for _, o := range orders {
		if o.Timestamp.Format(dateFormat) != date || o.Status != OrderAccepted {
			continue
		}
		sum.SalesTotal = sum.SalesTotal.Add(o.Total)
		sum.Transactions++
		for _, item := range o.Items {
			sum.ItemsSold += item.Quantity
		}
		if o.PaymentStatus == PaymentPaid {
			if o.PaymentMode == PayUPI {
				sum.UPISales = sum.UPISales.Add(o.Total)
			} else {
				sum.CashSales = sum.CashSales.Add(o.Total)
			}
		}
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.Date != date {
			continue
		}
		sum.ExpenseTotal = sum.ExpenseTotal.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	for category, amount := range byCategory {
		sum.ExpenseBreakdown = append(sum.ExpenseBreakdown, CategoryShare{Category: category, Amount: amount})
	}
	sort.Slice(sum.ExpenseBreakdown, func(i, j int) bool {
		return sum.ExpenseBreakdown[i].Amount.GreaterThan(sum.ExpenseBreakdown[j].Amount)
	})

	for _, c := range customers {
		for _, t := range c.Transactions {
			if t.Date != date {
				continue
			}
			switch t.Type {
			case TxnCredit:
				sum.CreditGiven = sum.CreditGiven.Add(t.Amount)
			case TxnPayment:
				sum.CreditReceived = sum.CreditReceived.Add(t.Amount.Neg())
			}
		}
	}
	sum.NetCredit = sum.CreditGiven.Sub(sum.CreditReceived)

	for _, p := range products {
		if p.LowStock() {
			sum.LowStockItems++
		}
	}

	sum.NetProfit = sum.SalesTotal.Sub(sum.ExpenseTotal).Sub(sum.CreditGiven).Add(sum.CreditReceived)
	sum.CashInHand = sum.CashSales.Sub(sum.ExpenseTotal)
	return &sum, nil
}

func (s *reportingService) Series(ctx context.Context, end time.Time, days int) ([]DayPoint, error) {
	if days <= 0 {
		days = 7
	}

	orders, err := s.db.Orders(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.db.Expenses(ctx)
	if err != nil {
		return nil, err
	}

	salesByDate := make(map[string]decimal.Decimal)
	for _, o := range orders {
		if o.Status != OrderAccepted {
			continue
		}
		d := o.Timestamp.Format(dateFormat)
		salesByDate[d] = salesByDate[d].Add(o.Total)
	}
	expensesByDate := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		expensesByDate[e.Date] = expensesByDate[e.Date].Add(e.Amount)
	}

	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		d := day.Format(dateFormat)
		sales := salesByDate[d]
		spent := expensesByDate[d]
		points = append(points, DayPoint{
			Date:     d,
			Label:    day.Format("Mon"),
			Sales:    sales,
			Expenses: spent,
			Profit:   sales.Sub(spent),
		})
	}
	return points, nil
}

func (s *reportingService) TopProducts(ctx context.Context, end time.Time, days, limit int) ([]ProductSales, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 {
		limit = 5
	}
	start := end.AddDate(0, 0, -days)

	orders, err := s.db.Orders(ctx)
	if err != nil {
		return nil, err
	}

	type agg struct {
		qty     int
		revenue decimal.Decimal
	}
	byName := make(map[string]agg)
	for _, o := range orders {
		if o.Status != OrderAccepted || o.Timestamp.Before(start) || o.Timestamp.After(end) {
			continue
		}
		for _, item := range o.Items {
			a := byName[item.Name]
			a.qty += item.Quantity
			a.revenue = a.revenue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			byName[item.Name] = a
		}
	}

	rows := make([]ProductSales, 0, len(byName))
	for name, a := range byName {
		rows = append(rows, ProductSales{Name: name, Quantity: a.qty, Revenue: a.revenue})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Quantity == rows[j].Quantity {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Quantity > rows[j].Quantity
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
