package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpensePeriod filters the expense list.
type ExpensePeriod string

const (
	PeriodToday ExpensePeriod = "today"
	PeriodWeek  ExpensePeriod = "week"
	PeriodMonth ExpensePeriod = "month"
)

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

// ExpenseService records shop spend and summarizes it by period and category.
type ExpenseService interface {
	List(ctx context.Context, period ExpensePeriod, now time.Time) ([]Expense, error)
	Add(ctx context.Context, category string, amount decimal.Decimal, description, date string) (*Expense, error)
	// Breakdown returns per-category totals with percentage shares for the
	// given period, largest first.
	Breakdown(ctx context.Context, period ExpensePeriod, now time.Time) ([]CategoryShare, decimal.Decimal, error)
}

type expenseService struct {
	db *DB
}

func NewExpenseService(db *DB) ExpenseService {
	return &expenseService{db: db}
}

func (s *expenseService) List(ctx context.Context, period ExpensePeriod, now time.Time) ([]Expense, error) {
	expenses, err := s.db.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	return filterByPeriod(expenses, period, now), nil
}

func (s *expenseService) Add(ctx context.Context, category string, amount decimal.Decimal, description, date string) (*Expense, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = "Other"
	}
	if date == "" {
		date = time.Now().Format(dateFormat)
	} else if _, err := time.Parse(dateFormat, date); err != nil {
		return nil, fmt.Errorf("invalid expense date %q: %w", date, err)
	}

	expense := Expense{
		ID:          time.Now().UnixMilli(),
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	s.db.Lock()
	defer s.db.Unlock()

	expenses, err := s.db.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	expenses = append([]Expense{expense}, expenses...)
	if err := s.db.SaveExpenses(ctx, expenses); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *expenseService) Breakdown(ctx context.Context, period ExpensePeriod, now time.Time) ([]CategoryShare, decimal.Decimal, error) {
	expenses, err := s.List(ctx, period, now)
	if err != nil {
		return nil, decimal.Zero, err
	}

	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
		grand = grand.Add(e.Amount)
	}

	shares := make([]CategoryShare, 0, len(totals))
	for category, amount := range totals {
		percent := decimal.Zero
		if grand.IsPositive() {
			percent = amount.Div(grand).Mul(decimal.NewFromInt(100)).Round(1)
		}
		shares = append(shares, CategoryShare{Category: category, Amount: amount, Percent: percent})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount.Equal(shares[j].Amount) {
			return shares[i].Category < shares[j].Category
		}
		return shares[i].Amount.GreaterThan(shares[j].Amount)
	})
	return shares, grand, nil
}

func filterByPeriod(expenses []Expense, period ExpensePeriod, now time.Time) []Expense {
	var cutoff time.Time
	switch period {
	case PeriodToday:
		cutoff = now.AddDate(0, 0, -1)
	case PeriodWeek:
		cutoff = now.AddDate(0, 0, -7)
	case PeriodMonth:
		cutoff = now.AddDate(0, -1, 0)
	default:
		return expenses
	}

	today := now.Format(dateFormat)
	var out []Expense
	for _, e := range expenses {
		if period == PeriodToday {
			if e.Date == today {
				out = append(out, e)
			}
			continue
		}
		t, err := time.Parse(dateFormat, e.Date)
		if err != nil {
			continue
		}
		if t.After(cutoff) && !t.After(now) {
			out = append(out, e)
		}
	}
	return out
}
