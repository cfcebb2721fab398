package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"vypaar-saathi/internal/core"
)

func addExpense(t *testing.T, svc core.ExpenseService, category string, amount int64, date string) {
	t.Helper()
	if _, err := svc.Add(context.Background(), category, decimal.NewFromInt(amount), "", date); err != nil {
		t.Fatalf("add expense: %v", err)
	}
}

func TestExpenseService_Add(t *testing.T) {
	ctx := context.Background()
	svc := core.NewExpenseService(newTestDB(t))

	if _, err := svc.Add(ctx, "Rent", decimal.Zero, "", ""); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("zero amount: got %v", err)
	}
	if _, err := svc.Add(ctx, "Rent", decimal.NewFromInt(10), "", "15-06-2025"); err == nil {
		t.Error("malformed date should be rejected")
	}

	e, err := svc.Add(ctx, "  ", decimal.NewFromInt(10), "chai", "")
	if err != nil {
		t.Fatal(err)
	}
	if e.Category != "Other" {
		t.Errorf("blank category = %q, want Other", e.Category)
	}
	if e.Date != time.Now().Format("2006-01-02") {
		t.Errorf("empty date should default to today, got %s", e.Date)
	}
}

func TestExpenseService_PeriodFilter(t *testing.T) {
	ctx := context.Background()
	svc := core.NewExpenseService(newTestDB(t))

	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format("2006-01-02") }

	addExpense(t, svc, "Rent", 100, day(0))
	addExpense(t, svc, "Transport", 50, day(-3))
	addExpense(t, svc, "Electricity", 75, day(-20))
	addExpense(t, svc, "Salary", 500, day(-45))

	tests := []struct {
		period core.ExpensePeriod
		want   int
	}{
		{core.PeriodToday, 1},
		{core.PeriodWeek, 2},
		{core.PeriodMonth, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, err := svc.List(ctx, tt.period, now)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d expenses, want %d", len(got), tt.want)
			}
		})
	}
}

func TestExpenseService_Breakdown(t *testing.T) {
	ctx := context.Background()
	svc := core.NewExpenseService(newTestDB(t))

	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	today := now.Format("2006-01-02")

	addExpense(t, svc, "Rent", 300, today)
	addExpense(t, svc, "Transport", 100, today)
	addExpense(t, svc, "Rent", 100, today)

	shares, total, err := svc.Breakdown(ctx, core.PeriodToday, now)
	if err != nil {
		t.Fatal(err)
	}
	if total.String() != "500" {
		t.Errorf("total = %s, want 500", total)
	}
	if len(shares) != 2 {
		t.Fatalf("got %d categories, want 2", len(shares))
	}
	if shares[0].Category != "Rent" || shares[0].Amount.String() != "400" {
		t.Errorf("largest share = %+v, want Rent 400", shares[0])
	}
	if shares[0].Percent.String() != "80" {
		t.Errorf("Rent percent = %s, want 80", shares[0].Percent)
	}
	if shares[1].Percent.String() != "20" {
		t.Errorf("Transport percent = %s, want 20", shares[1].Percent)
	}
}

func TestExpenseService_BreakdownEmpty(t *testing.T) {
	ctx := context.Background()
	svc := core.NewExpenseService(newTestDB(t))

	shares, total, err := svc.Breakdown(ctx, core.PeriodToday, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(shares) != 0 || !total.IsZero() {
		t.Errorf("empty dataset: shares=%v total=%s", shares, total)
	}
}
