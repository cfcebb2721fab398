package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"vypaar-saathi/internal/core"
)

func TestCreditService_NewCustomer(t *testing.T) {
	ctx := context.Background()
	svc := core.NewCreditService(newTestDB(t))

	c, err := svc.NewCustomer(ctx, "  Sunita Devi ", "+91 90000 00001")
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	if c.Name != "Sunita Devi" {
		t.Errorf("name = %q, want trimmed", c.Name)
	}
	if !c.TotalCredit.IsZero() {
		t.Errorf("new customer balance = %s, want 0", c.TotalCredit)
	}
	if c.Status != core.CreditPaid {
		t.Errorf("status = %s, want paid", c.Status)
	}
	if c.Transactions == nil || len(c.Transactions) != 0 {
		t.Errorf("transactions should be an empty list, got %v", c.Transactions)
	}

	if _, err := svc.NewCustomer(ctx, "", "123"); !errors.Is(err, core.ErrMissingField) {
		t.Errorf("missing name: got %v", err)
	}
	if _, err := svc.NewCustomer(ctx, "Name", "  "); !errors.Is(err, core.ErrMissingField) {
		t.Errorf("missing phone: got %v", err)
	}
}

func TestCreditService_CreditAndSettle(t *testing.T) {
	ctx := context.Background()
	svc := core.NewCreditService(newTestDB(t))

	c, err := svc.NewCustomer(ctx, "Ramesh", "+91 90000 00002")
	if err != nil {
		t.Fatal(err)
	}

	c, err = svc.AddCredit(ctx, c.ID, decimal.NewFromInt(500), "Groceries")
	if err != nil {
		t.Fatalf("AddCredit: %v", err)
	}
	if c.TotalCredit.String() != "500" {
		t.Errorf("balance = %s, want 500", c.TotalCredit)
	}
	if c.Status != core.CreditDue {
		t.Errorf("status = %s, want due", c.Status)
	}
	if len(c.Transactions) != 1 || c.Transactions[0].Type != core.TxnCredit {
		t.Fatalf("unexpected ledger: %+v", c.Transactions)
	}

	// Settling more than the balance is refused and nothing is written.
	if _, err := svc.Settle(ctx, c.ID, decimal.NewFromInt(600), core.PayCash); !errors.Is(err, core.ErrAmountExceeds) {
		t.Fatalf("overpay: got %v, want ErrAmountExceeds", err)
	}
	c, err = svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if c.TotalCredit.String() != "500" || len(c.Transactions) != 1 {
		t.Error("failed settle must leave the ledger untouched")
	}

	c, err = svc.Settle(ctx, c.ID, decimal.NewFromInt(200), core.PayUPI)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if c.TotalCredit.String() != "300" {
		t.Errorf("balance = %s, want 300", c.TotalCredit)
	}
	if c.Transactions[0].Amount.String() != "-200" {
		t.Errorf("payment amount = %s, want -200", c.Transactions[0].Amount)
	}
	if c.Transactions[0].Description != "Paid via UPI" {
		t.Errorf("description = %q", c.Transactions[0].Description)
	}

	c, err = svc.Settle(ctx, c.ID, decimal.NewFromInt(300), core.PayWaveOff)
	if err != nil {
		t.Fatalf("wave-off: %v", err)
	}
	if !c.TotalCredit.IsZero() {
		t.Errorf("balance = %s, want 0", c.TotalCredit)
	}
	if c.Status != core.CreditPaid {
		t.Errorf("status = %s, want paid after full settle", c.Status)
	}
	if c.Transactions[0].Description != "Waived Off / Discount" {
		t.Errorf("wave-off description = %q", c.Transactions[0].Description)
	}

	// Balance always equals the ledger sum.
	sum := decimal.Zero
	for _, txn := range c.Transactions {
		sum = sum.Add(txn.Amount)
	}
	if !sum.Equal(c.TotalCredit) {
		t.Errorf("ledger sums to %s, balance is %s", sum, c.TotalCredit)
	}
}

func TestCreditService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := core.NewCreditService(newTestDB(t))

	c, err := svc.NewCustomer(ctx, "Test", "123")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddCredit(ctx, c.ID, decimal.Zero, ""); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("zero credit: got %v", err)
	}
	if _, err := svc.AddCredit(ctx, c.ID, decimal.NewFromInt(-5), ""); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("negative credit: got %v", err)
	}
	if _, err := svc.Settle(ctx, c.ID, decimal.NewFromInt(10), "cheque"); !errors.Is(err, core.ErrMissingField) {
		t.Errorf("bad mode: got %v", err)
	}
	if _, err := svc.AddCredit(ctx, 9999, decimal.NewFromInt(10), ""); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("unknown customer: got %v", err)
	}
}

func TestCreditService_TotalDue(t *testing.T) {
	ctx := context.Background()
	svc := core.NewCreditService(newTestDB(t))

	a, _ := svc.NewCustomer(ctx, "A", "1")
	time.Sleep(2 * time.Millisecond) // IDs are UnixMilli
	b, _ := svc.NewCustomer(ctx, "B", "2")

	if _, err := svc.AddCredit(ctx, a.ID, decimal.NewFromInt(150), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddCredit(ctx, b.ID, decimal.NewFromInt(50), ""); err != nil {
		t.Fatal(err)
	}

	total, err := svc.TotalDue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total.String() != "200" {
		t.Errorf("total due = %s, want 200", total)
	}
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		balance     int64
		lastPayment string
		want        core.CreditStatus
	}{
		{"zero balance is paid", 0, "2025-01-01", core.CreditPaid},
		{"recent payment is due", 400, "2025-06-01", core.CreditDue},
		{"old payment is overdue", 400, "2025-04-01", core.CreditOverdue},
		{"just under 30 days is due", 400, "2025-05-17", core.CreditDue},
		{"unparseable date is due", 400, "not-a-date", core.CreditDue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.DeriveStatus(decimal.NewFromInt(tt.balance), tt.lastPayment, now)
			if got != tt.want {
				t.Errorf("DeriveStatus(%d, %q) = %s, want %s", tt.balance, tt.lastPayment, got, tt.want)
			}
		})
	}
}
