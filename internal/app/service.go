package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"vypaar-saathi/internal/core"
)

// ApplicationService is the single facade the adapters talk to. It owns
// the use-case orchestration; the adapters only translate transport.
type ApplicationService interface {
	// Dashboard and reports.
	Dashboard(ctx context.Context) (*core.DashboardStats, error)
	DayClosing(ctx context.Context, date string) (*core.DaySummary, error)
	Reports(ctx context.Context, days int) (*ReportResult, error)

	// Inventory.
	ListProducts(ctx context.Context) ([]core.Product, error)
	AddProduct(ctx context.Context, p core.Product) (*core.Product, error)
	UpdateProduct(ctx context.Context, p core.Product) (*core.Product, error)
	LowStock(ctx context.Context) ([]core.Product, error)

	// Orders.
	ListOrders(ctx context.Context) ([]core.Order, error)
	ImportOrder(ctx context.Context, req ImportOrderRequest) (*core.Order, error)
	AcceptOrder(ctx context.Context, id int64) (*core.Order, error)
	RejectOrder(ctx context.Context, id int64) (*core.Order, error)
	MarkOrderPaid(ctx context.Context, id int64, mode core.PaymentMode) (*core.Order, error)

	// Storefront.
	StoreCatalog(ctx context.Context) ([]core.Product, error)
	Checkout(ctx context.Context, req CheckoutRequest) (*core.CheckoutResult, error)
	StoreShareLink(ctx context.Context) (*StoreShare, error)

	// Expenses.
	ListExpenses(ctx context.Context, period core.ExpensePeriod) ([]core.Expense, error)
	AddExpense(ctx context.Context, req AddExpenseRequest) (*core.Expense, error)
	ExpenseBreakdown(ctx context.Context, period core.ExpensePeriod) ([]core.CategoryShare, error)

	// Udhaar ledger.
	ListCustomers(ctx context.Context) ([]core.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*core.Customer, error)
	NewCustomer(ctx context.Context, req NewCustomerRequest) (*core.Customer, error)
	AddCredit(ctx context.Context, req AddCreditRequest) (*core.Customer, error)
	SettleCredit(ctx context.Context, req SettleRequest) (*core.Customer, error)
	PaymentReminder(ctx context.Context, req ReminderRequest) (*core.PaymentReminder, error)
	TotalDue(ctx context.Context) (decimal.Decimal, error)

	// Settings and payments.
	GetSettings(ctx context.Context) (*core.Settings, error)
	UpdateSettings(ctx context.Context, s core.Settings) (*core.Settings, error)
	ListUPIConfigs(ctx context.Context) ([]core.UPIConfig, error)
	SaveUPIConfigs(ctx context.Context, configs []core.UPIConfig) ([]core.UPIConfig, error)

	// AI insights.
	Insights(ctx context.Context) (*InsightsResult, error)

	// Voice commands.
	InterpretVoice(text string) core.VoiceCommand

	// Auth.
	RequestOTP(phone string) (*OTPSession, error)
	VerifyOTP(sessionID, otp string) (string, error)

	// Seed writes demo data for empty datasets.
	Seed(ctx context.Context, now time.Time) error
}
