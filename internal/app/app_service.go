package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"vypaar-saathi/internal/ai"
	"vypaar-saathi/internal/auth"
	"vypaar-saathi/internal/core"
	"vypaar-saathi/internal/whatsapp"
)

type applicationService struct {
	db        *core.DB
	inventory core.InventoryService
	orders    core.OrderService
	expenses  core.ExpenseService
	credits   core.CreditService
	reports   core.ReportingService
	settings  core.SettingsService
	payments  core.PaymentService
	otp       *auth.OTPService
	insights  ai.InsightsService
	storeURL  string
}

// NewApplicationService wires the core services over a shared DB.
// storeURL is the public storefront address used in share links.
func NewApplicationService(db *core.DB, insights ai.InsightsService, storeURL string) ApplicationService {
	return &applicationService{
		db:        db,
		inventory: core.NewInventoryService(db),
		orders:    core.NewOrderService(db),
		expenses:  core.NewExpenseService(db),
		credits:   core.NewCreditService(db),
		reports:   core.NewReportingService(db),
		settings:  core.NewSettingsService(db),
		payments:  core.NewPaymentService(db),
		otp:       auth.NewOTPService(),
		insights:  insights,
		storeURL:  storeURL,
	}
}

func (s *applicationService) Dashboard(ctx context.Context) (*core.DashboardStats, error) {
	return s.reports.Dashboard(ctx, time.Now())
}

func (s *applicationService) DayClosing(ctx context.Context, date string) (*core.DaySummary, error) {
	return s.reports.DayClosing(ctx, date, time.Now())
}

func (s *applicationService) Reports(ctx context.Context, days int) (*ReportResult, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	series, err := s.reports.Series(ctx, now, days)
	if err != nil {
		return nil, fmt.Errorf("building sales series: %w", err)
	}
	top, err := s.reports.TopProducts(ctx, now, days, 5)
	if err != nil {
		return nil, fmt.Errorf("ranking products: %w", err)
	}
	breakdown, _, err := s.expenses.Breakdown(ctx, core.PeriodMonth, now)
	if err != nil {
		return nil, fmt.Errorf("expense breakdown: %w", err)
	}
	return &ReportResult{Series: series, TopProducts: top, Breakdown: breakdown}, nil
}

func (s *applicationService) ListProducts(ctx context.Context) ([]core.Product, error) {
	return s.inventory.List(ctx)
}

func (s *applicationService) AddProduct(ctx context.Context, p core.Product) (*core.Product, error) {
	return s.inventory.Add(ctx, p)
}

func (s *applicationService) UpdateProduct(ctx context.Context, p core.Product) (*core.Product, error) {
	if err := s.inventory.Update(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *applicationService) LowStock(ctx context.Context) ([]core.Product, error) {
	return s.inventory.LowStock(ctx)
}

func (s *applicationService) ListOrders(ctx context.Context) ([]core.Order, error) {
	return s.orders.List(ctx)
}

func (s *applicationService) ImportOrder(ctx context.Context, req ImportOrderRequest) (*core.Order, error) {
	return s.orders.Import(ctx, req.CustomerName, req.Phone, req.Text)
}

func (s *applicationService) AcceptOrder(ctx context.Context, id int64) (*core.Order, error) {
	return s.orders.Accept(ctx, id)
}

func (s *applicationService) RejectOrder(ctx context.Context, id int64) (*core.Order, error) {
	return s.orders.Reject(ctx, id)
}

func (s *applicationService) MarkOrderPaid(ctx context.Context, id int64, mode core.PaymentMode) (*core.Order, error) {
	return s.orders.MarkPaid(ctx, id, mode)
}

func (s *applicationService) StoreCatalog(ctx context.Context) ([]core.Product, error) {
	return s.inventory.List(ctx)
}

func (s *applicationService) Checkout(ctx context.Context, req CheckoutRequest) (*core.CheckoutResult, error) {
	return s.orders.Checkout(ctx, req.CustomerName, req.Lines)
}

func (s *applicationService) StoreShareLink(ctx context.Context) (*StoreShare, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	msg := whatsapp.StoreShareMessage(s.storeURL)
	return &StoreShare{
		ShopName: settings.ShopName,
		Link:     whatsapp.ComposeLink("", msg),
	}, nil
}

func (s *applicationService) ListExpenses(ctx context.Context, period core.ExpensePeriod) ([]core.Expense, error) {
	return s.expenses.List(ctx, period, time.Now())
}

func (s *applicationService) AddExpense(ctx context.Context, req AddExpenseRequest) (*core.Expense, error) {
	return s.expenses.Add(ctx, req.Category, req.Amount, req.Description, req.Date)
}

func (s *applicationService) ExpenseBreakdown(ctx context.Context, period core.ExpensePeriod) ([]core.CategoryShare, error) {
	shares, _, err := s.expenses.Breakdown(ctx, period, time.Now())
	return shares, err
}

func (s *applicationService) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	return s.credits.List(ctx)
}

func (s *applicationService) GetCustomer(ctx context.Context, id int64) (*core.Customer, error) {
	return s.credits.Get(ctx, id)
}

func (s *applicationService) NewCustomer(ctx context.Context, req NewCustomerRequest) (*core.Customer, error) {
	return s.credits.NewCustomer(ctx, req.Name, req.Phone)
}

func (s *applicationService) AddCredit(ctx context.Context, req AddCreditRequest) (*core.Customer, error) {
	return s.credits.AddCredit(ctx, req.CustomerID, req.Amount, req.Description)
}

func (s *applicationService) SettleCredit(ctx context.Context, req SettleRequest) (*core.Customer, error) {
	return s.credits.Settle(ctx, req.CustomerID, req.Amount, req.Mode)
}

func (s *applicationService) PaymentReminder(ctx context.Context, req ReminderRequest) (*core.PaymentReminder, error) {
	return s.payments.BuildReminder(ctx, req.CustomerID, req.ConfigID)
}

func (s *applicationService) TotalDue(ctx context.Context) (decimal.Decimal, error) {
	return s.credits.TotalDue(ctx)
}

func (s *applicationService) GetSettings(ctx context.Context) (*core.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *applicationService) UpdateSettings(ctx context.Context, in core.Settings) (*core.Settings, error) {
	settings, err := s.settings.Update(ctx, in)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *applicationService) ListUPIConfigs(ctx context.Context) ([]core.UPIConfig, error) {
	return s.payments.ListConfigs(ctx)
}

func (s *applicationService) SaveUPIConfigs(ctx context.Context, configs []core.UPIConfig) ([]core.UPIConfig, error) {
	return s.payments.SaveConfigs(ctx, configs)
}

// Insights asks the model for an analysis of current inventory and orders.
// A missing API key or a failed call degrades to the static fallback so the
// screen always renders something.
func (s *applicationService) Insights(ctx context.Context) (*InsightsResult, error) {
	if !s.insights.Configured() {
		return &InsightsResult{Analysis: ai.Fallback(), Source: "fallback"}, nil
	}
	products, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	analysis, err := s.insights.Generate(ctx, products, orders)
	if err != nil {
		log.Printf("insights generation failed, serving fallback: %v", err)
		return &InsightsResult{Analysis: ai.Fallback(), Source: "fallback"}, nil
	}
	return &InsightsResult{Analysis: analysis, Source: "ai"}, nil
}

func (s *applicationService) InterpretVoice(text string) core.VoiceCommand {
	return core.ParseVoiceCommand(text)
}

func (s *applicationService) RequestOTP(phone string) (*OTPSession, error) {
	id, err := s.otp.SendOTP(phone)
	if err != nil {
		return nil, err
	}
	return &OTPSession{SessionID: id}, nil
}

func (s *applicationService) VerifyOTP(sessionID, otp string) (string, error) {
	return s.otp.VerifyOTP(sessionID, otp)
}

func (s *applicationService) Seed(ctx context.Context, now time.Time) error {
	return s.db.Seed(ctx, now)
}
