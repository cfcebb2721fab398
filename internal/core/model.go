package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// dateFormat is the YYYY-MM-DD layout used for every ledger and expense date.
const dateFormat = "2006-01-02"

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Product is a catalog item. ID is the creation timestamp in milliseconds.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit,omitempty"`
	MinStock     decimal.Decimal `json:"minStock"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Trend        Trend           `json:"trend"`
}

// LowStock reports whether the product is below its reorder threshold.
// Derived, never stored.
func (p Product) LowStock() bool {
	return p.Quantity.LessThan(p.MinStock)
}

type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderAccepted OrderStatus = "accepted"
	OrderRejected OrderStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type PaymentMode string

const (
	PayCash    PaymentMode = "cash"
	PayUPI     PaymentMode = "upi"
	PayWaveOff PaymentMode = "wave-off"
)

// OrderItem is one parsed line of an order. Price is the catalog selling
// price at parse time; unmatched items carry price zero.
type OrderItem struct {
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"isAvailable"`
	StockQty    decimal.Decimal `json:"stockQty"`
}

// Order is a WhatsApp-relayed (or storefront) order. Status and
// PaymentStatus transition independently. PaymentMode is recorded when the
// order is marked paid and feeds the day-closing cash/UPI split.
type Order struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customerName"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaymentMode   PaymentMode     `json:"paymentMode,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

type CreditStatus string

const (
	CreditPaid    CreditStatus = "paid"
	CreditDue     CreditStatus = "due"
	CreditOverdue CreditStatus = "overdue"
)

type TransactionType string

const (
	TxnCredit  TransactionType = "credit"
	TxnPayment TransactionType = "payment"
)

// Transaction is one append-only ledger line. Credits are positive,
// payments negative, so the sum of amounts equals the running balance.
type Transaction struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Customer is an udhaar (store credit) account.
// Invariant: TotalCredit == sum of Transactions[].Amount.
type Customer struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	LastPayment  string          `json:"lastPayment"` // YYYY-MM-DD
	Status       CreditStatus    `json:"status"`
	Transactions []Transaction   `json:"transactions"`
}

// overdueAfter is how long an unpaid balance may sit before the customer
// counts as overdue.
const overdueAfter = 30 * 24 * time.Hour

// DeriveStatus computes the credit status purely from the balance and the
// last payment date. Every mutation applies it, so status can never drift
// from the ledger.
func DeriveStatus(balance decimal.Decimal, lastPayment string, now time.Time) CreditStatus {
	if balance.IsZero() || balance.IsNegative() {
		return CreditPaid
	}
	if lastPayment != "" {
		if t, err := time.Parse(dateFormat, lastPayment); err == nil && now.Sub(t) > overdueAfter {
			return CreditOverdue
		}
	}
	return CreditDue
}

// Expense is a single spend entry.
type Expense struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // YYYY-MM-DD
}

// ExpenseCategories are the recognized spend buckets. Anything else lands
// under Other.
var ExpenseCategories = []string{"Rent", "Electricity", "Transport", "Salary", "Other"}

// UPIConfig is one user-entered payment QR. QRImage is a base64 data URL as
// uploaded; UPIID is the optional textual handle.
type UPIConfig struct {
	ID         string `json:"id"`
	AppName    string `json:"appName"`
	CustomName string `json:"customName"`
	QRImage    string `json:"qrImage"`
	UPIID      string `json:"upiId,omitempty"`
}

// MaxUPIConfigs caps how many QR setups a shop may keep.
const MaxUPIConfigs = 5

// Settings is the flat shop profile and feature-toggle record.
type Settings struct {
	ShopName          string `json:"shopName"`
	OwnerName         string `json:"ownerName"`
	Mobile            string `json:"mobile"`
	Address           string `json:"address"`
	BusinessHours     string `json:"businessHours"`
	WhatsappConnected bool   `json:"whatsappConnected"`
	AutoReply         bool   `json:"autoReply"`
	OrderConfirmation bool   `json:"orderConfirmation"`
	LowStockWarning   bool   `json:"lowStockWarning"`
	AllowPartialOrder bool   `json:"allowPartialOrder"`
	AutoReorder       bool   `json:"autoReorder"`
	ShowRealProfit    bool   `json:"showRealProfit"`
	IncludeCredit     bool   `json:"includeCredit"`
	BlockRisky        bool   `json:"blockRisky"`
	EnableQRPayments  bool   `json:"enableQRPayments"`
	VoiceInput        bool   `json:"voiceInput"`
	DarkMode          bool   `json:"darkMode"`
	Language          string `json:"language"`
}

// DefaultSettings returns the first-run shop profile.
func DefaultSettings() Settings {
	return Settings{
		ShopName:          "My Kirana Shop",
		OwnerName:         "Shop Owner",
		Mobile:            "+91 98765 43210",
		Address:           "Shop 12, Main Market",
		BusinessHours:     "09:00 AM - 10:00 PM",
		WhatsappConnected: true,
		AutoReply:         true,
		OrderConfirmation: true,
		LowStockWarning:   true,
		AllowPartialOrder: true,
		AutoReorder:       true,
		IncludeCredit:     true,
		EnableQRPayments:  true,
		Language:          "English",
	}
}
