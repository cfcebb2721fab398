package app

import (
	"github.com/shopspring/decimal"

	"vypaar-saathi/internal/core"
)

// ImportOrderRequest is the input for parsing pasted WhatsApp order text.
type ImportOrderRequest struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Text         string `json:"text"`
}

// CheckoutRequest is a storefront cart hand-off.
type CheckoutRequest struct {
	CustomerName string          `json:"customerName"`
	Lines        []core.CartLine `json:"lines"`
}

// AddExpenseRequest records one spend entry.
type AddExpenseRequest struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // YYYY-MM-DD, empty means today
}

// NewCustomerRequest opens a credit account.
type NewCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// AddCreditRequest issues udhaar to a customer.
type AddCreditRequest struct {
	CustomerID  int64           `json:"customerId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// SettleRequest records a payment or wave-off against a balance.
type SettleRequest struct {
	CustomerID int64            `json:"customerId"`
	Amount     decimal.Decimal  `json:"amount"`
	Mode       core.PaymentMode `json:"mode"`
}

// ReminderRequest selects the customer and QR config for a payment request.
type ReminderRequest struct {
	CustomerID int64  `json:"customerId"`
	ConfigID   string `json:"configId"` // empty picks the first config
}
