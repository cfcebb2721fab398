package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreditService maintains per-customer udhaar balances with an append-only
// transaction log. Transactions are never edited or deleted; correcting a
// mistake means posting an offsetting transaction.
type CreditService interface {
	List(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, id int64) (*Customer, error)
	// NewCustomer creates a zero-balance account. Name and phone are required.
	NewCustomer(ctx context.Context, name, phone string) (*Customer, error)
	// AddCredit issues udhaar: appends a positive credit transaction and
	// raises the balance. Amount must be positive.
	AddCredit(ctx context.Context, id int64, amount decimal.Decimal, description string) (*Customer, error)
	// Settle records a payment (or a wave-off, which is a payment in all but
	// description): appends a negative transaction and lowers the balance.
	// Amount must be positive and no more than the outstanding balance, so a
	// partial wave-off is allowed and the balance can never go negative.
	Settle(ctx context.Context, id int64, amount decimal.Decimal, mode PaymentMode) (*Customer, error)
	// TotalDue sums outstanding balances across all customers.
	TotalDue(ctx context.Context) (decimal.Decimal, error)
}

type creditService struct {
	db  *DB
	now func() time.Time
}

func NewCreditService(db *DB) CreditService {
	return &creditService{db: db, now: time.Now}
}

func (s *creditService) List(ctx context.Context) ([]Customer, error) {
	return s.db.Customers(ctx)
}

func (s *creditService) Get(ctx context.Context, id int64) (*Customer, error) {
	customers, err := s.db.Customers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
}

func (s *creditService) NewCustomer(ctx context.Context, name, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("customer name and phone: %w", ErrMissingField)
	}

	now := s.now()
	customer := Customer{
		ID:           now.UnixMilli(),
		Name:         name,
		Phone:        phone,
		TotalCredit:  decimal.Zero,
		LastPayment:  now.Format(dateFormat),
		Status:       CreditPaid,
		Transactions: []Transaction{},
	}

	s.db.Lock()
	defer s.db.Unlock()

	customers, err := s.db.Customers(ctx)
	if err != nil {
		return nil, err
	}
	customers = append([]Customer{customer}, customers...)
	if err := s.db.SaveCustomers(ctx, customers); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *creditService) AddCredit(ctx context.Context, id int64, amount decimal.Decimal, description string) (*Customer, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	return s.mutate(ctx, id, func(c *Customer) error {
		c.TotalCredit = c.TotalCredit.Add(amount)
		c.Transactions = append([]Transaction{{
			Date:        now.Format(dateFormat),
			Type:        TxnCredit,
			Amount:      amount,
			Description: description,
		}}, c.Transactions...)
		c.Status = DeriveStatus(c.TotalCredit, c.LastPayment, now)
		return nil
	})
}

func (s *creditService) Settle(ctx context.Context, id int64, amount decimal.Decimal, mode PaymentMode) (*Customer, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var description string
	switch mode {
	case PayWaveOff:
		description = "Waived Off / Discount"
	case PayCash, PayUPI:
		description = "Paid via " + strings.ToUpper(string(mode))
	default:
		return nil, fmt.Errorf("payment mode %q: %w", mode, ErrMissingField)
	}

	now := s.now()
	return s.mutate(ctx, id, func(c *Customer) error {
		if amount.GreaterThan(c.TotalCredit) {
			return ErrAmountExceeds
		}
		c.TotalCredit = c.TotalCredit.Sub(amount)
		c.LastPayment = now.Format(dateFormat)
		c.Transactions = append([]Transaction{{
			Date:        now.Format(dateFormat),
			Type:        TxnPayment,
			Amount:      amount.Neg(), // ledger sums to the running balance
			Description: description,
		}}, c.Transactions...)
		c.Status = DeriveStatus(c.TotalCredit, c.LastPayment, now)
		return nil
	})
}

// mutate applies fn to the customer with the given ID under the DB lock and
// persists the whole dataset. fn returning an error aborts with no write.
func (s *creditService) mutate(ctx context.Context, id int64, fn func(*Customer) error) (*Customer, error) {
	s.db.Lock()
	defer s.db.Unlock()

	customers, err := s.db.Customers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			if err := fn(&customers[i]); err != nil {
				return nil, err
			}
			if err := s.db.SaveCustomers(ctx, customers); err != nil {
				return nil, err
			}
			return &customers[i], nil
		}
	}
	return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
}

func (s *creditService) TotalDue(ctx context.Context) (decimal.Decimal, error) {
	customers, err := s.db.Customers(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, c := range customers {
		total = total.Add(c.TotalCredit)
	}
	return total, nil
}
