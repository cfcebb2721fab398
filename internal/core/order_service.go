package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"vypaar-saathi/internal/whatsapp"
)

// OrderService turns pasted WhatsApp text into structured orders and drives
// the order lifecycle. Status and payment status transition independently.
type OrderService interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	// Import parses freeform order text against the catalog and persists a
	// new pending order. Parsing never fails; unmatched lines become
	// zero-priced "Unknown Item" entries the operator must review.
	Import(ctx context.Context, customerName, phone, text string) (*Order, error)
	Accept(ctx context.Context, id int64) (*Order, error)
	Reject(ctx context.Context, id int64) (*Order, error)
	// MarkPaid records payment against an order. Mode feeds the day-closing
	// cash/UPI split; empty mode defaults to cash.
	MarkPaid(ctx context.Context, id int64, mode PaymentMode) (*Order, error)
	// Checkout builds the storefront order message and WhatsApp link for the
	// shop's own number. Nothing is persisted; the shop imports the relayed
	// text like any other WhatsApp order.
	Checkout(ctx context.Context, customerName string, lines []CartLine) (*CheckoutResult, error)
}

// CartLine is one storefront cart entry, referencing a catalog product.
type CartLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CheckoutResult is the composed storefront order hand-off.
type CheckoutResult struct {
	Message      string          `json:"message"`
	WhatsAppLink string          `json:"whatsappLink"`
	Total        decimal.Decimal `json:"total"`
}

type orderService struct {
	db *DB
}

func NewOrderService(db *DB) OrderService {
	return &orderService{db: db}
}

// ParseOrderText converts a multi-line text block (roughly "<qty> <item>"
// per line) into order items cross-referenced against the catalog. One item
// per non-blank line, always; the worst case is an unknown zero-priced item.
func ParseOrderText(text string, catalog []Product) []OrderItem {
	var items []OrderItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, parseOrderLine(line, catalog))
	}
	return items
}

func parseOrderLine(line string, catalog []Product) OrderItem {
	qty := 1
	rest := line

	// Leading integer is the quantity; absent means 1.
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i > 0 {
		if n, err := strconv.Atoi(rest[:i]); err == nil {
			qty = n
		}
		rest = rest[i:]
	}

	// One literal "-" or "x" separator after the quantity is noise.
	rest = strings.TrimSpace(rest)
	if len(rest) > 0 && (rest[0] == '-' || rest[0] == 'x') {
		rest = rest[1:]
	}
	name := strings.TrimSpace(rest)

	if product := matchProduct(catalog, name); product != nil {
		return OrderItem{
			Name:        product.Name, // canonical catalog name
			Quantity:    qty,
			Price:       product.SellingPrice,
			IsAvailable: product.Quantity.GreaterThanOrEqual(decimal.NewFromInt(int64(qty))),
			StockQty:    product.Quantity,
		}
	}

	if name == "" {
		name = "Unknown Item"
	}
	return OrderItem{
		Name:        name,
		Quantity:    qty,
		Price:       decimal.Zero,
		IsAvailable: false,
		StockQty:    decimal.Zero,
	}
}

// OrderTotal sums price × quantity over all items. Unmatched items carry
// price zero and contribute nothing, whatever the customer expected to pay.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (s *orderService) List(ctx context.Context) ([]Order, error) {
	return s.db.Orders(ctx)
}

func (s *orderService) Get(ctx context.Context, id int64) (*Order, error) {
	orders, err := s.db.Orders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
}

func (s *orderService) Import(ctx context.Context, customerName, phone, text string) (*Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, fmt.Errorf("customer name: %w", ErrMissingField)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("order text: %w", ErrMissingField)
	}
	if strings.TrimSpace(phone) == "" {
		phone = "Unknown Number"
	}

	s.db.Lock()
	defer s.db.Unlock()

	catalog, err := s.db.Products(ctx)
	if err != nil {
		return nil, err
	}

	items := ParseOrderText(text, catalog)
	order := Order{
		ID:            time.Now().UnixMilli(),
		CustomerName:  customerName,
		Phone:         phone,
		Address:       "From WhatsApp Paste",
		Items:         items,
		Total:         OrderTotal(items),
		Status:        OrderPending,
		PaymentStatus: PaymentPending,
		Timestamp:     time.Now(),
	}

	orders, err := s.db.Orders(ctx)
	if err != nil {
		return nil, err
	}
	orders = append([]Order{order}, orders...)
	if err := s.db.SaveOrders(ctx, orders); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderService) Accept(ctx context.Context, id int64) (*Order, error) {
	return s.setStatus(ctx, id, OrderAccepted)
}

func (s *orderService) Reject(ctx context.Context, id int64) (*Order, error) {
	return s.setStatus(ctx, id, OrderRejected)
}

func (s *orderService) setStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error) {
	s.db.Lock()
	defer s.db.Unlock()

	orders, err := s.db.Orders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			if err := s.db.SaveOrders(ctx, orders); err != nil {
				return nil, err
			}
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
}

func (s *orderService) MarkPaid(ctx context.Context, id int64, mode PaymentMode) (*Order, error) {
	if mode == "" {
		mode = PayCash
	}
	if mode != PayCash && mode != PayUPI {
		return nil, fmt.Errorf("payment mode %q: %w", mode, ErrMissingField)
	}

	s.db.Lock()
	defer s.db.Unlock()

	orders, err := s.db.Orders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].PaymentStatus = PaymentPaid
			orders[i].PaymentMode = mode
			if err := s.db.SaveOrders(ctx, orders); err != nil {
				return nil, err
			}
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
}

func (s *orderService) Checkout(ctx context.Context, customerName string, lines []CartLine) (*CheckoutResult, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, fmt.Errorf("customer name: %w", ErrMissingField)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart: %w", ErrMissingField)
	}

	catalog, err := s.db.Products(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	var itemLines []string
	total := decimal.Zero
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, ErrNotFound)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for %s: %w", p.Name, ErrInvalidAmount)
		}
		itemLines = append(itemLines, fmt.Sprintf("%d %s", line.Quantity, p.Name))
		total = total.Add(p.SellingPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	settings, err := s.db.Settings(ctx)
	if err != nil {
		return nil, err
	}

	message := whatsapp.StorefrontOrderMessage(customerName, itemLines, total.StringFixed(0))
	return &CheckoutResult{
		Message:      message,
		WhatsAppLink: whatsapp.ComposeLink(settings.Mobile, message),
		Total:        total,
	}, nil
}
