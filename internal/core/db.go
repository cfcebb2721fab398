package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"vypaar-saathi/internal/store"
)

// Dataset keys. Values under each key are JSON arrays/objects with no
// schema version field; new fields must tolerate being absent.
const (
	KeyInventory = "vypaar_inventory"
	KeyOrders    = "vypaar_orders"
	KeyExpenses  = "vypaar_expenses"
	KeyCredits   = "vypaar_credits"
	KeySettings  = "vypaar_settings"
	KeyUPIConfig = "upi_config"
)

// DB is the typed persistence layer over the key-value Store. One mutex
// serializes read-modify-write sequences: mutating services hold Lock for
// the whole read/mutate/write cycle, which is the in-process analog of the
// one-event-at-a-time discipline the browser app relied on. Writers in
// other processes remain last-write-wins.
type DB struct {
	mu sync.Mutex
	kv store.Store
}

func NewDB(kv store.Store) *DB {
	return &DB{kv: kv}
}

// Lock serializes a read-modify-write sequence. Hold it across the whole
// mutation, not per call.
func (d *DB) Lock() { d.mu.Lock() }

func (d *DB) Unlock() { d.mu.Unlock() }

func (d *DB) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if _, err := d.kv.Load(ctx, KeyInventory, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (d *DB) SaveProducts(ctx context.Context, products []Product) error {
	return d.kv.Save(ctx, KeyInventory, products)
}

func (d *DB) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if _, err := d.kv.Load(ctx, KeyOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (d *DB) SaveOrders(ctx context.Context, orders []Order) error {
	return d.kv.Save(ctx, KeyOrders, orders)
}

func (d *DB) Expenses(ctx context.Context) ([]Expense, error) {
	var expenses []Expense
	if _, err := d.kv.Load(ctx, KeyExpenses, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (d *DB) SaveExpenses(ctx context.Context, expenses []Expense) error {
	return d.kv.Save(ctx, KeyExpenses, expenses)
}

func (d *DB) Customers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if _, err := d.kv.Load(ctx, KeyCredits, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (d *DB) SaveCustomers(ctx context.Context, customers []Customer) error {
	return d.kv.Save(ctx, KeyCredits, customers)
}

// Settings returns the stored settings, or the defaults when none exist yet.
func (d *DB) Settings(ctx context.Context) (Settings, error) {
	s := DefaultSettings()
	if _, err := d.kv.Load(ctx, KeySettings, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (d *DB) SaveSettings(ctx context.Context, s Settings) error {
	return d.kv.Save(ctx, KeySettings, s)
}

func (d *DB) UPIConfigs(ctx context.Context) ([]UPIConfig, error) {
	var configs []UPIConfig
	if _, err := d.kv.Load(ctx, KeyUPIConfig, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

func (d *DB) SaveUPIConfigs(ctx context.Context, configs []UPIConfig) error {
	return d.kv.Save(ctx, KeyUPIConfig, configs)
}

// Seed writes first-run demo data for any dataset that is still absent:
// default settings, a small starter inventory, and one pending order. Seeded
// datasets make every screen render something on a fresh install.
func (d *DB) Seed(ctx context.Context, now time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var s Settings
	found, err := d.kv.Load(ctx, KeySettings, &s)
	if err != nil {
		return fmt.Errorf("failed to check settings: %w", err)
	}
	if !found {
		if err := d.kv.Save(ctx, KeySettings, DefaultSettings()); err != nil {
			return err
		}
	}

	var products []Product
	found, err = d.kv.Load(ctx, KeyInventory, &products)
	if err != nil {
		return fmt.Errorf("failed to check inventory: %w", err)
	}
	if !found {
		if err := d.kv.Save(ctx, KeyInventory, seedInventory()); err != nil {
			return err
		}
	}

	var orders []Order
	found, err = d.kv.Load(ctx, KeyOrders, &orders)
	if err != nil {
		return fmt.Errorf("failed to check orders: %w", err)
	}
	if !found {
		if err := d.kv.Save(ctx, KeyOrders, seedOrders(now)); err != nil {
			return err
		}
	}

	return nil
}

func seedInventory() []Product {
	p := func(id int64, name, category string, qty, minStock, cost, sell int64, trend Trend) Product {
		return Product{
			ID:           id,
			Name:         name,
			Category:     category,
			Quantity:     decimal.NewFromInt(qty),
			MinStock:     decimal.NewFromInt(minStock),
			CostPrice:    decimal.NewFromInt(cost),
			SellingPrice: decimal.NewFromInt(sell),
			Trend:        trend,
		}
	}
	return []Product{
		p(1, "Milk (500ml)", "Dairy", 8, 20, 22, 25, TrendUp),
		p(2, "Bread", "Bakery", 5, 15, 25, 30, TrendUp),
		p(3, "Maggi Noodles", "Instant Food", 12, 30, 10, 12, TrendUp),
		p(4, "Tata Salt (1kg)", "Groceries", 45, 20, 18, 22, TrendStable),
		p(5, "Fortune Oil (1L)", "Cooking Oil", 18, 15, 145, 165, TrendStable),
		p(6, "Parle-G Biscuits", "Snacks", 60, 40, 4, 5, TrendUp),
	}
}

func seedOrders(now time.Time) []Order {
	return []Order{
		{
			ID:           1,
			CustomerName: "Ravi Kumar",
			Phone:        "+91 98765 43210",
			Address:      "Shop No. 12, MG Road, Near Temple",
			Items: []OrderItem{
				{Name: "Milk (500ml)", Quantity: 3, Price: decimal.NewFromInt(25), IsAvailable: true, StockQty: decimal.NewFromInt(8)},
				{Name: "Bread", Quantity: 2, Price: decimal.NewFromInt(30), IsAvailable: true, StockQty: decimal.NewFromInt(5)},
			},
			Total:         decimal.NewFromInt(135),
			Status:        OrderPending,
			PaymentStatus: PaymentPaid,
			Timestamp:     now.Add(-10 * time.Minute),
		},
	}
}
