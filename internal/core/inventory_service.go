package core

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// InventoryService materializes the product catalog and supports the fuzzy
// name lookup the order parser depends on.
type InventoryService interface {
	List(ctx context.Context) ([]Product, error)
	// Add appends a product. Duplicate names are permitted; they will both be
	// candidates for fuzzy lookup, first match wins.
	Add(ctx context.Context, p Product) (*Product, error)
	// Update replaces the product with the same ID.
	Update(ctx context.Context, p Product) error
	// FindByName returns the first catalog product whose normalized name
	// contains, or is contained in, the normalized query. Nil when no match.
	FindByName(ctx context.Context, query string) (*Product, error)
	// LowStock returns all products below their minimum stock level.
	LowStock(ctx context.Context) ([]Product, error)
}

type inventoryService struct {
	db *DB
}

func NewInventoryService(db *DB) InventoryService {
	return &inventoryService{db: db}
}

func (s *inventoryService) List(ctx context.Context) ([]Product, error) {
	return s.db.Products(ctx)
}

func (s *inventoryService) Add(ctx context.Context, p Product) (*Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("product name: %w", ErrMissingField)
	}
	if p.ID == 0 {
		p.ID = time.Now().UnixMilli()
	}
	if p.Trend == "" {
		p.Trend = TrendStable
	}

	s.db.Lock()
	defer s.db.Unlock()

	products, err := s.db.Products(ctx)
	if err != nil {
		return nil, err
	}
	products = append(products, p)
	if err := s.db.SaveProducts(ctx, products); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *inventoryService) Update(ctx context.Context, p Product) error {
	s.db.Lock()
	defer s.db.Unlock()

	products, err := s.db.Products(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			return s.db.SaveProducts(ctx, products)
		}
	}
	return fmt.Errorf("product %d: %w", p.ID, ErrNotFound)
}

func (s *inventoryService) FindByName(ctx context.Context, query string) (*Product, error) {
	products, err := s.db.Products(ctx)
	if err != nil {
		return nil, err
	}
	return matchProduct(products, query), nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]Product, error) {
	products, err := s.db.Products(ctx)
	if err != nil {
		return nil, err
	}
	var low []Product
	for _, p := range products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

// matchProduct is the substring-either-way fuzzy lookup. Deliberately
// permissive so WhatsApp shorthand like "2 Milk" matches "Milk (500ml)";
// overlapping names ("Oil") resolve to whichever candidate comes first.
func matchProduct(products []Product, query string) *Product {
	q := normalizeName(query)
	if q == "" {
		return nil
	}
	for i := range products {
		n := normalizeName(products[i].Name)
		if n == "" {
			continue
		}
		if strings.Contains(n, q) || strings.Contains(q, n) {
			return &products[i]
		}
	}
	return nil
}

// normalizeName lowercases and strips everything but letters and digits.
func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
