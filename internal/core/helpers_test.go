package core_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"vypaar-saathi/internal/core"
	"vypaar-saathi/internal/store"
)

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func newTestDB(t *testing.T) *core.DB {
	t.Helper()
	return core.NewDB(store.NewMemoryStore())
}

func testCatalog() []core.Product {
	p := func(id int64, name string, qty, minStock, sell int64) core.Product {
		return core.Product{
			ID:           id,
			Name:         name,
			Quantity:     decimal.NewFromInt(qty),
			MinStock:     decimal.NewFromInt(minStock),
			SellingPrice: decimal.NewFromInt(sell),
		}
	}
	return []core.Product{
		p(1, "Milk (500ml)", 8, 20, 25),
		p(2, "Bread", 5, 15, 30),
		p(3, "Maggi Noodles", 12, 30, 12),
		p(4, "Tata Salt (1kg)", 45, 20, 22),
		p(5, "Fortune Oil (1L)", 18, 15, 165),
	}
}

func seedCatalog(t *testing.T, db *core.DB) {
	t.Helper()
	if err := db.SaveProducts(context.Background(), testCatalog()); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
}
