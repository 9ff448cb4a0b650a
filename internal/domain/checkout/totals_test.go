package checkout

import (
	"testing"

	"github.com/google/uuid"
)

func mustLine(t *testing.T, name string, priceCents int64, qty int) *LineItem {
	t.Helper()
	item, err := NewLineItem(uuid.New(), name, priceCents, 100)
	if err != nil {
		t.Fatalf("NewLineItem(%s): %v", name, err)
	}
	item.Quantity = qty
	return item
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	got := ComputeTotals(nil, DiscountConfig{}, 10, 0)
	if got.SubTotal != 0 || got.Tax != 0 || got.Discount != 0 || got.Total != 0 || got.Due != 0 || got.ChangeReturn != 0 {
		t.Errorf("empty cart totals = %+v, want all zero", got)
	}
}

func TestComputeTotalsSingleLineNoDiscount(t *testing.T) {
	lines := []*LineItem{mustLine(t, "Paracetamol 500mg", 250, 4)}
	got := ComputeTotals(lines, DiscountConfig{}, 0, 0)
	if got.SubTotal != 1000 {
		t.Errorf("subtotal = %d, want 1000", got.SubTotal)
	}
	if got.Total != 1000 {
		t.Errorf("total = %d, want 1000", got.Total)
	}
}

func TestComputeTotalsSaleDiscountPercent(t *testing.T) {
	lines := []*LineItem{mustLine(t, "Amoxicillin 250mg", 10000, 1)}
	var cfg DiscountConfig
	cfg.SetPercent(10)

	got := ComputeTotals(lines, cfg, 0, 0)
	if got.Discount != 1000 {
		t.Errorf("discount = %d, want 1000", got.Discount)
	}
	if got.Total != 9000 {
		t.Errorf("total = %d, want 9000", got.Total)
	}
}

func TestComputeTotalsWithTax(t *testing.T) {
	// cart = [{price 5.00, qty 2}], discount 0%, tax 10%
	// => subtotal 10.00, tax 1.00, total 11.00
	lines := []*LineItem{mustLine(t, "Cetirizine 10mg", 500, 2)}
	got := ComputeTotals(lines, DiscountConfig{}, 10, 0)
	if got.SubTotal != 1000 {
		t.Errorf("subtotal = %d, want 1000", got.SubTotal)
	}
	if got.Tax != 100 {
		t.Errorf("tax = %d, want 100", got.Tax)
	}
	if got.Total != 1100 {
		t.Errorf("total = %d, want 1100", got.Total)
	}
}

func TestComputeTotalsLineDiscounts(t *testing.T) {
	pct := mustLine(t, "Ibuprofen 400mg", 1000, 2) // gross 2000
	if err := pct.SetDiscountPercent(25); err != nil {
		t.Fatal(err)
	}
	fixed := mustLine(t, "Omeprazole 20mg", 500, 1) // gross 500
	if err := fixed.SetDiscountAmount(100); err != nil {
		t.Fatal(err)
	}

	got := ComputeTotals([]*LineItem{pct, fixed}, DiscountConfig{}, 0, 0)
	// 2000-500 + 500-100 = 1900
	if got.SubTotal != 1900 {
		t.Errorf("subtotal = %d, want 1900", got.SubTotal)
	}
}

func TestComputeTotalsDueAndChange(t *testing.T) {
	lines := []*LineItem{mustLine(t, "Metformin 500mg", 3000, 1)}

	partial := ComputeTotals(lines, DiscountConfig{}, 0, 1000)
	if partial.Due != 2000 || partial.ChangeReturn != 0 {
		t.Errorf("partial payment: due = %d change = %d, want 2000/0", partial.Due, partial.ChangeReturn)
	}

	over := ComputeTotals(lines, DiscountConfig{}, 0, 5000)
	if over.Due != 0 || over.ChangeReturn != 2000 {
		t.Errorf("overpayment: due = %d change = %d, want 0/2000", over.Due, over.ChangeReturn)
	}
}

func TestComputeTotalsNegativeTotalNotClamped(t *testing.T) {
	lines := []*LineItem{mustLine(t, "Loratadine 10mg", 500, 1)}
	var cfg DiscountConfig
	cfg.SetAmount(800)

	got := ComputeTotals(lines, cfg, 0, 0)
	if got.Total != -300 {
		t.Errorf("total = %d, want -300 (discount beyond subtotal represents a credit)", got.Total)
	}
	if got.Due != 0 {
		t.Errorf("due = %d, want 0", got.Due)
	}
}

func TestDiscountConfigMutualExclusion(t *testing.T) {
	var cfg DiscountConfig
	cfg.SetPercent(15)
	cfg.SetAmount(500)
	if cfg.Percent != 0 || cfg.Amount != 500 {
		t.Errorf("SetAmount should reset percent: %+v", cfg)
	}
	cfg.SetPercent(10)
	if cfg.Amount != 0 || cfg.Percent != 10 {
		t.Errorf("SetPercent should reset amount: %+v", cfg)
	}
}
