package checkout

import (
	"testing"

	"github.com/google/uuid"
)

func TestCartAddItemIncrementsExisting(t *testing.T) {
	cart := NewCart()
	id := uuid.New()
	item, err := NewLineItem(id, "Paracetamol 500mg", 250, 50)
	if err != nil {
		t.Fatal(err)
	}

	cart.AddItem(item)
	dup, _ := NewLineItem(id, "Paracetamol 500mg", 250, 50)
	cart.AddItem(dup)

	if len(cart.Lines()) != 1 {
		t.Fatalf("lines = %d, want 1", len(cart.Lines()))
	}
	if got := cart.Find(id).Quantity; got != 2 {
		t.Errorf("quantity = %d, want 2", got)
	}
}

func TestCartUpdateQuantityRemovesAtZero(t *testing.T) {
	cart := NewCart()
	id := uuid.New()
	item, _ := NewLineItem(id, "Aspirin 75mg", 150, 20)
	item.Quantity = 3
	cart.AddItem(item)

	cart.UpdateQuantity(id, -3)
	if !cart.IsEmpty() {
		t.Fatal("cart should be empty after decrementing quantity to zero")
	}

	// Idempotent: the line no longer exists, so this is a no-op.
	cart.UpdateQuantity(id, -1)
	if !cart.IsEmpty() {
		t.Fatal("update on missing line should be a no-op")
	}
}

func TestCartUpdateQuantityNoStockCeiling(t *testing.T) {
	cart := NewCart()
	id := uuid.New()
	item, _ := NewLineItem(id, "Vitamin C", 100, 2)
	cart.AddItem(item)

	// Stock is advisory; the cart itself never blocks on it.
	cart.UpdateQuantity(id, 10)
	if got := cart.Find(id).Quantity; got != 11 {
		t.Errorf("quantity = %d, want 11", got)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCart()
	a, _ := NewLineItem(uuid.New(), "Drug A", 100, 10)
	b, _ := NewLineItem(uuid.New(), "Drug B", 200, 10)
	cart.AddItem(a)
	cart.AddItem(b)

	cart.RemoveItem(a.MedicineID)
	if len(cart.Lines()) != 1 || cart.Find(a.MedicineID) != nil {
		t.Fatal("RemoveItem should delete the line unconditionally")
	}

	cart.Clear()
	if !cart.IsEmpty() {
		t.Fatal("Clear should empty the cart")
	}
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	cart := NewCart()
	names := []string{"First", "Second", "Third"}
	for _, n := range names {
		item, _ := NewLineItem(uuid.New(), n, 100, 10)
		cart.AddItem(item)
	}
	for i, line := range cart.Lines() {
		if line.Name != names[i] {
			t.Errorf("line %d = %s, want %s", i, line.Name, names[i])
		}
	}
}

func TestNewLineItemValidation(t *testing.T) {
	if _, err := NewLineItem(uuid.Nil, "X", 100, 1); err == nil {
		t.Error("nil medicine ID should be rejected")
	}
	if _, err := NewLineItem(uuid.New(), "", 100, 1); err == nil {
		t.Error("empty name should be rejected")
	}
	if _, err := NewLineItem(uuid.New(), "X", -1, 1); err == nil {
		t.Error("negative price should be rejected")
	}
	item, err := NewLineItem(uuid.New(), "X", 100, 1)
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 1 {
		t.Errorf("new line quantity = %d, want 1", item.Quantity)
	}
	if err := item.SetDiscountPercent(150); err == nil {
		t.Error("discount percent above 100 should be rejected")
	}
}
