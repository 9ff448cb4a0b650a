package checkout

import (
	"github.com/google/uuid"
)

// Cart is the ordered collection of line items for one POS session.
// Mutations are synchronous; callers that share a cart across goroutines
// must serialize access (the cart service does).
type Cart struct {
	lines []*LineItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem adds a line to the cart. If a line with the same medicine ID
// already exists its quantity is incremented by 1, otherwise the item is
// appended as given.
func (c *Cart) AddItem(item *LineItem) {
	for _, line := range c.lines {
		if line.MedicineID == item.MedicineID {
			line.Quantity++
			return
		}
	}
	c.lines = append(c.lines, item)
}

// UpdateQuantity adds delta to the line's quantity. If the resulting
// quantity drops to zero or below the line is removed. Unknown IDs are a
// no-op, which makes repeated decrements idempotent.
func (c *Cart) UpdateQuantity(medicineID uuid.UUID, delta int) {
	for i, line := range c.lines {
		if line.MedicineID == medicineID {
			line.Quantity += delta
			if line.Quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return
		}
	}
}

// RemoveItem deletes the line unconditionally.
func (c *Cart) RemoveItem(medicineID uuid.UUID) {
	for i, line := range c.lines {
		if line.MedicineID == medicineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns the cart's line items in insertion order.
func (c *Cart) Lines() []*LineItem {
	return c.lines
}

// Find returns the line for the given medicine, or nil.
func (c *Cart) Find(medicineID uuid.UUID) *LineItem {
	for _, line := range c.lines {
		if line.MedicineID == medicineID {
			return line
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity returns the summed quantity across all lines.
func (c *Cart) TotalQuantity() int {
	var n int
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}
