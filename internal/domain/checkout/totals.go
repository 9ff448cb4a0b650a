package checkout

import (
	"github.com/shopspring/decimal"
)

// DiscountConfig is the sale-level discount for one transaction. Percentage
// and fixed amount are mutually exclusive: setting one resets the other.
type DiscountConfig struct {
	Percent float64 `json:"percent"` // 0-100, applied to subtotal
	Amount  int64   `json:"amount"`  // cents
}

// SetPercent switches the config to a percentage discount.
func (d *DiscountConfig) SetPercent(pct float64) {
	d.Percent = pct
	d.Amount = 0
}

// SetAmount switches the config to a fixed discount in cents.
func (d *DiscountConfig) SetAmount(cents int64) {
	d.Amount = cents
	d.Percent = 0
}

// IsZero reports whether no sale-level discount is configured.
func (d DiscountConfig) IsZero() bool {
	return d.Percent == 0 && d.Amount == 0
}

// Totals is the derived breakdown for a cart. All amounts are cents.
// Total is intentionally not clamped at zero: a sale-level discount larger
// than subtotal plus tax yields a negative total (a credit).
type Totals struct {
	SubTotal     int64 `json:"sub_total"`
	Tax          int64 `json:"tax"`
	Discount     int64 `json:"discount"`
	Total        int64 `json:"total"`
	Paid         int64 `json:"paid"`
	Due          int64 `json:"due"`
	ChangeReturn int64 `json:"change_return"`
}

var hundred = decimal.NewFromInt(100)

// LineNet returns the per-line net amount in cents:
// unitPrice*quantity minus the line discount (fixed amount wins over
// percentage, both default to 0).
func LineNet(l *LineItem) int64 {
	gross := decimal.NewFromInt(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
	var disc decimal.Decimal
	switch {
	case l.DiscountAmount > 0:
		disc = decimal.NewFromInt(l.DiscountAmount)
	case l.DiscountPercent > 0:
		disc = gross.Mul(decimal.NewFromFloat(l.DiscountPercent)).Div(hundred)
	}
	return gross.Sub(disc).Round(0).IntPart()
}

// ComputeTotals derives the totals breakdown from cart lines, the sale-level
// discount, a tax percentage (10 means 10%) and the amount paid in cents.
// It is total over its inputs: an empty line list yields all-zero totals and
// no combination of inputs produces an error.
func ComputeTotals(lines []*LineItem, discount DiscountConfig, taxPercent float64, paidCents int64) Totals {
	var subTotal int64
	for _, l := range lines {
		subTotal += LineNet(l)
	}

	sub := decimal.NewFromInt(subTotal)
	tax := sub.Mul(decimal.NewFromFloat(taxPercent)).Div(hundred).Round(0).IntPart()

	var disc int64
	switch {
	case discount.Amount > 0:
		disc = discount.Amount
	case discount.Percent > 0:
		disc = sub.Mul(decimal.NewFromFloat(discount.Percent)).Div(hundred).Round(0).IntPart()
	}

	total := subTotal + tax - disc

	due := total - paidCents
	if due < 0 {
		due = 0
	}
	change := paidCents - total
	if change < 0 {
		change = 0
	}

	return Totals{
		SubTotal:     subTotal,
		Tax:          tax,
		Discount:     disc,
		Total:        total,
		Paid:         paidCents,
		Due:          due,
		ChangeReturn: change,
	}
}
