package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/pkg/apperror"
)

// LineItem is one medicine entry in a POS cart. It is constructed once via
// NewLineItem and mutated only through Cart operations, so a line item in a
// cart always satisfies Quantity >= 1.
type LineItem struct {
	MedicineID      uuid.UUID  `json:"medicine_id"`
	Name            string     `json:"name"`
	GenericName     string     `json:"generic_name,omitempty"`
	UnitPrice       int64      `json:"-"` // cents
	Quantity        int        `json:"quantity"`
	AvailableStock  int        `json:"available_stock"` // advisory only, never enforced here
	BatchNumber     *string    `json:"batch_number,omitempty"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	DiscountPercent float64    `json:"discount_percent,omitempty"`
	DiscountAmount  int64      `json:"-"` // cents, mutually exclusive with DiscountPercent
}

// NewLineItem validates and builds a cart line with quantity 1.
func NewLineItem(medicineID uuid.UUID, name string, unitPriceCents int64, availableStock int) (*LineItem, error) {
	if medicineID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Medicine ID is required")
	}
	if name == "" {
		return nil, apperror.NewBadRequestError("Medicine name is required")
	}
	if unitPriceCents < 0 {
		return nil, apperror.NewBadRequestError("Unit price cannot be negative")
	}
	return &LineItem{
		MedicineID:     medicineID,
		Name:           name,
		UnitPrice:      unitPriceCents,
		Quantity:       1,
		AvailableStock: availableStock,
	}, nil
}

// SetDiscountPercent applies a per-line percentage discount, clearing any
// fixed line discount.
func (l *LineItem) SetDiscountPercent(pct float64) error {
	if pct < 0 || pct > 100 {
		return apperror.NewBadRequestError("Line discount percentage must be between 0 and 100")
	}
	l.DiscountPercent = pct
	l.DiscountAmount = 0
	return nil
}

// SetDiscountAmount applies a fixed per-line discount in cents, clearing any
// percentage line discount.
func (l *LineItem) SetDiscountAmount(cents int64) error {
	if cents < 0 {
		return apperror.NewBadRequestError("Line discount cannot be negative")
	}
	l.DiscountAmount = cents
	l.DiscountPercent = 0
	return nil
}
