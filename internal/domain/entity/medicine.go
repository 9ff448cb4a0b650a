package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Medicine represents a stocked medicine in the pharmacy inventory
type Medicine struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BranchID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	UnitID        *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	GenericName   *string        `gorm:"size:255" json:"generic_name,omitempty"`
	Slug          string         `gorm:"size:255;unique;not null" json:"slug"`
	Code          string         `gorm:"size:100;unique;not null" json:"code"`
	BatchNumber   *string        `gorm:"size:100" json:"batch_number,omitempty"`
	ExpiryDate    *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	Quantity      int            `gorm:"default:0" json:"quantity"`
	QuantityAlert int            `gorm:"default:0" json:"quantity_alert"`
	BuyingPrice   int64          `gorm:"default:0" json:"buying_price"`  // cents
	SellingPrice  int64          `gorm:"default:0" json:"selling_price"` // cents
	Tax           int            `gorm:"default:0" json:"tax"`
	TaxType       enum.TaxType   `gorm:"default:0" json:"tax_type"`
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch   Branch    `gorm:"foreignKey:BranchID" json:"-"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// BeforeCreate generates a UUID before creating a new medicine
func (m *Medicine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Medicine model
func (Medicine) TableName() string {
	return "medicines"
}

// GetSellingPriceDecimal returns the selling price as a decimal (for display)
func (m *Medicine) GetSellingPriceDecimal() float64 {
	return float64(m.SellingPrice) / 100
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (m *Medicine) SetSellingPriceFromDecimal(price float64) {
	m.SellingPrice = int64(price * 100)
}

// SetBuyingPriceFromDecimal sets the buying price from a decimal value
func (m *Medicine) SetBuyingPriceFromDecimal(price float64) {
	m.BuyingPrice = int64(price * 100)
}

// InteractionName returns the name used for drug-interaction lookups:
// the generic name when present, otherwise the display name.
func (m *Medicine) InteractionName() string {
	if m.GenericName != nil && *m.GenericName != "" {
		return *m.GenericName
	}
	return m.Name
}

// IsExpiringBefore reports whether the medicine expires before the given date.
func (m *Medicine) IsExpiringBefore(t time.Time) bool {
	return m.ExpiryDate != nil && m.ExpiryDate.Before(t)
}

// MarshalJSON converts Medicine to JSON with decimal prices
func (m Medicine) MarshalJSON() ([]byte, error) {
	type Alias Medicine
	return json.Marshal(&struct {
		Alias
		BuyingPrice  float64 `json:"buying_price"`
		SellingPrice float64 `json:"selling_price"`
	}{
		Alias:        Alias(m),
		BuyingPrice:  float64(m.BuyingPrice) / 100,
		SellingPrice: float64(m.SellingPrice) / 100,
	})
}

// Category represents a medicine category (analgesics, antibiotics, ...)
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch    Branch     `gorm:"foreignKey:BranchID" json:"-"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Medicines []Medicine `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Unit represents a dispensing unit (tablet, bottle, strip, ...)
type Unit struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	ShortCode string         `gorm:"size:50" json:"short_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch    Branch     `gorm:"foreignKey:BranchID" json:"-"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Medicines []Medicine `gorm:"foreignKey:UnitID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new unit
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}
