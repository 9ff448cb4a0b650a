package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a completed (or pending-due) POS transaction. Monetary
// columns are cents; the amounts on a sale are a snapshot of the totals
// shown at checkout and are never re-derived afterwards.
type Sale struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BranchID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	PatientID       *uuid.UUID         `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	SaleDate        time.Time          `gorm:"not null" json:"sale_date"`
	Status          enum.SaleStatus    `gorm:"default:0" json:"status"`
	InvoiceNo       string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	TotalItems      int                `gorm:"default:0" json:"total_items"`
	SubTotal        int64              `gorm:"default:0" json:"-"` // cents
	Tax             int64              `gorm:"default:0" json:"-"` // cents
	TaxPercentage   float64            `gorm:"type:decimal(5,2);default:0" json:"tax_percentage"`
	Discount        int64              `gorm:"default:0" json:"-"` // cents
	DiscountPercent float64            `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	Total           int64              `gorm:"default:0" json:"-"` // cents, may be negative (credit)
	Paid            int64              `gorm:"default:0" json:"-"` // cents
	Due             int64              `gorm:"default:0" json:"-"` // cents
	ChangeReturn    int64              `gorm:"default:0" json:"-"` // cents
	PaymentMethod   enum.PaymentMethod `gorm:"size:50;default:'cash'" json:"payment_method"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Branch  Branch     `gorm:"foreignKey:BranchID" json:"-"`
	User    User       `gorm:"foreignKey:UserID" json:"-"`
	Patient *Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Items   []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON converts cents to decimals for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal     float64 `json:"sub_total"`
		Tax          float64 `json:"tax"`
		Discount     float64 `json:"discount"`
		Total        float64 `json:"total"`
		Paid         float64 `json:"paid"`
		Due          float64 `json:"due"`
		ChangeReturn float64 `json:"change_return"`
	}{
		Alias:        Alias(s),
		SubTotal:     float64(s.SubTotal) / 100,
		Tax:          float64(s.Tax) / 100,
		Discount:     float64(s.Discount) / 100,
		Total:        float64(s.Total) / 100,
		Paid:         float64(s.Paid) / 100,
		Due:          float64(s.Due) / 100,
		ChangeReturn: float64(s.ChangeReturn) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.Total) / 100
}

// SaleItem is one dispensed line on a sale. Name, price, batch and expiry
// are copied from the medicine at checkout time so the receipt always shows
// what the customer was actually charged.
type SaleItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	MedicineID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"medicine_id"`
	MedicineName string         `gorm:"size:255;not null" json:"medicine_name"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	UnitPrice    int64          `gorm:"not null" json:"-"`  // cents
	Discount     int64          `gorm:"default:0" json:"-"` // cents
	Total        int64          `gorm:"not null" json:"-"`  // cents, net of line discount
	BatchNumber  *string        `gorm:"size:100" json:"batch_number,omitempty"`
	ExpiryDate   *time.Time     `json:"expiry_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale     Sale     `gorm:"foreignKey:SaleID" json:"-"`
	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

// MarshalJSON converts cents to decimals for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Discount  float64 `json:"discount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		Discount:  float64(si.Discount) / 100,
		Total:     float64(si.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
