package request

import "github.com/google/uuid"

// CreateMedicineRequest represents a medicine creation request
type CreateMedicineRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	UnitID        *uuid.UUID `json:"unit_id"`
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	GenericName   *string    `json:"generic_name" binding:"omitempty,max=255"`
	Code          string     `json:"code" binding:"omitempty,max=100"`
	BatchNumber   *string    `json:"batch_number" binding:"omitempty,max=100"`
	ExpiryDate    *string    `json:"expiry_date"` // YYYY-MM-DD
	Quantity      int        `json:"quantity" binding:"min=0"`
	QuantityAlert int        `json:"quantity_alert" binding:"min=0"`
	BuyingPrice   float64    `json:"buying_price" binding:"min=0"`
	SellingPrice  float64    `json:"selling_price" binding:"min=0"`
	Tax           int        `json:"tax" binding:"min=0,max=100"`
	TaxType       int        `json:"tax_type" binding:"min=0,max=1"`
	Notes         *string    `json:"notes"`
}

// UpdateMedicineRequest represents a medicine update request
type UpdateMedicineRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	UnitID        *uuid.UUID `json:"unit_id"`
	Name          *string    `json:"name" binding:"omitempty,min=2,max=255"`
	GenericName   *string    `json:"generic_name" binding:"omitempty,max=255"`
	Code          *string    `json:"code" binding:"omitempty,min=1,max=100"`
	BatchNumber   *string    `json:"batch_number" binding:"omitempty,max=100"`
	ExpiryDate    *string    `json:"expiry_date"` // YYYY-MM-DD
	Quantity      *int       `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert *int       `json:"quantity_alert" binding:"omitempty,min=0"`
	BuyingPrice   *float64   `json:"buying_price" binding:"omitempty,min=0"`
	SellingPrice  *float64   `json:"selling_price" binding:"omitempty,min=0"`
	Tax           *int       `json:"tax" binding:"omitempty,min=0,max=100"`
	TaxType       *int       `json:"tax_type" binding:"omitempty,min=0,max=1"`
	Notes         *string    `json:"notes"`
}

// MedicineFilterRequest represents medicine filter parameters
type MedicineFilterRequest struct {
	Search         string `form:"search"`
	CategoryID     string `form:"category_id"`
	UnitID         string `form:"unit_id"`
	LowStock       bool   `form:"low_stock"`
	ExpiringInDays int    `form:"expiring_in_days"`
	SortBy         string `form:"sort_by"`
	SortOrder      string `form:"sort_order"`
	Page           int    `form:"page"`
	PerPage        int    `form:"per_page"`
}
