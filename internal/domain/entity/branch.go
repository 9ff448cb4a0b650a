package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch represents one pharmacy/hospital branch in the multi-branch system
type Branch struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Settings  BranchSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner   User               `gorm:"foreignKey:OwnerID" json:"-"`
	Members []BranchMembership `gorm:"foreignKey:BranchID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new branch
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}

// MemberUser is a subset of user fields for membership responses
type MemberUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// BranchMembership represents a user's membership in a branch
type BranchMembership struct {
	BranchID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"branch_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      string    `gorm:"size:50;default:'member'" json:"role"` // owner, admin, member
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Branch Branch `gorm:"foreignKey:BranchID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	// Computed field for JSON response
	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

// PopulateUserDetails populates the MemberUser field from the User relationship
func (bm *BranchMembership) PopulateUserDetails() {
	if bm.User.ID != uuid.Nil {
		bm.MemberUser = &MemberUser{
			ID:        bm.User.ID,
			FirstName: bm.User.FirstName,
			LastName:  bm.User.LastName,
			Email:     bm.User.Email,
		}
	}
}

// TableName returns the table name for the BranchMembership model
func (BranchMembership) TableName() string {
	return "branch_memberships"
}

// BranchSettings holds per-branch pharmacy configuration
type BranchSettings struct {
	// Localization
	Currency   string `json:"currency,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// Checkout configuration
	TaxRate       float64 `json:"tax_rate,omitempty"` // percentage applied at POS
	TaxLabel      string  `json:"tax_label,omitempty"`
	InvoicePrefix string  `json:"invoice_prefix,omitempty"`

	// Receipt identity
	ReceiptHeader string `json:"receipt_header,omitempty"`
	ReceiptFooter string `json:"receipt_footer,omitempty"`

	// Safety
	BlockOnInteraction bool `json:"block_on_interaction,omitempty"`

	// Notifications
	EmailNotifications bool `json:"email_notifications,omitempty"`
	LowStockAlerts     bool `json:"low_stock_alerts,omitempty"`
	ExpiryAlerts       bool `json:"expiry_alerts,omitempty"`
}

// Scan implements the sql.Scanner interface for BranchSettings
func (bs *BranchSettings) Scan(value interface{}) error {
	if value == nil {
		*bs = BranchSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan BranchSettings: unsupported type")
	}

	return json.Unmarshal(bytes, bs)
}

// Value implements the driver.Valuer interface for BranchSettings
func (bs BranchSettings) Value() (driver.Value, error) {
	return json.Marshal(bs)
}

// DefaultBranchSettings returns default settings for new branches
func DefaultBranchSettings() BranchSettings {
	return BranchSettings{
		Currency:           "KES",
		Timezone:           "Africa/Nairobi",
		DateFormat:         "DD/MM/YYYY",
		TaxRate:            0,
		TaxLabel:           "VAT",
		InvoicePrefix:      "INV-",
		BlockOnInteraction: true,
		EmailNotifications: true,
		LowStockAlerts:     true,
		ExpiryAlerts:       true,
	}
}
