package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSettings represents user-specific application settings. The POS
// checkout reads DefaultTaxRate and Currency from here when the branch
// does not override them.
type UserSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// General settings
	Language   string `gorm:"size:10;default:'en'" json:"language"`
	Timezone   string `gorm:"size:50;default:'Africa/Nairobi'" json:"timezone"`
	Currency   string `gorm:"size:10;default:'KES'" json:"currency"`
	DateFormat string `gorm:"size:20;default:'DD/MM/YYYY'" json:"date_format"`

	// POS settings
	DefaultTaxRate   float64 `gorm:"type:decimal(5,2);default:0" json:"default_tax_rate"`
	ReceiptAutoPrint bool    `gorm:"default:true" json:"receipt_auto_print"`

	// Notifications
	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	LowStockAlerts     bool `gorm:"default:true" json:"low_stock_alerts"`
	ExpiryAlerts       bool `gorm:"default:true" json:"expiry_alerts"`

	// Security
	SessionTimeout string `gorm:"size:10;default:'30'" json:"session_timeout"`
	LoginAlerts    bool   `gorm:"default:true" json:"login_alerts"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserSettings) TableName() string { return "user_settings" }

func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
