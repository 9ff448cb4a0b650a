package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Supplier is a vendor the branch orders stock from. Banking fields are
// optional and only filled for suppliers paid by transfer.
type Supplier struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BranchID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	Email         *string           `gorm:"size:255" json:"email,omitempty"`
	Phone         *string           `gorm:"size:50" json:"phone,omitempty"`
	Address       *string           `gorm:"type:text" json:"address,omitempty"`
	CompanyName   *string           `gorm:"size:255" json:"company_name,omitempty"`
	LicenseNo     *string           `gorm:"size:100" json:"license_no,omitempty"`
	Type          enum.SupplierType `gorm:"size:50;default:'distributor'" json:"type"`
	AccountHolder *string           `gorm:"size:255" json:"account_holder,omitempty"`
	AccountNumber *string           `gorm:"size:100" json:"account_number,omitempty"`
	BankName      *string           `gorm:"size:255" json:"bank_name,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	Branch    Branch     `gorm:"foreignKey:BranchID" json:"-"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Purchases []Purchase `gorm:"foreignKey:SupplierID" json:"-"`
}

func (Supplier) TableName() string { return "suppliers" }

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
