package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a registered patient
type Patient struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BranchID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        *string        `gorm:"size:255" json:"email,omitempty"`
	Phone        *string        `gorm:"size:50" json:"phone,omitempty"`
	Address      *string        `gorm:"type:text" json:"address,omitempty"`
	DateOfBirth  *time.Time     `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender       *string        `gorm:"size:20" json:"gender,omitempty"`
	BloodGroup   *string        `gorm:"size:10" json:"blood_group,omitempty"`
	Allergies    *string        `gorm:"type:text" json:"allergies,omitempty"`
	InsuranceNo  *string        `gorm:"size:100" json:"insurance_no,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch        Branch         `gorm:"foreignKey:BranchID" json:"-"`
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	Sales         []Sale         `gorm:"foreignKey:PatientID" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new patient
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Patient model
func (Patient) TableName() string {
	return "patients"
}
