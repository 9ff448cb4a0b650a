package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Prescription represents a doctor's prescription recorded for a patient.
// Dispensing a prescription loads its items into the operator's POS cart;
// the prescription itself never carries money.
type Prescription struct {
	ID            uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	BranchID      uuid.UUID               `gorm:"type:uuid;not null;index" json:"branch_id"`
	UserID        uuid.UUID               `gorm:"type:uuid;not null;index" json:"user_id"`
	PatientID     *uuid.UUID              `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	PatientName   string                  `gorm:"size:255" json:"patient_name"`
	Prescriber    string                  `gorm:"size:255;not null" json:"prescriber"`
	Reference     string                  `gorm:"size:100;unique;not null" json:"reference"`
	Date          time.Time               `gorm:"type:date;not null" json:"date"`
	Status        enum.PrescriptionStatus `gorm:"default:0" json:"status"`
	Notes         *string                 `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
	DeletedAt     gorm.DeletedAt          `gorm:"index" json:"-"`

	// Relationships
	Branch  Branch             `gorm:"foreignKey:BranchID" json:"-"`
	User    User               `gorm:"foreignKey:UserID" json:"-"`
	Patient *Patient           `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Items   []PrescriptionItem `gorm:"foreignKey:PrescriptionID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new prescription
func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Prescription model
func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionItem is one prescribed medicine line
type PrescriptionItem struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PrescriptionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"prescription_id"`
	MedicineID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"medicine_id"`
	MedicineName   string         `gorm:"size:255;not null" json:"medicine_name"`
	Dosage         string         `gorm:"size:255" json:"dosage"`
	Quantity       int            `gorm:"not null" json:"quantity"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Prescription Prescription `gorm:"foreignKey:PrescriptionID" json:"-"`
	Medicine     Medicine     `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

// BeforeCreate generates a UUID before creating a new prescription item
func (pi *PrescriptionItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PrescriptionItem model
func (PrescriptionItem) TableName() string {
	return "prescription_items"
}
