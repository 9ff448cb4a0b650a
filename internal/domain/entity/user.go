package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a staff account: pharmacist, cashier or administrator. Access is
// granted through roles, never directly.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName       string         `gorm:"size:255;not null" json:"first_name"`
	LastName        string         `gorm:"size:255;not null" json:"last_name"`
	Username        string         `gorm:"size:255;unique" json:"username"`
	Email           string         `gorm:"size:255;unique;not null" json:"email"`
	Password        string         `gorm:"size:255" json:"-"`
	Provider        string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID      *string        `gorm:"size:255" json:"-"`
	Photo           *string        `gorm:"size:255" json:"photo,omitempty"`
	LicenseNo       *string        `gorm:"size:100" json:"license_no,omitempty"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Roles         []Role         `gorm:"many2many:model_has_roles;foreignKey:ID;joinForeignKey:model_id;References:ID;joinReferences:role_id" json:"roles,omitempty"`
	Medicines     []Medicine     `gorm:"foreignKey:UserID" json:"-"`
	Sales         []Sale         `gorm:"foreignKey:UserID" json:"-"`
	Purchases     []Purchase     `gorm:"foreignKey:UserID" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:UserID" json:"-"`
	Patients      []Patient      `gorm:"foreignKey:UserID" json:"-"`
	Suppliers     []Supplier     `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// GetPermissions flattens the user's roles into a deduplicated list of
// permission names, the shape the JWT claims carry.
func (u *User) GetPermissions() []string {
	seen := make(map[string]bool)
	var names []string
	for _, role := range u.Roles {
		for _, perm := range role.Permissions {
			if !seen[perm.Name] {
				seen[perm.Name] = true
				names = append(names, perm.Name)
			}
		}
	}
	return names
}

// Role groups permissions for assignment to users.
type Role struct {
	ID          uint         `gorm:"primary_key" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	GuardName   string       `gorm:"size:255;default:'web'" json:"guard_name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Permissions []Permission `gorm:"many2many:role_has_permissions;foreignKey:ID;joinForeignKey:role_id;References:ID;joinReferences:permission_id" json:"permissions,omitempty"`
}

func (Role) TableName() string { return "roles" }

// Permission is a single named capability, checked by name in middleware.
type Permission struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	GuardName string    `gorm:"size:255;default:'web'" json:"guard_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Permission) TableName() string { return "permissions" }
