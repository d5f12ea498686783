package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role determines which routes and actions a user may access.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleTailor   Role = "tailor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleTailor:
		return true
	}
	return false
}

// User is the profile record mirrored from registration. Credentials and
// profile live on the same row.
type User struct {
	ID            string         `json:"id" gorm:"type:char(36);primaryKey"`
	Email         string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name          string         `json:"name" gorm:"size:255;not null"`
	PasswordHash  string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role          Role           `json:"role" gorm:"type:varchar(20);not null;default:'customer';index"`
	Phone         string         `json:"phone,omitempty" gorm:"size:32"`
	EmailVerified bool           `json:"emailVerified" gorm:"not null;default:false"`
	Measurements  Measurements   `json:"measurements,omitempty" gorm:"type:text;serializer:json"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
