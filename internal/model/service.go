package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a catalog entry shown on the storefront. Price is a display
// string such as "₹1200+", not a number.
type Service struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Price     string    `json:"price" gorm:"size:64;not null"`
	Desc      string    `json:"desc" gorm:"column:description;type:text"`
	Img       string    `json:"img" gorm:"type:text"`
	Category  string    `json:"category,omitempty" gorm:"size:64"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
