package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceType is the kind of garment work requested.
type ServiceType string

const (
	ServicePant       ServiceType = "Pant Stitching"
	ServiceShirt      ServiceType = "Shirt Stitching"
	ServiceSuit       ServiceType = "Complete Suit"
	ServiceAlteration ServiceType = "Alteration"
	ServiceSafari     ServiceType = "Safari Suit"
	ServiceKurta      ServiceType = "Kurta Pajama"
)

// ServiceTypes lists the bookable service types.
var ServiceTypes = []ServiceType{
	ServicePant,
	ServiceShirt,
	ServiceSuit,
	ServiceAlteration,
	ServiceSafari,
	ServiceKurta,
}

// Valid reports whether t is a bookable service type.
func (t ServiceType) Valid() bool {
	for _, v := range ServiceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// AppointmentType says whether the customer visits or the shop collects.
type AppointmentType string

const (
	AppointmentVisit  AppointmentType = "Visit Shop"
	AppointmentPickup AppointmentType = "Home Pickup"
)

// Valid reports whether t is a known appointment type.
func (t AppointmentType) Valid() bool {
	return t == AppointmentVisit || t == AppointmentPickup
}

// DateLayout is the wire format of Booking.Date.
const DateLayout = "2006-01-02"

// Booking is a customer's request for tailoring work.
// A nil UserID marks a guest booking. AssignedName copies the tailor's
// name at assignment time so lists render without a join.
type Booking struct {
	ID                   string          `json:"id" gorm:"type:char(36);primaryKey"`
	UserID               *string         `json:"userId,omitempty" gorm:"type:char(36);index"`
	CustomerName         string          `json:"customerName" gorm:"size:255;not null"`
	Phone                string          `json:"phone" gorm:"size:32;not null"`
	Address              string          `json:"address" gorm:"type:text"`
	ServiceType          ServiceType     `json:"serviceType" gorm:"type:varchar(64);not null"`
	AppointmentType      AppointmentType `json:"appointmentType" gorm:"type:varchar(32);not null"`
	Date                 string          `json:"date" gorm:"type:varchar(10);not null;index"`
	Notes                string          `json:"notes" gorm:"type:text"`
	Status               BookingStatus   `json:"status" gorm:"type:varchar(32);not null;default:'Pending';index"`
	MeasurementsSnapshot Measurements    `json:"measurementsSnapshot,omitempty" gorm:"type:text;serializer:json"`
	Cost                 decimal.Decimal `json:"cost" gorm:"type:decimal(20,2);not null;default:0"`
	ReferenceImages      []string        `json:"referenceImages,omitempty" gorm:"type:text;serializer:json"`
	AssignedTo           *string         `json:"assignedTo,omitempty" gorm:"type:char(36);index"`
	AssignedName         *string         `json:"assignedName,omitempty" gorm:"size:255"`
	CreatedAt            time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt            time.Time       `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt  `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID and lifecycle defaults before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.MeasurementsSnapshot == nil {
		b.MeasurementsSnapshot = Measurements{}
	}
	if b.ReferenceImages == nil {
		b.ReferenceImages = []string{}
	}
	return nil
}

// IsGuest reports whether the booking is not linked to an account.
func (b *Booking) IsGuest() bool {
	return b.UserID == nil || *b.UserID == ""
}

// IsAssignedTo reports whether tailorID owns the booking's work.
func (b *Booking) IsAssignedTo(tailorID string) bool {
	return b.AssignedTo != nil && *b.AssignedTo == tailorID
}
