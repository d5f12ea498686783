package model

import "time"

// Routing keys for booking events.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is published whenever a booking is created or its status changes.
type BookingEvent struct {
	Type         string        `json:"type"`
	BookingID    string        `json:"bookingId"`
	CustomerName string        `json:"customerName"`
	Phone        string        `json:"phone"`
	ServiceType  ServiceType   `json:"serviceType"`
	Date         string        `json:"date"`
	Status       BookingStatus `json:"status"`
	OccurredAt   time.Time     `json:"occurredAt"`
}

// NewBookingEvent snapshots b into an event of the given type.
func NewBookingEvent(eventType string, b *Booking) BookingEvent {
	return BookingEvent{
		Type:         eventType,
		BookingID:    b.ID,
		CustomerName: b.CustomerName,
		Phone:        b.Phone,
		ServiceType:  b.ServiceType,
		Date:         b.Date,
		Status:       b.Status,
		OccurredAt:   time.Now(),
	}
}
