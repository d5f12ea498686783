package model

// BookingStatus is the lifecycle position of a booking. Only the latest
// status is stored; there is no transition history.
type BookingStatus string

const (
	StatusPending          BookingStatus = "Pending"
	StatusMeasurementTaken BookingStatus = "Measurement Taken"
	StatusCutting          BookingStatus = "Cutting"
	StatusStitching        BookingStatus = "Stitching"
	StatusTrial            BookingStatus = "Trial"
	StatusReady            BookingStatus = "Ready"
	StatusDelivered        BookingStatus = "Delivered"
	StatusCancelled        BookingStatus = "Cancelled"
)

var allStatuses = []BookingStatus{
	StatusPending,
	StatusMeasurementTaken,
	StatusCutting,
	StatusStitching,
	StatusTrial,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// tailorActions are the statuses a tailor may move an assigned job to.
var tailorActions = []BookingStatus{
	StatusCutting,
	StatusStitching,
	StatusTrial,
	StatusReady,
}

// AllStatuses returns every status in conventional workshop order.
func AllStatuses() []BookingStatus {
	out := make([]BookingStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// TailorActions returns the forward actions offered in the tailor workspace.
func TailorActions() []BookingStatus {
	out := make([]BookingStatus, len(tailorActions))
	copy(out, tailorActions)
	return out
}

// Valid reports whether s is one of the eight lifecycle values.
func (s BookingStatus) Valid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsActive reports whether the booking counts toward open work.
// Delivered and Cancelled are the only inactive statuses.
func (s BookingStatus) IsActive() bool {
	return s != StatusDelivered && s != StatusCancelled
}

// IsTailorAction reports whether a tailor may set s from the workspace.
func (s BookingStatus) IsTailorAction() bool {
	for _, v := range tailorActions {
		if v == s {
			return true
		}
	}
	return false
}
