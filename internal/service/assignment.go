package service

import "tailorshop/internal/model"

// CountActive returns how many of bookings are assigned to tailorID and
// still in an active status.
func CountActive(tailorID string, bookings []model.Booking) int {
	n := 0
	for i := range bookings {
		if bookings[i].IsAssignedTo(tailorID) && bookings[i].Status.IsActive() {
			n++
		}
	}
	return n
}

// TailorLoad pairs a tailor with their current active workload.
type TailorLoad struct {
	model.User
	ActiveOrders int `json:"activeOrders"`
}

// Roster computes the active load of every tailor from a full booking list.
func Roster(tailors []model.User, bookings []model.Booking) []TailorLoad {
	out := make([]TailorLoad, 0, len(tailors))
	for _, t := range tailors {
		out = append(out, TailorLoad{User: t, ActiveOrders: CountActive(t.ID, bookings)})
	}
	return out
}
