package service

import (
	"context"
	"fmt"

	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
	"tailorshop/internal/repository"
)

// Stats are the admin dashboard counters.
type Stats struct {
	TotalOrders   int `json:"totalOrders"`
	PendingOrders int `json:"pendingOrders"`
	ActiveOrders  int `json:"activeOrders"`
	TotalUsers    int `json:"totalUsers"`
	TotalTailors  int `json:"totalTailors"`
}

// AdminService covers staff management and the dashboard.
type AdminService interface {
	Stats(ctx context.Context) (*Stats, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error)
	Roster(ctx context.Context) ([]TailorLoad, error)
	TailorBookings(ctx context.Context, tailorID string) ([]model.Booking, error)
}

type adminService struct {
	users    repository.UserRepository
	bookings repository.BookingRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(users repository.UserRepository, bookings repository.BookingRepository) AdminService {
	return &adminService{users: users, bookings: bookings}
}

// Stats counts over a full booking fetch, as the dashboard does.
func (s *adminService) Stats(ctx context.Context) (*Stats, error) {
	bookings, err := s.bookings.ListAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	tailors, err := s.users.CountByRole(ctx, model.RoleTailor)
	if err != nil {
		return nil, fmt.Errorf("count tailors: %w", err)
	}

	stats := &Stats{
		TotalOrders:  len(bookings),
		TotalUsers:   int(users),
		TotalTailors: int(tailors),
	}
	for i := range bookings {
		if bookings[i].Status == model.StatusPending {
			stats.PendingOrders++
		}
		if bookings[i].Status.IsActive() {
			stats.ActiveOrders++
		}
	}
	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// UpdateRole promotes or demotes a user. Only the role column changes.
func (s *adminService) UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role
	return user, nil
}

func (s *adminService) Roster(ctx context.Context) ([]TailorLoad, error) {
	tailors, err := s.users.ListByRole(ctx, model.RoleTailor)
	if err != nil {
		return nil, fmt.Errorf("list tailors: %w", err)
	}
	bookings, err := s.bookings.ListAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return Roster(tailors, bookings), nil
}

func (s *adminService) TailorBookings(ctx context.Context, tailorID string) ([]model.Booking, error) {
	tailor, err := s.users.FindByID(ctx, tailorID)
	if err != nil {
		return nil, err
	}
	if tailor.Role != model.RoleTailor {
		return nil, apperrors.ErrNotTailor
	}
	return s.bookings.ListByAssignee(ctx, tailorID)
}
