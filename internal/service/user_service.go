package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
	"tailorshop/internal/repository"
)

// UserService exposes the signed-in user's own profile operations.
type UserService interface {
	GetProfile(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) (*model.User, error)
	UpdateMeasurements(ctx context.Context, id string, m model.Measurements) (*model.User, error)
}

type userService struct {
	users    repository.UserRepository
	bookings repository.BookingRepository
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository, bookings repository.BookingRepository) UserService {
	return &userService{users: users, bookings: bookings}
}

func (s *userService) GetProfile(ctx context.Context, id string) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile saves name and phone. When a tailor renames themselves the
// copied name on their assigned bookings is refreshed too.
func (s *userService) UpdateProfile(ctx context.Context, id, name, phone string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	phone = strings.TrimSpace(phone)
	if err := s.users.UpdateProfile(ctx, id, name, phone); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user.Role == model.RoleTailor && user.Name != name {
		if err := s.bookings.RenameAssignee(ctx, id, name); err != nil {
			return nil, fmt.Errorf("rename assignee: %w", err)
		}
	}
	user.Name = name
	user.Phone = phone
	return user, nil
}

func (s *userService) UpdateMeasurements(ctx context.Context, id string, m model.Measurements) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cleaned := m.Clean()
	if err := s.users.UpdateMeasurements(ctx, id, cleaned); err != nil {
		return nil, fmt.Errorf("update measurements: %w", err)
	}
	user.Measurements = cleaned
	return user, nil
}
