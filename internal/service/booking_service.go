package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/events"
	"tailorshop/internal/metrics"
	"tailorshop/internal/model"
	"tailorshop/internal/notifier"
	"tailorshop/internal/repository"
	"tailorshop/internal/storage"
)

// CreateBookingInput is the booking form as submitted by a customer or guest.
type CreateBookingInput struct {
	CustomerName    string
	Phone           string
	Address         string
	ServiceType     model.ServiceType
	AppointmentType model.AppointmentType
	Date            string
	Notes           string
}

// Validate checks the form before anything touches the store.
func (in CreateBookingInput) Validate() error {
	switch {
	case strings.TrimSpace(in.CustomerName) == "":
		return apperrors.NewValidationError("customerName", "customer name is required")
	case strings.TrimSpace(in.Phone) == "":
		return apperrors.NewValidationError("phone", "phone is required")
	case in.ServiceType == "":
		return apperrors.NewValidationError("serviceType", "service type is required")
	case !in.ServiceType.Valid():
		return apperrors.NewValidationError("serviceType", fmt.Sprintf("unknown service type %q", in.ServiceType))
	case in.AppointmentType == "":
		return apperrors.NewValidationError("appointmentType", "appointment type is required")
	case !in.AppointmentType.Valid():
		return apperrors.NewValidationError("appointmentType", fmt.Sprintf("unknown appointment type %q", in.AppointmentType))
	case in.AppointmentType == model.AppointmentPickup && strings.TrimSpace(in.Address) == "":
		return apperrors.NewValidationError("address", "address is required for home pickup")
	case strings.TrimSpace(in.Date) == "":
		return apperrors.NewValidationError("date", "date is required")
	}
	if _, err := time.Parse(model.DateLayout, strings.TrimSpace(in.Date)); err != nil {
		return apperrors.NewValidationError("date", "date must be formatted YYYY-MM-DD")
	}
	return nil
}

// BookingService handles the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput, actor *Actor) (*model.Booking, string, error)
	ListMine(ctx context.Context, userID string) ([]model.Booking, error)
	ListAll(ctx context.Context, status string) ([]model.Booking, error)
	ListAssigned(ctx context.Context, tailorID string) ([]model.Booking, error)
	Get(ctx context.Context, id string, actor Actor) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus, actor Actor) (*model.Booking, error)
	UpdateMeasurements(ctx context.Context, id string, m model.Measurements, actor Actor) (*model.Booking, error)
	Assign(ctx context.Context, id, tailorID string) (*model.Booking, error)
	SetCost(ctx context.Context, id string, cost decimal.Decimal) (*model.Booking, error)
	AddReferenceImage(ctx context.Context, id, filename, contentType string, r io.Reader, actor Actor) ([]string, error)
	WhatsAppLink(ctx context.Context, id string, actor Actor) (string, error)
}

// ShopInfo identifies the shop in outbound messages.
type ShopInfo struct {
	Name     string
	WhatsApp string
}

type bookingService struct {
	bookings  repository.BookingRepository
	users     repository.UserRepository
	disk      storage.Disk
	publisher events.Publisher
	shop      ShopInfo
	now       func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	disk storage.Disk,
	publisher events.Publisher,
	shop ShopInfo,
) BookingService {
	return &bookingService{
		bookings:  bookings,
		users:     users,
		disk:      disk,
		publisher: publisher,
		shop:      shop,
		now:       time.Now,
	}
}

// Create validates and stores a booking. A nil actor books as a guest;
// signed-in users must have a verified email.
func (s *bookingService) Create(ctx context.Context, in CreateBookingInput, actor *Actor) (*model.Booking, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", err
	}

	booking := &model.Booking{
		CustomerName:         strings.TrimSpace(in.CustomerName),
		Phone:                strings.TrimSpace(in.Phone),
		Address:              strings.TrimSpace(in.Address),
		ServiceType:          in.ServiceType,
		AppointmentType:      in.AppointmentType,
		Date:                 strings.TrimSpace(in.Date),
		Notes:                strings.TrimSpace(in.Notes),
		Status:               model.StatusPending,
		MeasurementsSnapshot: model.Measurements{},
		ReferenceImages:      []string{},
		Cost:                 decimal.Zero,
	}

	if actor != nil {
		user, err := s.users.FindByID(ctx, actor.ID)
		if err != nil {
			return nil, "", err
		}
		if !user.EmailVerified {
			return nil, "", apperrors.ErrEmailNotVerified
		}
		booking.UserID = &user.ID
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, "", fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingsCreated.WithLabelValues(string(booking.AppointmentType), strconv.FormatBool(booking.IsGuest())).Inc()
	s.publish(ctx, model.EventBookingCreated, booking)

	return booking, notifier.WhatsAppLink(s.shop.WhatsApp, s.shop.Name, booking), nil
}

func (s *bookingService) publish(ctx context.Context, eventType string, b *model.Booking) {
	if err := s.publisher.Publish(ctx, model.NewBookingEvent(eventType, b)); err != nil {
		slog.WarnContext(ctx, "publish booking event failed", "type", eventType, "booking_id", b.ID, "error", err)
	}
}

func (s *bookingService) ListMine(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListAll returns every booking; status "All" or "" disables the filter.
func (s *bookingService) ListAll(ctx context.Context, status string) ([]model.Booking, error) {
	filter := model.BookingStatus(strings.TrimSpace(status))
	if filter == "All" {
		filter = ""
	}
	if filter != "" && !filter.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.bookings.ListAll(ctx, filter)
}

func (s *bookingService) ListAssigned(ctx context.Context, tailorID string) ([]model.Booking, error) {
	return s.bookings.ListByAssignee(ctx, tailorID)
}

// canView: admins see everything, customers their own, tailors their assignments.
func canView(b *model.Booking, actor Actor) bool {
	switch {
	case actor.IsAdmin():
		return true
	case b.UserID != nil && *b.UserID == actor.ID:
		return true
	case actor.Role == model.RoleTailor && b.IsAssignedTo(actor.ID):
		return true
	}
	return false
}

func (s *bookingService) Get(ctx context.Context, id string, actor Actor) (*model.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(b, actor) {
		return nil, apperrors.ErrForbidden
	}
	return b, nil
}

// findForWork loads a booking an admin or its assigned tailor may work on.
func (s *bookingService) findForWork(ctx context.Context, id string, actor Actor) (*model.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsAssignedTo(actor.ID) {
		return nil, apperrors.ErrForbidden
	}
	return b, nil
}

// UpdateStatus writes a new status. Admins may set any status; tailors may
// only set workspace actions on their own assignments.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status model.BookingStatus, actor Actor) (*model.Booking, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	if !actor.IsAdmin() && !status.IsTailorAction() {
		return nil, apperrors.ErrForbidden
	}
	b, err := s.findForWork(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	b.Status = status

	metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	s.publish(ctx, model.EventBookingStatusChanged, b)
	return b, nil
}

func (s *bookingService) UpdateMeasurements(ctx context.Context, id string, m model.Measurements, actor Actor) (*model.Booking, error) {
	b, err := s.findForWork(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	cleaned := m.Clean()
	if err := s.bookings.UpdateMeasurements(ctx, id, cleaned); err != nil {
		return nil, fmt.Errorf("update measurements: %w", err)
	}
	b.MeasurementsSnapshot = cleaned
	return b, nil
}

// Assign hands the booking to a tailor, copying their current name.
func (s *bookingService) Assign(ctx context.Context, id, tailorID string) (*model.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tailor, err := s.users.FindByID(ctx, tailorID)
	if err != nil {
		return nil, err
	}
	if tailor.Role != model.RoleTailor {
		return nil, apperrors.ErrNotTailor
	}
	if err := s.bookings.Assign(ctx, id, tailor.ID, tailor.Name); err != nil {
		return nil, fmt.Errorf("assign booking: %w", err)
	}
	b.AssignedTo = &tailor.ID
	b.AssignedName = &tailor.Name
	return b, nil
}

func (s *bookingService) SetCost(ctx context.Context, id string, cost decimal.Decimal) (*model.Booking, error) {
	if cost.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cost = cost.Round(2)
	if err := s.bookings.UpdateCost(ctx, id, cost); err != nil {
		return nil, fmt.Errorf("update cost: %w", err)
	}
	b.Cost = cost
	return b, nil
}

// AddReferenceImage stores an inspiration photo for the booking. Only the
// booking's owner or an admin may upload.
func (s *bookingService) AddReferenceImage(ctx context.Context, id, filename, contentType string, r io.Reader, actor Actor) ([]string, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	isOwner := b.UserID != nil && *b.UserID == actor.ID
	if !actor.IsAdmin() && !isOwner {
		return nil, apperrors.ErrForbidden
	}

	key := storage.ObjectKey("bookings/"+b.ID, s.now().Unix(), filename)
	if err := s.disk.Put(ctx, key, r, contentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	images, err := s.bookings.AppendReferenceImage(ctx, id, s.disk.URL(key))
	if err != nil {
		_ = s.disk.Delete(ctx, key)
		return nil, err
	}
	return images, nil
}

func (s *bookingService) WhatsAppLink(ctx context.Context, id string, actor Actor) (string, error) {
	b, err := s.Get(ctx, id, actor)
	if err != nil {
		return "", err
	}
	return notifier.WhatsAppLink(s.shop.WhatsApp, s.shop.Name, b), nil
}
