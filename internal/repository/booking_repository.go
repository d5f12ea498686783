package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
)

// BookingRepository defines booking persistence operations. Every mutation
// writes only the columns it names; concurrent writers resolve by last write.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	ListAll(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	ListByAssignee(ctx context.Context, tailorID string) ([]model.Booking, error)
	ListByDateAndStatus(ctx context.Context, date string, status model.BookingStatus) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
	UpdateMeasurements(ctx context.Context, id string, m model.Measurements) error
	Assign(ctx context.Context, id, tailorID, tailorName string) error
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
	AppendReferenceImage(ctx context.Context, id, url string) ([]string, error)
	RenameAssignee(ctx context.Context, tailorID, name string) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, notFound(err, apperrors.ErrBookingNotFound)
	}
	return &booking, nil
}

// ListAll returns every booking, newest first. An empty status means no filter.
func (r *bookingRepository) ListAll(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []model.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListByAssignee(ctx context.Context, tailorID string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).
		Where("assigned_to = ?", tailorID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListByDateAndStatus(ctx context.Context, date string, status model.BookingStatus) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).
		Where("date = ? AND status = ?", date, status).
		Order("created_at asc").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *bookingRepository) UpdateMeasurements(ctx context.Context, id string, m model.Measurements) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Select("measurements_snapshot").
		Updates(&model.Booking{MeasurementsSnapshot: m}).Error
}

// Assign writes the assignee pair and nothing else.
func (r *bookingRepository) Assign(ctx context.Context, id, tailorID, tailorName string) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_to":   tailorID,
			"assigned_name": tailorName,
		}).Error
}

func (r *bookingRepository) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Update("cost", cost).Error
}

// AppendReferenceImage adds url to the booking's image list and returns the new list.
func (r *bookingRepository) AppendReferenceImage(ctx context.Context, id, url string) ([]string, error) {
	var images []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		if err := tx.Where("id = ?", id).First(&booking).Error; err != nil {
			return notFound(err, apperrors.ErrBookingNotFound)
		}
		images = append(booking.ReferenceImages, url)
		return tx.Model(&model.Booking{}).
			Where("id = ?", id).
			Select("reference_images").
			Updates(&model.Booking{ReferenceImages: images}).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// RenameAssignee refreshes the denormalized tailor name on all their bookings.
func (r *bookingRepository) RenameAssignee(ctx context.Context, tailorID, name string) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("assigned_to = ?", tailorID).
		Update("assigned_name", name).Error
}
