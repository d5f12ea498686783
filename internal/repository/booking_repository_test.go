package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
)

func newBooking(userID *string, createdAt time.Time) *model.Booking {
	return &model.Booking{
		UserID:          userID,
		CustomerName:    "Rahul",
		Phone:           "9876543210",
		ServiceType:     model.ServiceShirt,
		AppointmentType: model.AppointmentVisit,
		Date:            "2026-11-02",
		CreatedAt:       createdAt,
	}
}

func TestBookingRepository_CreateDefaults(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	b := newBooking(nil, time.Now())
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Nil(t, got.UserID)
	assert.True(t, got.Cost.IsZero())
	assert.Empty(t, got.ReferenceImages)
	assert.NotNil(t, got.MeasurementsSnapshot)

	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestBookingRepository_ListByUserExcludesGuests(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)

	older := newBooking(strPtr("user-1"), base)
	newer := newBooking(strPtr("user-1"), base.Add(time.Hour))
	other := newBooking(strPtr("user-2"), base)
	guest := newBooking(nil, base)
	for _, b := range []*model.Booking{older, newer, other, guest} {
		require.NoError(t, repo.Create(ctx, b))
	}

	mine, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)
	assert.Equal(t, older.ID, mine[1].ID)

	all, err := repo.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestBookingRepository_StatusFilterAndAssignment(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)

	a := newBooking(nil, base)
	b := newBooking(nil, base.Add(time.Minute))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.UpdateStatus(ctx, a.ID, model.StatusCutting))
	require.NoError(t, repo.Assign(ctx, a.ID, "tailor-1", "Ustad Ali"))

	cutting, err := repo.ListAll(ctx, model.StatusCutting)
	require.NoError(t, err)
	require.Len(t, cutting, 1)
	assert.Equal(t, a.ID, cutting[0].ID)

	assigned, err := repo.ListByAssignee(ctx, "tailor-1")
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	require.NotNil(t, assigned[0].AssignedName)
	assert.Equal(t, "Ustad Ali", *assigned[0].AssignedName)
	assert.Equal(t, "Rahul", assigned[0].CustomerName)

	require.NoError(t, repo.RenameAssignee(ctx, "tailor-1", "Ali Khan"))
	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali Khan", *got.AssignedName)
	assert.Equal(t, model.StatusCutting, got.Status)
}

func TestBookingRepository_MeasurementsCostImages(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	b := newBooking(strPtr("user-9"), time.Now())
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.UpdateMeasurements(ctx, b.ID, model.Measurements{"neck": "15"}))
	require.NoError(t, repo.UpdateCost(ctx, b.ID, decimal.RequireFromString("1450.50")))

	images, err := repo.AppendReferenceImage(ctx, b.ID, "http://cdn/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://cdn/1.jpg"}, images)
	images, err = repo.AppendReferenceImage(ctx, b.ID, "http://cdn/2.jpg")
	require.NoError(t, err)
	assert.Len(t, images, 2)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "15", got.MeasurementsSnapshot["neck"])
	assert.True(t, decimal.RequireFromString("1450.5").Equal(got.Cost))
	assert.Equal(t, []string{"http://cdn/1.jpg", "http://cdn/2.jpg"}, got.ReferenceImages)

	_, err = repo.AppendReferenceImage(ctx, "missing", "x")
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestBookingRepository_ListByDateAndStatus(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	today := newBooking(nil, time.Now())
	today.Date = "2026-10-17"
	done := newBooking(nil, time.Now())
	done.Date = "2026-10-17"
	done.Status = model.StatusDelivered
	later := newBooking(nil, time.Now())
	later.Date = "2026-10-18"
	for _, b := range []*model.Booking{today, done, later} {
		require.NoError(t, repo.Create(ctx, b))
	}

	due, err := repo.ListByDateAndStatus(ctx, "2026-10-17", model.StatusPending)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, today.ID, due[0].ID)
}
