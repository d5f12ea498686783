package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
)

type bookingMocks struct {
	bookings  *MockBookingRepository
	users     *MockUserRepository
	disk      *MockDisk
	publisher *MockPublisher
}

func newTestBookingService() (BookingService, bookingMocks) {
	m := bookingMocks{
		bookings:  new(MockBookingRepository),
		users:     new(MockUserRepository),
		disk:      new(MockDisk),
		publisher: new(MockPublisher),
	}
	svc := NewBookingService(m.bookings, m.users, m.disk, m.publisher, ShopInfo{Name: "Majeed Tailors", WhatsApp: "919876543210"})
	return svc, m
}

func validBookingInput() CreateBookingInput {
	return CreateBookingInput{
		CustomerName:    "Ayaan Shaikh",
		Phone:           "+919812345678",
		ServiceType:     model.ServiceShirt,
		AppointmentType: model.AppointmentVisit,
		Date:            "2026-11-02",
	}
}

func TestCreateBookingInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateBookingInput)
		field  string
	}{
		{name: "valid visit", mutate: func(in *CreateBookingInput) {}},
		{name: "missing name", mutate: func(in *CreateBookingInput) { in.CustomerName = "  " }, field: "customerName"},
		{name: "missing phone", mutate: func(in *CreateBookingInput) { in.Phone = "" }, field: "phone"},
		{name: "unknown service", mutate: func(in *CreateBookingInput) { in.ServiceType = "Sherwani" }, field: "serviceType"},
		{name: "unknown appointment", mutate: func(in *CreateBookingInput) { in.AppointmentType = "Courier" }, field: "appointmentType"},
		{name: "pickup without address", mutate: func(in *CreateBookingInput) { in.AppointmentType = model.AppointmentPickup }, field: "address"},
		{name: "pickup with address", mutate: func(in *CreateBookingInput) {
			in.AppointmentType = model.AppointmentPickup
			in.Address = "12 Lake Road"
		}},
		{name: "bad date", mutate: func(in *CreateBookingInput) { in.Date = "02/11/2026" }, field: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBookingInput()
			tt.mutate(&in)
			err := in.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestBookingService_CreateGuest(t *testing.T) {
	svc, m := newTestBookingService()
	m.bookings.On("Create", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil)
	m.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(evt model.BookingEvent) bool {
		return evt.Type == model.EventBookingCreated && evt.Status == model.StatusPending
	})).Return(nil)

	booking, link, err := svc.Create(context.Background(), validBookingInput(), nil)

	require.NoError(t, err)
	assert.Nil(t, booking.UserID)
	assert.True(t, booking.IsGuest())
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.True(t, booking.Cost.IsZero())
	assert.Empty(t, booking.ReferenceImages)
	assert.Nil(t, booking.AssignedTo)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	m.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	m.publisher.AssertExpectations(t)
}

func TestBookingService_CreateSignedIn(t *testing.T) {
	tests := []struct {
		name          string
		user          *model.User
		expectedError error
	}{
		{
			name: "verified customer",
			user: &model.User{ID: "u-1", Role: model.RoleCustomer, EmailVerified: true},
		},
		{
			name:          "unverified customer",
			user:          &model.User{ID: "u-2", Role: model.RoleCustomer},
			expectedError: apperrors.ErrEmailNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestBookingService()
			m.users.On("FindByID", mock.Anything, tt.user.ID).Return(tt.user, nil)
			m.bookings.On("Create", mock.Anything, mock.AnythingOfType("*model.Booking")).Return(nil).Maybe()
			m.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Maybe()

			booking, _, err := svc.Create(context.Background(), validBookingInput(), &Actor{ID: tt.user.ID, Role: tt.user.Role})

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, booking.UserID)
			assert.Equal(t, tt.user.ID, *booking.UserID)
		})
	}
}

func TestBookingService_CreatePickupWithoutAddress(t *testing.T) {
	svc, m := newTestBookingService()
	in := validBookingInput()
	in.AppointmentType = model.AppointmentPickup

	booking, link, err := svc.Create(context.Background(), in, nil)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, booking)
	assert.Empty(t, link)
	m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestBookingService_ListAll(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		filter        model.BookingStatus
		expectedError error
	}{
		{name: "all", status: "All", filter: ""},
		{name: "empty", status: "", filter: ""},
		{name: "stitching", status: "Stitching", filter: model.StatusStitching},
		{name: "unknown", status: "Lost", expectedError: apperrors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestBookingService()
			if tt.expectedError == nil {
				m.bookings.On("ListAll", mock.Anything, tt.filter).Return([]model.Booking{}, nil)
			}
			_, err := svc.ListAll(context.Background(), tt.status)
			assert.Equal(t, tt.expectedError, err)
			m.bookings.AssertExpectations(t)
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tailorID := "t-1"
	assigned := func() *model.Booking {
		return &model.Booking{ID: "b-1", Status: model.StatusMeasurementTaken, AssignedTo: &tailorID}
	}

	tests := []struct {
		name          string
		status        model.BookingStatus
		actor         Actor
		expectedError error
	}{
		{name: "admin any status", status: model.StatusDelivered, actor: Actor{ID: "a-1", Role: model.RoleAdmin}},
		{name: "admin may go backwards", status: model.StatusPending, actor: Actor{ID: "a-1", Role: model.RoleAdmin}},
		{name: "tailor forward action", status: model.StatusCutting, actor: Actor{ID: tailorID, Role: model.RoleTailor}},
		{name: "tailor cannot deliver", status: model.StatusDelivered, actor: Actor{ID: tailorID, Role: model.RoleTailor}, expectedError: apperrors.ErrForbidden},
		{name: "tailor not assigned", status: model.StatusReady, actor: Actor{ID: "t-2", Role: model.RoleTailor}, expectedError: apperrors.ErrForbidden},
		{name: "invalid status", status: "Lost", actor: Actor{ID: "a-1", Role: model.RoleAdmin}, expectedError: apperrors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestBookingService()
			m.bookings.On("FindByID", mock.Anything, "b-1").Return(assigned(), nil).Maybe()
			m.bookings.On("UpdateStatus", mock.Anything, "b-1", tt.status).Return(nil).Maybe()
			m.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

			b, err := svc.UpdateStatus(context.Background(), "b-1", tt.status, tt.actor)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				m.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, b.Status)
			m.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(evt model.BookingEvent) bool {
				return evt.Type == model.EventBookingStatusChanged && evt.Status == tt.status
			}))
		})
	}
}

func TestBookingService_UpdateMeasurementsCleansInput(t *testing.T) {
	svc, m := newTestBookingService()
	tailorID := "t-1"
	m.bookings.On("FindByID", mock.Anything, "b-1").Return(&model.Booking{ID: "b-1", AssignedTo: &tailorID}, nil)
	m.bookings.On("UpdateMeasurements", mock.Anything, "b-1", model.Measurements{"chest": "40"}).Return(nil)

	b, err := svc.UpdateMeasurements(context.Background(), "b-1",
		model.Measurements{"chest": " 40 ", "waist": "", " ": "3"},
		Actor{ID: tailorID, Role: model.RoleTailor})

	require.NoError(t, err)
	assert.Equal(t, model.Measurements{"chest": "40"}, b.MeasurementsSnapshot)
	m.bookings.AssertExpectations(t)
}

func TestBookingService_Assign(t *testing.T) {
	tests := []struct {
		name          string
		target        *model.User
		expectedError error
	}{
		{name: "tailor", target: &model.User{ID: "t-1", Name: "Rafiq", Role: model.RoleTailor}},
		{name: "customer rejected", target: &model.User{ID: "c-1", Name: "Nadia", Role: model.RoleCustomer}, expectedError: apperrors.ErrNotTailor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestBookingService()
			m.bookings.On("FindByID", mock.Anything, "b-1").Return(&model.Booking{ID: "b-1"}, nil)
			m.users.On("FindByID", mock.Anything, tt.target.ID).Return(tt.target, nil)
			m.bookings.On("Assign", mock.Anything, "b-1", tt.target.ID, tt.target.Name).Return(nil).Maybe()

			b, err := svc.Assign(context.Background(), "b-1", tt.target.ID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				m.bookings.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.True(t, b.IsAssignedTo("t-1"))
			assert.Equal(t, "Rafiq", *b.AssignedName)
		})
	}
}

func TestBookingService_SetCost(t *testing.T) {
	svc, m := newTestBookingService()
	m.bookings.On("FindByID", mock.Anything, "b-1").Return(&model.Booking{ID: "b-1"}, nil)
	m.bookings.On("UpdateCost", mock.Anything, "b-1", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("1250.46"))
	})).Return(nil)

	b, err := svc.SetCost(context.Background(), "b-1", decimal.RequireFromString("1250.456"))
	require.NoError(t, err)
	assert.Equal(t, "1250.46", b.Cost.StringFixed(2))

	_, err = svc.SetCost(context.Background(), "b-1", decimal.NewFromInt(-1))
	assert.Equal(t, apperrors.ErrInvalidAmount, err)
}

func TestBookingService_AddReferenceImage(t *testing.T) {
	owner := "u-1"

	t.Run("owner uploads", func(t *testing.T) {
		svc, m := newTestBookingService()
		m.bookings.On("FindByID", mock.Anything, "b-1").Return(&model.Booking{ID: "b-1", UserID: &owner}, nil)
		m.disk.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "bookings/b-1/") && strings.HasSuffix(key, "_collar.jpg")
		}), mock.Anything, "image/jpeg").Return(nil)
		m.bookings.On("AppendReferenceImage", mock.Anything, "b-1", mock.AnythingOfType("string")).
			Return([]string{"http://cdn.test/bookings/b-1/1_collar.jpg"}, nil)

		images, err := svc.AddReferenceImage(context.Background(), "b-1", "collar.jpg", "image/jpeg",
			strings.NewReader("jpeg"), Actor{ID: owner, Role: model.RoleCustomer})

		require.NoError(t, err)
		assert.Len(t, images, 1)
	})

	t.Run("stranger rejected", func(t *testing.T) {
		svc, m := newTestBookingService()
		m.bookings.On("FindByID", mock.Anything, "b-1").Return(&model.Booking{ID: "b-1", UserID: &owner}, nil)

		_, err := svc.AddReferenceImage(context.Background(), "b-1", "collar.jpg", "image/jpeg",
			strings.NewReader("jpeg"), Actor{ID: "u-2", Role: model.RoleCustomer})

		assert.Equal(t, apperrors.ErrForbidden, err)
		m.disk.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("object removed when append fails", func(t *testing.T) {
		svc, m := newTestBookingService()
		m.bookings.On("FindByID", mock.Anything, "b-1").Return(&model.Booking{ID: "b-1", UserID: &owner}, nil)
		m.disk.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		m.bookings.On("AppendReferenceImage", mock.Anything, "b-1", mock.Anything).Return(nil, apperrors.ErrBookingNotFound)
		m.disk.On("Delete", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.AddReferenceImage(context.Background(), "b-1", "collar.jpg", "image/jpeg",
			strings.NewReader("jpeg"), Actor{ID: "a-1", Role: model.RoleAdmin})

		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
		m.disk.AssertExpectations(t)
	})
}

func TestBookingService_Get(t *testing.T) {
	owner, tailor := "u-1", "t-1"
	booking := &model.Booking{ID: "b-1", UserID: &owner, AssignedTo: &tailor}

	tests := []struct {
		name    string
		actor   Actor
		allowed bool
	}{
		{name: "admin", actor: Actor{ID: "a-1", Role: model.RoleAdmin}, allowed: true},
		{name: "owner", actor: Actor{ID: owner, Role: model.RoleCustomer}, allowed: true},
		{name: "assigned tailor", actor: Actor{ID: tailor, Role: model.RoleTailor}, allowed: true},
		{name: "other customer", actor: Actor{ID: "u-2", Role: model.RoleCustomer}},
		{name: "other tailor", actor: Actor{ID: "t-2", Role: model.RoleTailor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestBookingService()
			m.bookings.On("FindByID", mock.Anything, "b-1").Return(booking, nil)

			_, err := svc.Get(context.Background(), "b-1", tt.actor)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, apperrors.ErrForbidden, err)
			}
		})
	}
}

func TestCountActive(t *testing.T) {
	t1, t2 := "t-1", "t-2"
	bookings := []model.Booking{
		{Status: model.StatusCutting, AssignedTo: &t1},
		{Status: model.StatusPending, AssignedTo: &t1},
		{Status: model.StatusDelivered, AssignedTo: &t1},
		{Status: model.StatusCancelled, AssignedTo: &t1},
		{Status: model.StatusTrial, AssignedTo: &t2},
		{Status: model.StatusReady},
	}

	assert.Equal(t, 2, CountActive(t1, bookings))
	assert.Equal(t, 1, CountActive(t2, bookings))
	assert.Equal(t, 0, CountActive("t-3", bookings))

	roster := Roster([]model.User{{ID: t1}, {ID: t2}}, bookings)
	require.Len(t, roster, 2)
	assert.Equal(t, 2, roster[0].ActiveOrders)
	assert.Equal(t, 1, roster[1].ActiveOrders)
}
