package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tailorshop/internal/model"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *model.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByAssignee(ctx context.Context, tailorID string) ([]model.Booking, error) {
	args := m.Called(ctx, tailorID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByDateAndStatus(ctx context.Context, date string, status model.BookingStatus) ([]model.Booking, error) {
	args := m.Called(ctx, date, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockBookingRepository) UpdateMeasurements(ctx context.Context, id string, ms model.Measurements) error {
	return m.Called(ctx, id, ms).Error(0)
}

func (m *MockBookingRepository) Assign(ctx context.Context, id, tailorID, tailorName string) error {
	return m.Called(ctx, id, tailorID, tailorName).Error(0)
}

func (m *MockBookingRepository) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	return m.Called(ctx, id, cost).Error(0)
}

func (m *MockBookingRepository) AppendReferenceImage(ctx context.Context, id, url string) ([]string, error) {
	args := m.Called(ctx, id, url)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepository) RenameAssignee(ctx context.Context, tailorID, name string) error {
	return m.Called(ctx, tailorID, name).Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, phone, body string) error {
	return m.Called(ctx, phone, body).Error(0)
}

func TestReminderService_SendDailyReminders(t *testing.T) {
	repo := new(MockBookingRepository)
	sender := new(MockSender)

	repo.On("ListByDateAndStatus", mock.Anything, "2026-10-17", model.StatusPending).Return([]model.Booking{
		{ID: "b1", CustomerName: "Rahul", Phone: "+919800000001", ServiceType: model.ServiceShirt, AppointmentType: model.AppointmentVisit},
		{ID: "b2", CustomerName: "Zoya", Phone: "9800000002", ServiceType: model.ServiceSuit, AppointmentType: model.AppointmentPickup, Address: "12 MG Road"},
	}, nil)
	sender.On("Send", mock.Anything, "+919800000001", "Hi Rahul, reminder: your Shirt Stitching appointment at Majeed is today.").Return(nil)
	sender.On("Send", mock.Anything, "9800000002", mock.Anything).Return(errors.New("twilio down"))

	svc := NewReminderService(repo, sender, "Majeed")
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }

	sent, err := svc.SendDailyReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	repo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestReminderService_ListError(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("ListByDateAndStatus", mock.Anything, mock.Anything, model.StatusPending).Return(nil, errors.New("db down"))

	svc := NewReminderService(repo, new(MockSender), "Majeed")
	_, err := svc.SendDailyReminders(context.Background())
	assert.Error(t, err)
}

func TestReminderService_StartRejectsBadSpec(t *testing.T) {
	svc := NewReminderService(new(MockBookingRepository), new(MockSender), "Majeed")
	assert.Error(t, svc.Start(context.Background(), "not a cron"))

	require.NoError(t, svc.Start(context.Background(), "0 9 * * *"))
	svc.Stop()
}

func TestReminderMessage_Pickup(t *testing.T) {
	b := &model.Booking{CustomerName: "Zoya", AppointmentType: model.AppointmentPickup, Address: "12 MG Road", ServiceType: model.ServiceSuit}
	assert.Equal(t, "Hi Zoya, Majeed will visit 12 MG Road today to collect your Complete Suit order.", ReminderMessage("Majeed", b))
}
