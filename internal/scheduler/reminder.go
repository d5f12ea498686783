// Package scheduler runs the daily appointment reminder job.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"tailorshop/internal/model"
	"tailorshop/internal/notifier"
	"tailorshop/internal/repository"
)

// ReminderService texts customers whose appointment is today and still pending.
type ReminderService struct {
	bookings repository.BookingRepository
	sender   notifier.Sender
	shopName string
	now      func() time.Time
	cron     *cron.Cron
}

// NewReminderService creates a reminder service.
func NewReminderService(bookings repository.BookingRepository, sender notifier.Sender, shopName string) *ReminderService {
	return &ReminderService{
		bookings: bookings,
		sender:   sender,
		shopName: shopName,
		now:      time.Now,
	}
}

// Start schedules SendDailyReminders on spec (standard 5-field cron).
func (s *ReminderService) Start(ctx context.Context, spec string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.SendDailyReminders(ctx); err != nil {
			slog.ErrorContext(ctx, "daily reminders failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule reminders %q: %w", spec, err)
	}
	s.cron.Start()
	slog.InfoContext(ctx, "reminder scheduler started", "spec", spec)
	return nil
}

// Stop halts the scheduler and waits for a running job.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// SendDailyReminders messages every pending booking dated today. Send
// failures are logged and skipped. It returns the number of messages sent.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (int, error) {
	today := s.now().Format(model.DateLayout)
	due, err := s.bookings.ListByDateAndStatus(ctx, today, model.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("list due bookings: %w", err)
	}

	sent := 0
	for i := range due {
		b := &due[i]
		if err := s.sender.Send(ctx, b.Phone, ReminderMessage(s.shopName, b)); err != nil {
			slog.WarnContext(ctx, "reminder failed", "booking_id", b.ID, "error", err)
			continue
		}
		sent++
	}
	slog.InfoContext(ctx, "daily reminders processed", "date", today, "due", len(due), "sent", sent)
	return sent, nil
}

// ReminderMessage is the text of an appointment reminder.
func ReminderMessage(shopName string, b *model.Booking) string {
	if b.AppointmentType == model.AppointmentPickup {
		return fmt.Sprintf("Hi %s, %s will visit %s today to collect your %s order.",
			b.CustomerName, shopName, b.Address, b.ServiceType)
	}
	return fmt.Sprintf("Hi %s, reminder: your %s appointment at %s is today.",
		b.CustomerName, b.ServiceType, shopName)
}
