// Package notifier delivers customer-facing messages: SMS and WhatsApp via
// Twilio, verification email via SES, and wa.me deep links.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"tailorshop/internal/config"
	"tailorshop/internal/metrics"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Sender delivers a short text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, body string) error
}

// messageAPI is the subset of the Twilio REST API used here.
type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender sends WhatsApp messages to E.164 numbers (leading +) and SMS
// to everything else.
type TwilioSender struct {
	api            messageAPI
	phoneNumber    string
	whatsAppNumber string
}

// NewTwilioSender creates a sender from Twilio credentials.
func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioSender(client.Api, cfg)
}

func newTwilioSender(api messageAPI, cfg config.TwilioConfig) *TwilioSender {
	return &TwilioSender{
		api:            api,
		phoneNumber:    cfg.PhoneNumber,
		whatsAppNumber: cfg.WhatsAppNumber,
	}
}

// Channel returns the channel a message to phone would use.
func Channel(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return ChannelWhatsApp
	}
	return ChannelSMS
}

func (s *TwilioSender) Send(ctx context.Context, phone, body string) error {
	channel := Channel(phone)

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if channel == ChannelWhatsApp {
		params.SetTo("whatsapp:" + phone)
		params.SetFrom("whatsapp:" + s.whatsAppNumber)
	} else {
		params.SetTo(phone)
		params.SetFrom(s.phoneNumber)
	}

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(channel, "failed").Inc()
		slog.ErrorContext(ctx, "twilio send failed", "channel", channel, "phone", phone, "error", err)
		return fmt.Errorf("send %s: %w", channel, err)
	}
	metrics.NotificationsSent.WithLabelValues(channel, "sent").Inc()
	if resp != nil && resp.Sid != nil {
		slog.InfoContext(ctx, "message sent", "channel", channel, "phone", phone, "sid", *resp.Sid)
	}
	return nil
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, phone, body string) error {
	metrics.NotificationsSent.WithLabelValues(Channel(phone), "logged").Inc()
	slog.InfoContext(ctx, "message not sent (twilio disabled)", "phone", phone, "body", body)
	return nil
}

// NewSender returns a Twilio sender when credentials are configured and a
// LogSender otherwise.
func NewSender(cfg config.TwilioConfig) Sender {
	if cfg.Enabled() {
		return NewTwilioSender(cfg)
	}
	return LogSender{}
}
