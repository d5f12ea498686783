package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"tailorshop/internal/model"
	"tailorshop/internal/notifier"
)

const (
	minReconnectDelay = time.Second
	maxReconnectDelay = 30 * time.Second
)

// errDeliveriesClosed reports that the broker closed the delivery channel.
var errDeliveriesClosed = errors.New("delivery channel closed")

// Consumer reads booking events from a queue bound to the exchange and
// reconnects when the broker drops the connection.
type Consumer struct {
	url      string
	exchange string
	queue    string
	keys     []string

	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewConsumer declares queue and binds it to exchange for each routing key.
func NewConsumer(url, exchange, queue string, keys []string) (*Consumer, error) {
	c := &Consumer{url: url, exchange: exchange, queue: queue, keys: keys}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Consumer) connect() error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(c.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}
	q, err := ch.QueueDeclare(c.queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue: %w", err)
	}
	for _, rk := range c.keys {
		if err := ch.QueueBind(q.Name, rk, c.exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind %s: %w", rk, err)
		}
	}
	c.conn, c.ch, c.queue = conn, ch, q.Name
	return nil
}

// Run dispatches deliveries to h until ctx is cancelled. When the broker
// closes the channel it logs, then reconnects with exponential backoff.
func (c *Consumer) Run(ctx context.Context, h *NotificationHandler) error {
	delay := minReconnectDelay
	for {
		err := c.session(ctx, h)
		if ctx.Err() != nil {
			return nil
		}
		slog.WarnContext(ctx, "notification consumer disconnected", "error", err, "retry_in", delay)

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			delay = nextDelay(delay)
			c.closeConn()
			if err := c.connect(); err != nil {
				slog.WarnContext(ctx, "rabbitmq reconnect failed", "error", err, "retry_in", delay)
				continue
			}
			slog.InfoContext(ctx, "notification consumer reconnected", "queue", c.queue)
			delay = minReconnectDelay
			break
		}
	}
}

func (c *Consumer) session(ctx context.Context, h *NotificationHandler) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	return dispatch(ctx, msgs, h)
}

// dispatch handles deliveries until ctx ends (nil) or msgs closes
// (errDeliveriesClosed).
func dispatch(ctx context.Context, msgs <-chan amqp.Delivery, h *NotificationHandler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errDeliveriesClosed
			}
			switch err := h.Handle(ctx, d.RoutingKey, d.Body); {
			case err == nil:
				_ = d.Ack(false)
			case isPermanent(err):
				slog.ErrorContext(ctx, "dropping event", "routing_key", d.RoutingKey, "error", err)
				_ = d.Nack(false, false)
			default:
				slog.ErrorContext(ctx, "event handling failed", "routing_key", d.RoutingKey, "error", err)
				_ = d.Nack(false, !d.Redelivered)
			}
		}
	}
}

func nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > maxReconnectDelay {
		return maxReconnectDelay
	}
	return d
}

func (c *Consumer) closeConn() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.ch, c.conn = nil, nil
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func isPermanent(err error) bool {
	_, ok := err.(permanentError)
	return ok
}

// NotificationHandler turns booking events into customer messages.
type NotificationHandler struct {
	sender   notifier.Sender
	shopName string
}

// NewNotificationHandler creates a handler that sends through sender.
func NewNotificationHandler(sender notifier.Sender, shopName string) *NotificationHandler {
	return &NotificationHandler{sender: sender, shopName: shopName}
}

// Handle decodes body and notifies the customer. Undecodable payloads are
// permanent failures; send errors may be retried.
func (h *NotificationHandler) Handle(ctx context.Context, routingKey string, body []byte) error {
	var evt model.BookingEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return permanentError{fmt.Errorf("unmarshal %s: %w", routingKey, err)}
	}
	if evt.BookingID == "" || evt.Phone == "" {
		return permanentError{fmt.Errorf("invalid %s payload", routingKey)}
	}
	msg := CustomerMessage(h.shopName, routingKey, evt)
	if msg == "" {
		return nil
	}
	return h.sender.Send(ctx, evt.Phone, msg)
}

// CustomerMessage renders the text sent for an event, or "" when the event
// needs no message.
func CustomerMessage(shopName, routingKey string, evt model.BookingEvent) string {
	switch routingKey {
	case model.EventBookingCreated:
		return fmt.Sprintf("Hi %s, your %s booking for %s is received. %s will confirm shortly.",
			evt.CustomerName, evt.ServiceType, evt.Date, shopName)
	case model.EventBookingStatusChanged:
		switch evt.Status {
		case model.StatusReady:
			return fmt.Sprintf("Hi %s, your %s is ready for collection at %s.", evt.CustomerName, evt.ServiceType, shopName)
		case model.StatusTrial:
			return fmt.Sprintf("Hi %s, your %s is ready for a trial fitting at %s.", evt.CustomerName, evt.ServiceType, shopName)
		case model.StatusPending:
			return ""
		default:
			return fmt.Sprintf("Hi %s, your %s order is now: %s.", evt.CustomerName, evt.ServiceType, evt.Status)
		}
	}
	return ""
}
