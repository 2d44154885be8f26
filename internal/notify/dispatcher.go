package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/eventflow-booking/internal/logger"
)

// Mailer sends one email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Messenger sends one short text message to a phone number.
type Messenger interface {
	Send(ctx context.Context, to, body string) error
}

// Handler consumes booking events.
type Handler interface {
	Dispatch(ctx context.Context, ev BookingCreatedEvent) error
}

// Dispatcher turns a booking event into a confirmation email and, when the
// customer left a phone number, a message.  Each delivery gets its own
// timeout.
type Dispatcher struct {
	mailer    Mailer
	messenger Messenger
	timeout   time.Duration
	log       *zap.Logger
}

// NewDispatcher wires the notifiers.  A zero timeout means ten seconds.
func NewDispatcher(m Mailer, msg Messenger, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if m == nil || msg == nil {
		panic("nil notifier passed to NewDispatcher")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{mailer: m, messenger: msg, timeout: timeout, log: log}
}

// Dispatch attempts every delivery and returns the joined failures.
func (d *Dispatcher) Dispatch(ctx context.Context, ev BookingCreatedEvent) error {
	var errs []error

	mctx, cancel := context.WithTimeout(ctx, d.timeout)
	err := d.mailer.Send(mctx, ev.Email, EmailSubject(ev), EmailBody(ev))
	cancel()
	if err != nil {
		errs = append(errs, fmt.Errorf("send email: %w", err))
	}

	if ev.Phone != "" {
		sctx, cancel := context.WithTimeout(ctx, d.timeout)
		err := d.messenger.Send(sctx, ev.Phone, MessageBody(ev))
		cancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("send message: %w", err))
		}
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		d.log.Warn("notify.Dispatch delivery failed",
			zap.Uint64(logger.KeyBookingID, ev.BookingID),
			zap.Error(err),
		)
		return err
	}
	d.log.Info("notify.Dispatch delivered", zap.Uint64(logger.KeyBookingID, ev.BookingID))
	return nil
}

func EmailSubject(ev BookingCreatedEvent) string {
	return fmt.Sprintf("Booking #%d confirmed", ev.BookingID)
}

func EmailBody(ev BookingCreatedEvent) string {
	return fmt.Sprintf("Hi %s,\r\n\r\n"+
		"Thank you for booking with EventFlow Bharat.\r\n\r\n"+
		"Booking ID: %d\r\nDate: %s\r\nVenue: %s\r\nPackage: %s (Rs. %d)\r\n\r\n"+
		"Our team will contact you shortly.\r\n",
		ev.Name, ev.BookingID, ev.Date, ev.Venue, ev.Package, ev.Amount)
}

func MessageBody(ev BookingCreatedEvent) string {
	return fmt.Sprintf("EventFlow: booking #%d for %s at %s on %s is confirmed (%s).",
		ev.BookingID, ev.Name, ev.Venue, ev.Date, ev.Package)
}
