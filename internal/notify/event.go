// Package notify delivers booking notifications outside the request that
// created the booking.  Bookings are handed to an Outbox; a worker (in
// process, or a RabbitMQ consumer) later turns each event into an email and
// an optional message.
package notify

import (
	"time"

	"github.com/iliyamo/eventflow-booking/internal/model"
)

// BookingCreatedQueue is the durable queue carrying BookingCreatedEvent.
const BookingCreatedQueue = "booking.created"

// WhatsAppQueue is the durable queue read by the messaging gateway.
const WhatsAppQueue = "whatsapp.outbound"

// BookingCreatedEvent carries everything the notifiers need, so that
// consumers never query the booking store.
type BookingCreatedEvent struct {
	BookingID uint64 `json:"booking_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Venue     string `json:"venue"`
	Date      string `json:"date"`
	Package   string `json:"package"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

// EventFromBooking builds the event for a stored booking.
func EventFromBooking(b model.Booking) BookingCreatedEvent {
	price, _ := b.Package.Price()
	return BookingCreatedEvent{
		BookingID: b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Venue:     b.Venue,
		Date:      b.Date,
		Package:   string(b.Package),
		Amount:    price,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
