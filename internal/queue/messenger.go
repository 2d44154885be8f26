package queue

import (
	"context"

	"github.com/iliyamo/eventflow-booking/internal/notify"
)

// WhatsAppMessage is the payload read by the messaging gateway.
type WhatsAppMessage struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

// Messenger implements notify.Messenger by queueing WhatsApp messages.
type Messenger struct {
	pub *Publisher
}

// NewMessenger returns a Messenger publishing to notify.WhatsAppQueue.
func NewMessenger(p *Publisher) *Messenger { return &Messenger{pub: p} }

func (m *Messenger) Send(ctx context.Context, to, body string) error {
	return m.pub.PublishJSON(ctx, notify.WhatsAppQueue, WhatsAppMessage{PhoneNumber: to, Message: body})
}
