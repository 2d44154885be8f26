package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/eventflow-booking/internal/logger"
	"github.com/iliyamo/eventflow-booking/internal/notify"
)

// Consumer drains the booking.created queue into a notify.Handler.
type Consumer struct {
	url     string
	handler notify.Handler
	timeout time.Duration
	log     *zap.Logger
}

// NewConsumer returns a consumer; timeout bounds each handler call.
func NewConsumer(url string, h notify.Handler, timeout time.Duration, log *zap.Logger) *Consumer {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Consumer{url: url, handler: h, timeout: timeout, log: log}
}

// Run connects to the broker, declares the queue (durable) and consumes
// until ctx is cancelled.  Lost connections are redialed with exponential
// backoff capped at 30s.  A message that fails to decode or dispatch is
// rejected without requeue so that one bad message cannot loop forever.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("queue.Consumer dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("queue.Consumer consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("queue.Consumer set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(notify.BookingCreatedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, notify.BookingCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				c.log.Error("queue.Consumer handle message failed",
					zap.String(logger.KeyQueue, notify.BookingCreatedQueue),
					zap.Error(err),
				)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
	var ev notify.BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.BookingID == 0 || ev.Email == "" {
		return errors.New("event missing booking id or email")
	}
	hctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.handler.Dispatch(hctx, ev)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
