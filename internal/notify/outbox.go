package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/eventflow-booking/internal/logger"
)

var (
	ErrOutboxFull   = errors.New("outbox full")
	ErrOutboxClosed = errors.New("outbox closed")
)

// Outbox accepts booking events for later delivery.  Enqueue must return
// quickly; delivery happens elsewhere.
type Outbox interface {
	Enqueue(ctx context.Context, ev BookingCreatedEvent) error
}

// MemoryOutbox is an in-process outbox: a bounded channel drained by one
// worker goroutine.  Events still queued when the process dies are lost.
type MemoryOutbox struct {
	ch      chan BookingCreatedEvent
	handler Handler
	timeout time.Duration
	log     *zap.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewMemoryOutbox starts the worker.  size bounds the number of pending
// events; timeout bounds each Dispatch call.
func NewMemoryOutbox(h Handler, size int, timeout time.Duration, log *zap.Logger) *MemoryOutbox {
	if size <= 0 {
		size = 256
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	o := &MemoryOutbox{
		ch:      make(chan BookingCreatedEvent, size),
		handler: h,
		timeout: timeout,
		log:     log,
		done:    make(chan struct{}),
	}
	go o.run()
	return o
}

// Enqueue never blocks: a full buffer returns ErrOutboxFull.
func (o *MemoryOutbox) Enqueue(ctx context.Context, ev BookingCreatedEvent) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		return ErrOutboxClosed
	}
	select {
	case o.ch <- ev:
		return nil
	default:
		return ErrOutboxFull
	}
}

// Close stops accepting events and waits until queued ones are dispatched
// or ctx expires.
func (o *MemoryOutbox) Close(ctx context.Context) error {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.ch)
	}
	o.mu.Unlock()

	select {
	case <-o.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *MemoryOutbox) run() {
	defer close(o.done)
	for ev := range o.ch {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		if err := o.handler.Dispatch(ctx, ev); err != nil {
			o.log.Error("notify.MemoryOutbox dispatch failed",
				zap.Uint64(logger.KeyBookingID, ev.BookingID),
				zap.Error(err),
			)
		}
		cancel()
	}
}
