// Package service holds the booking workflow: validation, storage, the
// notification hand-off and the revenue summary.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/eventflow-booking/internal/apperror"
	"github.com/iliyamo/eventflow-booking/internal/logger"
	"github.com/iliyamo/eventflow-booking/internal/model"
	"github.com/iliyamo/eventflow-booking/internal/notify"
	"github.com/iliyamo/eventflow-booking/internal/repository"
)

// enqueueTimeout bounds the outbox hand-off, which may be a broker publish.
const enqueueTimeout = 5 * time.Second

// BookingService accepts bookings and answers admin queries over them.
type BookingService struct {
	store  repository.BookingStore
	outbox notify.Outbox
	log    *zap.Logger
	now    func() time.Time
}

// NewBookingService constructs a BookingService.  store and outbox must be
// non-nil.
func NewBookingService(store repository.BookingStore, outbox notify.Outbox, log *zap.Logger) *BookingService {
	if store == nil || outbox == nil {
		panic("nil dependency passed to NewBookingService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{store: store, outbox: outbox, log: log, now: time.Now}
}

func normalize(req model.BookingRequest) model.BookingRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Date = strings.TrimSpace(req.Date)
	req.Venue = strings.TrimSpace(req.Venue)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	return req
}

// Create validates req, stores the booking and queues its notification.
// Nothing is stored or queued when validation fails.  A failed enqueue is
// logged and does not fail the booking.
func (s *BookingService) Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	req = normalize(req)
	if err := ValidateBooking(req); err != nil {
		return nil, err
	}
	b := model.NewBooking(req, s.now())
	if err := s.store.Append(ctx, &b); err != nil {
		s.log.Error("service.BookingService.Create append failed", logger.RequestField(ctx), zap.Error(err))
		return nil, apperror.Internal("failed to save booking", err)
	}

	ectx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()
	if err := s.outbox.Enqueue(ectx, notify.EventFromBooking(b)); err != nil {
		s.log.Warn("service.BookingService.Create notification not queued",
			logger.RequestField(ctx),
			zap.Uint64(logger.KeyBookingID, b.ID),
			zap.Error(err),
		)
	}
	s.log.Info("service.BookingService.Create booking stored",
		logger.RequestField(ctx),
		zap.Uint64(logger.KeyBookingID, b.ID),
		zap.String("package", string(b.Package)),
	)
	return &b, nil
}

// List returns all bookings in ID order.
func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to load bookings", err)
	}
	return all, nil
}

// Get returns one booking or a not-found error.
func (s *BookingService) Get(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load booking")
	}
	return b, nil
}

// Approve marks a booking APPROVED.
func (s *BookingService) Approve(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := s.store.Approve(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to approve booking")
	}
	s.log.Info("service.BookingService.Approve booking approved",
		logger.RequestField(ctx),
		zap.Uint64(logger.KeyBookingID, id),
	)
	return b, nil
}

// Stats recomputes the booking count and revenue from every stored record.
// No running total is kept.
func (s *BookingService) Stats(ctx context.Context) (model.Stats, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return model.Stats{}, apperror.Internal("failed to load bookings", err)
	}
	return model.Stats{TotalEvents: len(all), Revenue: model.Revenue(all)}, nil
}

func storeError(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("booking not found")
	}
	return apperror.Internal(msg, err)
}
