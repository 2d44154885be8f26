package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/eventflow-booking/internal/apperror"
	"github.com/iliyamo/eventflow-booking/internal/logger"
	"github.com/iliyamo/eventflow-booking/internal/model"
)

// OrderService validates order requests and opens orders on the gateway.
type OrderService struct {
	gateway Gateway
	timeout time.Duration
	log     *zap.Logger
	now     func() time.Time
}

// NewOrderService wires a gateway.  timeout bounds each gateway call; zero
// means ten seconds.
func NewOrderService(gw Gateway, timeout time.Duration, log *zap.Logger) *OrderService {
	if gw == nil {
		panic("nil gateway passed to NewOrderService")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{gateway: gw, timeout: timeout, log: log, now: time.Now}
}

// ToMinorUnits converts a major-unit amount to paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// NewReceipt returns a receipt token unique per call, at most 28 chars.
func NewReceipt(now time.Time) string {
	return fmt.Sprintf("event_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}

// ResolveAmount returns the major-unit amount to charge.  A package alone
// is priced from the tier table; an explicit amount must be positive and,
// if a package is also given, equal to its price.
func ResolveAmount(req model.OrderRequest) (float64, error) {
	if req.Package != "" {
		price, ok := req.Package.Price()
		if !ok {
			return 0, apperror.Validation("unknown package")
		}
		if req.Amount == 0 {
			return float64(price), nil
		}
		if req.Amount != float64(price) {
			return 0, apperror.Validation("amount does not match package price")
		}
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return 0, apperror.Validation("amount must be a number")
	}
	if req.Amount == 0 {
		return 0, apperror.Validation("amount required")
	}
	if req.Amount < 0 || ToMinorUnits(req.Amount) <= 0 {
		return 0, apperror.Validation("amount must be positive")
	}
	return req.Amount, nil
}

// CreateOrder validates req and opens an INR order for it.  Validation
// failures never reach the gateway.  A gateway failure is returned as an
// upstream error without retrying.
func (s *OrderService) CreateOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	amount, err := ResolveAmount(req)
	if err != nil {
		return nil, err
	}
	in := OrderInput{
		AmountMinor: ToMinorUnits(amount),
		Currency:    model.CurrencyINR,
		Receipt:     NewReceipt(s.now()),
	}
	if req.Package != "" {
		in.Notes = map[string]string{"package": string(req.Package)}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	order, err := s.gateway.CreateOrder(ctx, in)
	if err != nil {
		s.log.Error("payment.CreateOrder gateway call failed",
			logger.RequestField(ctx),
			zap.String(logger.KeyReceipt, in.Receipt),
			zap.Int64("amount_minor", in.AmountMinor),
			zap.Error(err),
		)
		return nil, apperror.Upstream("failed to create payment order", err)
	}
	s.log.Info("payment.CreateOrder succeeded",
		logger.RequestField(ctx),
		zap.String(logger.KeyReceipt, in.Receipt),
		zap.String(logger.KeyOrderID, order.ID),
	)
	return order, nil
}
