package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/eventflow-booking/internal/apperror"
    "github.com/iliyamo/eventflow-booking/internal/logger"
    "github.com/iliyamo/eventflow-booking/internal/model"
)

// OrderCreator opens payment orders.  *payment.OrderService satisfies it.
type OrderCreator interface {
    CreateOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error)
}

// SignatureVerifier checks a checkout callback.  *payment.Verifier
// satisfies it.
type SignatureVerifier interface {
    Verify(rec model.VerificationRecord) bool
}

// PaymentHandler serves the checkout endpoints.
type PaymentHandler struct {
    Orders   OrderCreator
    Verifier SignatureVerifier
    KeyID    string // public key id handed to the checkout widget
    Log      *zap.Logger
}

// NewPaymentHandler constructs a PaymentHandler and panics if any dependency is nil.
func NewPaymentHandler(orders OrderCreator, verifier SignatureVerifier, keyID string, log *zap.Logger) *PaymentHandler {
    if orders == nil || verifier == nil {
        panic("nil dependency passed to NewPaymentHandler")
    }
    if log == nil {
        log = zap.NewNop()
    }
    return &PaymentHandler{Orders: orders, Verifier: verifier, KeyID: keyID, Log: log}
}

// Key handles GET /payment/key.  Only the public key id is returned; the
// secret never leaves the server.
func (h *PaymentHandler) Key(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"key": h.KeyID})
}

// CreateOrder handles POST /payment/order.  The gateway's order is returned
// unchanged so the checkout widget can use it directly.
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
    var req model.OrderRequest
    if err := c.Bind(&req); err != nil {
        return respondError(c, h.Log, apperror.Validation("amount must be a number"))
    }
    order, err := h.Orders.CreateOrder(c.Request().Context(), req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, order)
}

// Verify handles POST /payment/verify.  A signature mismatch is not an
// error: it is answered with 400 {"success": false}.
func (h *PaymentHandler) Verify(c echo.Context) error {
    var rec model.VerificationRecord
    if err := c.Bind(&rec); err != nil {
        return respondError(c, h.Log, apperror.Validation("invalid request body"))
    }
    if rec.OrderID == "" || rec.PaymentID == "" || rec.Signature == "" {
        return respondError(c, h.Log, apperror.Validation("razorpay_order_id, razorpay_payment_id and razorpay_signature are required"))
    }
    if !h.Verifier.Verify(rec) {
        h.Log.Warn("payment signature mismatch",
            logger.RequestField(c.Request().Context()),
            zap.String(logger.KeyOrderID, rec.OrderID),
            zap.String("payment_id", rec.PaymentID),
        )
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
    }
    h.Log.Info("payment verified",
        logger.RequestField(c.Request().Context()),
        zap.String(logger.KeyOrderID, rec.OrderID),
    )
    return c.JSON(http.StatusOK, echo.Map{"success": true})
}
