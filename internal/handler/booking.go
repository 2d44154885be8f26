package handler

import (
    "context"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/eventflow-booking/internal/apperror"
    "github.com/iliyamo/eventflow-booking/internal/model"
)

// BookingManager is the booking workflow the handlers drive.
// *service.BookingService satisfies it.
type BookingManager interface {
    Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error)
    List(ctx context.Context) ([]model.Booking, error)
    Get(ctx context.Context, id uint64) (*model.Booking, error)
    Approve(ctx context.Context, id uint64) (*model.Booking, error)
    Stats(ctx context.Context) (model.Stats, error)
}

// BookingHandler serves the public booking endpoint and the admin views.
type BookingHandler struct {
    Bookings BookingManager
    Log      *zap.Logger
}

// NewBookingHandler constructs a BookingHandler and panics if bookings is nil.
func NewBookingHandler(bookings BookingManager, log *zap.Logger) *BookingHandler {
    if bookings == nil {
        panic("nil service passed to NewBookingHandler")
    }
    if log == nil {
        log = zap.NewNop()
    }
    return &BookingHandler{Bookings: bookings, Log: log}
}

// Create handles POST /events.
//
// Request body:
//  {"name": "...", "date": "...", "venue": "...", "email": "...",
//   "package": "Basic|Premium|Luxury", "phone": "optional"}
//
// Responses:
//  200 {"success": true, "event": Booking}
//  400 {"error": "All fields required"} when any required field is blank
func (h *BookingHandler) Create(c echo.Context) error {
    var req model.BookingRequest
    if err := c.Bind(&req); err != nil {
        return respondError(c, h.Log, apperror.Validation("invalid request body"))
    }
    b, err := h.Bookings.Create(c.Request().Context(), req)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "event": b})
}

// List handles GET /admin/events.
func (h *BookingHandler) List(c echo.Context) error {
    all, err := h.Bookings.List(c.Request().Context())
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, all)
}

// Get handles GET /admin/events/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    b, err := h.Bookings.Get(c.Request().Context(), id)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, b)
}

// Approve handles PATCH /admin/events/:id/approve.  Approving an approved
// booking returns it unchanged.
func (h *BookingHandler) Approve(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    b, err := h.Bookings.Approve(c.Request().Context(), id)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, b)
}

// Stats handles GET /admin/stats.
func (h *BookingHandler) Stats(c echo.Context) error {
    st, err := h.Bookings.Stats(c.Request().Context())
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, st)
}

func parseID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, apperror.Validation("invalid booking id")
    }
    return id, nil
}
