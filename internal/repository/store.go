package repository

import (
    "context"

    "github.com/iliyamo/eventflow-booking/internal/model"
)

// BookingStore is the persistence collaborator for bookings.  Records are
// only ever appended; the store assigns the ID and nothing but Approve
// changes a stored record afterwards.
type BookingStore interface {
    // Append stores b, assigning b.ID.  IDs are unique and increasing even
    // under concurrent appends.
    Append(ctx context.Context, b *model.Booking) error
    // List returns every booking in ID order.
    List(ctx context.Context) ([]model.Booking, error)
    // GetByID returns ErrNotFound when no booking has the ID.
    GetByID(ctx context.Context, id uint64) (*model.Booking, error)
    // Approve marks a booking APPROVED and returns it.  Approving an
    // approved booking is a no-op.
    Approve(ctx context.Context, id uint64) (*model.Booking, error)
}
