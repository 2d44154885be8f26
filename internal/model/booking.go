package model

import "time"

// PackageTier is the pricing plan chosen for an event booking.  The set of
// tiers is closed; prices are looked up with Price and never supplied by
// the client.
type PackageTier string

const (
    TierBasic   PackageTier = "Basic"
    TierPremium PackageTier = "Premium"
    TierLuxury  PackageTier = "Luxury"
)

// tierPrices holds the price of each tier in major currency units (INR).
// Order creation and revenue reporting both read from this table.
var tierPrices = map[PackageTier]int64{
    TierBasic:   9999,
    TierPremium: 24999,
    TierLuxury:  49999,
}

// Tiers returns the known tiers in ascending price order.
func Tiers() []PackageTier {
    return []PackageTier{TierBasic, TierPremium, TierLuxury}
}

// Price returns the tier price in major units and whether the tier exists.
func (t PackageTier) Price() (int64, bool) {
    p, ok := tierPrices[t]
    return p, ok
}

// Valid reports whether t is one of the known tiers.
func (t PackageTier) Valid() bool {
    _, ok := tierPrices[t]
    return ok
}

// Booking status values.  A booking starts PENDING and may be moved to
// APPROVED by an administrator; nothing else changes a stored record.
const (
    BookingPending  = "PENDING"
    BookingApproved = "APPROVED"
)

// BookingRequest is the client submission that creates a booking.  All
// fields except Phone are required; Phone is only used for message
// notifications.
type BookingRequest struct {
    Name    string      `json:"name" validate:"required"`
    Date    string      `json:"date" validate:"required"`
    Venue   string      `json:"venue" validate:"required"`
    Email   string      `json:"email" validate:"required,email"`
    Package PackageTier `json:"package" validate:"required,tier"`
    Phone   string      `json:"phone,omitempty"`
}

// Booking is one accepted booking request as stored by a BookingStore.
//
// Fields:
//  ID        – store-assigned sequential identifier.
//  Name      – customer name.
//  Date      – event date as submitted.
//  Venue     – event venue.
//  Email     – contact email.
//  Package   – chosen package tier.
//  Phone     – optional contact phone.
//  Status    – PENDING or APPROVED.
//  CreatedAt – creation timestamp (UTC).
type Booking struct {
    ID        uint64      `json:"id"`              // bookings.id
    Name      string      `json:"name"`            // bookings.name
    Date      string      `json:"date"`            // bookings.event_date
    Venue     string      `json:"venue"`           // bookings.venue
    Email     string      `json:"email"`           // bookings.email
    Package   PackageTier `json:"package"`         // bookings.package
    Phone     string      `json:"phone,omitempty"` // bookings.phone
    Status    string      `json:"status"`          // bookings.status
    CreatedAt time.Time   `json:"createdAt"`       // bookings.created_at
}

// NewBooking shapes a validated request into an unsaved record.  The ID is
// left zero for the store to assign.
func NewBooking(req BookingRequest, now time.Time) Booking {
    return Booking{
        Name:      req.Name,
        Date:      req.Date,
        Venue:     req.Venue,
        Email:     req.Email,
        Package:   req.Package,
        Phone:     req.Phone,
        Status:    BookingPending,
        CreatedAt: now.UTC(),
    }
}

// Revenue folds tier prices over every booking.  Unknown tiers contribute
// nothing; stores only ever hold validated tiers.
func Revenue(bookings []Booking) int64 {
    var sum int64
    for _, b := range bookings {
        if p, ok := b.Package.Price(); ok {
            sum += p
        }
    }
    return sum
}

// Stats is the admin summary over all stored bookings.
type Stats struct {
    TotalEvents int   `json:"totalEvents"`
    Revenue     int64 `json:"revenue"`
}
