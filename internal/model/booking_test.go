package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestRevenueFoldsTierPrices(t *testing.T) {
    bookings := []Booking{
        {Package: TierBasic},
        {Package: TierPremium},
        {Package: TierLuxury},
    }
    assert.Equal(t, int64(84997), Revenue(bookings))
    assert.Equal(t, int64(0), Revenue(nil))
}

func TestTierPrices(t *testing.T) {
    for tier, want := range map[PackageTier]int64{TierBasic: 9999, TierPremium: 24999, TierLuxury: 49999} {
        got, ok := tier.Price()
        assert.True(t, ok)
        assert.Equal(t, want, got)
    }
    _, ok := PackageTier("basic").Price()
    assert.False(t, ok, "tier names are case-sensitive")
    assert.Len(t, Tiers(), 3)
}

func TestNewBooking(t *testing.T) {
    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
    b := NewBooking(BookingRequest{Name: "Asha", Date: "2026-04-01", Venue: "Pune", Email: "a@x.in", Package: TierLuxury}, now)

    assert.Zero(t, b.ID)
    assert.Equal(t, BookingPending, b.Status)
    assert.Equal(t, time.UTC, b.CreatedAt.Location())
    assert.True(t, b.CreatedAt.Equal(now))
}

func TestCapabilities(t *testing.T) {
    admin := Identity{Subject: "1", Role: RoleAdmin}
    organizer := Identity{Subject: "2", Role: RoleOrganizer}

    assert.True(t, CanViewBookings.Allows(admin))
    assert.True(t, CanViewBookings.Allows(organizer))
    assert.False(t, CanViewBookings.Allows(Anonymous))
    assert.True(t, CanApproveBookings.Allows(admin))
    assert.False(t, CanApproveBookings.Allows(organizer))
    assert.False(t, CanViewStats.Allows(organizer))
    assert.True(t, Anonymous.IsAnonymous())
    assert.False(t, RoleAnonymous.Valid())
}
