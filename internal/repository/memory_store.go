package repository

import (
    "context"
    "sync"

    "github.com/iliyamo/eventflow-booking/internal/model"
)

// MemoryStore keeps bookings in a process-local slice.  IDs come from a
// counter advanced under the same lock as the append, so they never repeat
// for the lifetime of the store.
type MemoryStore struct {
    mu       sync.RWMutex
    nextID   uint64
    bookings []model.Booking
}

// NewMemoryStore returns an empty store whose first ID is 1.
func NewMemoryStore() *MemoryStore { return &MemoryStore{nextID: 1} }

func (s *MemoryStore) Append(ctx context.Context, b *model.Booking) error {
    if err := ctx.Err(); err != nil {
        return err
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    b.ID = s.nextID
    s.nextID++
    s.bookings = append(s.bookings, *b)
    return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]model.Booking, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Booking, len(s.bookings))
    copy(out, s.bookings)
    return out, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    s.mu.RLock()
    defer s.mu.RUnlock()
    i, ok := s.indexOf(id)
    if !ok {
        return nil, ErrNotFound
    }
    b := s.bookings[i]
    return &b, nil
}

func (s *MemoryStore) Approve(ctx context.Context, id uint64) (*model.Booking, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    i, ok := s.indexOf(id)
    if !ok {
        return nil, ErrNotFound
    }
    s.bookings[i].Status = model.BookingApproved
    b := s.bookings[i]
    return &b, nil
}

// indexOf relies on IDs being assigned in append order starting at 1.
// Callers must hold the lock.
func (s *MemoryStore) indexOf(id uint64) (int, bool) {
    if id == 0 || id > uint64(len(s.bookings)) {
        return 0, false
    }
    return int(id - 1), true
}
