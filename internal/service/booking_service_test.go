package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/eventflow-booking/internal/apperror"
	"github.com/iliyamo/eventflow-booking/internal/model"
	"github.com/iliyamo/eventflow-booking/internal/notify"
	"github.com/iliyamo/eventflow-booking/internal/repository"
)

type spyStore struct {
	repository.BookingStore
	mu      sync.Mutex
	appends int
	err     error
}

func (s *spyStore) Append(ctx context.Context, b *model.Booking) error {
	s.mu.Lock()
	s.appends++
	s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return s.BookingStore.Append(ctx, b)
}

type spyOutbox struct {
	mu     sync.Mutex
	events []notify.BookingCreatedEvent
	err    error
}

func (o *spyOutbox) Enqueue(_ context.Context, ev notify.BookingCreatedEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
	return o.err
}

func validRequest() model.BookingRequest {
	return model.BookingRequest{
		Name:    "Priya Sharma",
		Date:    "2026-12-12",
		Venue:   "Udaipur Palace",
		Email:   "priya@example.in",
		Package: model.TierLuxury,
	}
}

func newService() (*BookingService, *spyStore, *spyOutbox) {
	store := &spyStore{BookingStore: repository.NewMemoryStore()}
	outbox := &spyOutbox{}
	return NewBookingService(store, outbox, nil), store, outbox
}

func TestCreateStoresAndQueuesNotification(t *testing.T) {
	svc, store, outbox := newService()

	b, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), b.ID)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, 1, store.appends)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, uint64(1), outbox.events[0].BookingID)
	assert.Equal(t, int64(49999), outbox.events[0].Amount)
}

func TestCreateRejectsMissingFieldsBeforeCollaborators(t *testing.T) {
	blank := map[string]func(*model.BookingRequest){
		"name":    func(r *model.BookingRequest) { r.Name = "" },
		"date":    func(r *model.BookingRequest) { r.Date = "" },
		"venue":   func(r *model.BookingRequest) { r.Venue = "   " },
		"email":   func(r *model.BookingRequest) { r.Email = "" },
		"package": func(r *model.BookingRequest) { r.Package = "" },
	}
	for field, clear := range blank {
		t.Run(field, func(t *testing.T) {
			svc, store, outbox := newService()
			req := validRequest()
			clear(&req)

			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
			assert.Zero(t, store.appends)
			assert.Empty(t, outbox.events)
		})
	}
}

func TestCreateRejectsMalformedFields(t *testing.T) {
	svc, store, _ := newService()

	req := validRequest()
	req.Email = "not-an-email"
	_, err := svc.Create(context.Background(), req)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	req = validRequest()
	req.Package = "Gold"
	_, err = svc.Create(context.Background(), req)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Zero(t, store.appends)
}

func TestCreateSurvivesOutboxFailure(t *testing.T) {
	svc, _, outbox := newService()
	outbox.err = notify.ErrOutboxFull

	b, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), b.ID)
}

func TestCreateStoreFailureIsInternal(t *testing.T) {
	svc, store, outbox := newService()
	store.err = errors.New("disk full")

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Empty(t, outbox.events)
}

func TestStatsIsFreshFold(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, st)

	for _, tier := range model.Tiers() {
		req := validRequest()
		req.Package = tier
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
	st, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalEvents)
	assert.Equal(t, int64(84997), st.Revenue)

	_, err = svc.Approve(ctx, 1)
	require.NoError(t, err)
	st, _ = svc.Stats(ctx)
	assert.Equal(t, int64(84997), st.Revenue, "approval does not change revenue")
}

func TestGetAndApproveNotFound(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Get(context.Background(), 9)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = svc.Approve(context.Background(), 9)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCreateConcurrentDistinctIDs(t *testing.T) {
	svc, _, _ := newService()
	const n = 50
	var wg sync.WaitGroup
	ids := make(chan uint64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := svc.Create(context.Background(), validRequest())
			if assert.NoError(t, err) {
				ids <- b.ID
			}
		}()
	}
	wg.Wait()
	close(ids)
	seen := map[uint64]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestSuggestPackage(t *testing.T) {
	assert.Equal(t, "Premium or Luxury is best for weddings.", SuggestPackage("wedding"))
	assert.Equal(t, "Luxury is ideal for corporate events.", SuggestPackage("  Corporate "))
	assert.Equal(t, "Tell me more about your event.", SuggestPackage("concert"))
}
