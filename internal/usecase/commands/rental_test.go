//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra"
	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/testutil/builder"
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest(t *testing.T) {
	t.Run("prices 50/day over three days at 150", func(t *testing.T) {
		h := newHarness(t)
		lender, renter := uuid.New(), uuid.New()
		item := h.listItem(t, lender, "50")

		v := h.request(t, item.ID, renter, builder.Range(12, 14))

		assert.Equal(t, "pending", v.Status)
		assert.Equal(t, "2024-06-01", v.StartDate)
		assert.Equal(t, "2024-06-03", v.EndDate)
		assert.Equal(t, int64(3), v.TotalDays)
		assert.Equal(t, "150.00", v.TotalPrice)
		assert.Equal(t, lender, v.LenderID)
		assert.Empty(t, h.index.LocksFor(item.ID), "pending requests do not reserve the calendar")
	})

	t.Run("price is fixed even if the item price changes later", func(t *testing.T) {
		h := newHarness(t)
		lender, renter := uuid.New(), uuid.New()
		item := h.listItem(t, lender, "50")
		v := h.request(t, item.ID, renter, builder.Range(12, 14))

		_, err := h.catalog.ChangePrice(context.Background(), item.ID, lender, "80")
		require.NoError(t, err)
		h.apply(t, v.ID, rental.EventAccept, lender)

		assert.Equal(t, "150", h.stored(t, v.ID).TotalPrice().String())
	})

	t.Run("rejections", func(t *testing.T) {
		h := newHarness(t)
		lender := uuid.New()
		item := h.listItem(t, lender, "50")
		hidden := h.listItem(t, lender, "50")
		unlisted := false
		_, err := h.catalog.UpdateItem(context.Background(), hidden.ID, lender, commands.UpdateItemInput{Listed: &unlisted})
		require.NoError(t, err)

		tests := []struct {
			name     string
			renterID uuid.UUID
			itemID   uuid.UUID
			period   rental.DateRange
			want     error
		}{
			{name: "start before today", renterID: uuid.New(), itemID: item.ID, period: builder.Range(-1, 2), want: rental.ErrPastDate},
			{name: "end before start", renterID: uuid.New(), itemID: item.ID, period: builder.Range(5, 3), want: rental.ErrInvalidRange},
			{name: "own listing", renterID: lender, itemID: item.ID, period: builder.Range(5, 6), want: rental.ErrSelfRental},
			{name: "unknown item", renterID: uuid.New(), itemID: uuid.New(), period: builder.Range(5, 6), want: errs.ErrItemNotFound},
			{name: "item not accepting requests", renterID: uuid.New(), itemID: hidden.ID, period: builder.Range(5, 6), want: catalog.ErrItemUnavailable},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := h.rentals.CreateRequest(context.Background(), commands.CreateRequestInput{
					ItemID: tt.itemID, RenterID: tt.renterID, Period: tt.period,
				})
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.want), "got %v", err)
			})
		}

		rentals, err := h.store.Rentals().List(context.Background(), shared.RentalFilter{PartyID: lender})
		require.NoError(t, err)
		assert.Empty(t, rentals, "rejected requests are never stored")
		series, err := testutil.GatherAndCount(h.metrics.Registry(), "closet_rental_rental_requests_rejected_total")
		require.NoError(t, err)
		assert.Equal(t, len(tests), series, "one rejection reason per case")
	})

	t.Run("today is a valid start and end", func(t *testing.T) {
		h := newHarness(t)
		item := h.listItem(t, uuid.New(), "50")
		v := h.request(t, item.ID, uuid.New(), builder.Range(0, 0))
		assert.Equal(t, int64(1), v.TotalDays)
	})

	t.Run("honors locks accepted by another process", func(t *testing.T) {
		h := newHarness(t)
		lender := uuid.New()
		item := h.listItem(t, lender, "50")
		stored, err := h.store.Items().FindByID(context.Background(), item.ID)
		require.NoError(t, err)

		// written straight to storage, so this process's index never saw it
		elsewhere := builder.NewRentalBuilder().WithItem(stored.Snapshot()).WithDays(5, 7).BuildInStatus(rental.StatusAccepted)
		require.NoError(t, h.store.Rentals().Create(context.Background(), elsewhere))
		require.Empty(t, h.index.LocksFor(item.ID))

		_, err = h.rentals.CreateRequest(context.Background(), commands.CreateRequestInput{
			ItemID: item.ID, RenterID: uuid.New(), Period: builder.Range(6, 8),
		})
		conflict, ok := rental.AsConflict(err)
		require.True(t, ok, "got %v", err)
		assert.True(t, conflict.Range.Equal(elsewhere.Period()))
	})

	t.Run("notifies the lender", func(t *testing.T) {
		h := newHarness(t)
		lender, renter := uuid.New(), uuid.New()
		item := h.listItem(t, lender, "50")
		v := h.request(t, item.ID, renter, builder.Range(12, 14))

		notices := h.notifier.all()
		require.Len(t, notices, 1)
		assert.Equal(t, shared.NoticeRequested, notices[0].Kind)
		assert.Equal(t, v.ID, notices[0].RentalID)
		assert.Equal(t, lender, notices[0].CounterpartyID)
	})
}

var equateRange = cmp.Comparer(func(a, b rental.DateRange) bool { return a.Equal(b) })

func TestTransition_Scenarios(t *testing.T) {
	t.Run("accept then read back locks exactly the range", func(t *testing.T) {
		h := newHarness(t)
		lender, renter := uuid.New(), uuid.New()
		item := h.listItem(t, lender, "50")
		v := h.request(t, item.ID, renter, builder.Range(12, 14))

		res := h.apply(t, v.ID, rental.EventAccept, lender)

		assert.Equal(t, "accepted", res.Rental.Status)
		assert.Equal(t, rental.StatusAccepted, h.stored(t, v.ID).Status())
		if diff := cmp.Diff([]rental.DateRange{builder.Range(12, 14)}, h.index.LocksFor(item.ID), equateRange); diff != "" {
			t.Errorf("locks mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("second overlapping request loses at acceptance", func(t *testing.T) {
		h := newHarness(t)
		lender := uuid.New()
		item := h.listItem(t, lender, "50")
		first := h.request(t, item.ID, uuid.New(), builder.Range(12, 14))  // 2024-06-01..03
		second := h.request(t, item.ID, uuid.New(), builder.Range(13, 15)) // 2024-06-02..04

		h.apply(t, first.ID, rental.EventAccept, lender)
		_, err := h.rentals.Transition(context.Background(), second.ID, rental.EventAccept, lender)

		require.Error(t, err)
		conflict, ok := rental.AsConflict(err)
		require.True(t, ok, "got %v", err)
		assert.True(t, conflict.Range.Equal(builder.Range(12, 14)))
		assert.Equal(t, rental.StatusPending, h.stored(t, second.ID).Status(), "loser is left untouched")
		assert.Len(t, h.index.LocksFor(item.ID), 1)
	})

	t.Run("new requests against a locked range are refused up front", func(t *testing.T) {
		h := newHarness(t)
		lender := uuid.New()
		item := h.listItem(t, lender, "50")
		first := h.request(t, item.ID, uuid.New(), builder.Range(12, 14))
		h.apply(t, first.ID, rental.EventAccept, lender)

		_, err := h.rentals.CreateRequest(context.Background(), commands.CreateRequestInput{
			ItemID: item.ID, RenterID: uuid.New(), Period: builder.Range(14, 16),
		})
		assert.True(t, errs.Is(err, rental.ErrConflict), "got %v", err)
	})

	t.Run("renter cannot accept their own request", func(t *testing.T) {
		h := newHarness(t)
		renter := uuid.New()
		item := h.listItem(t, uuid.New(), "50")
		v := h.request(t, item.ID, renter, builder.Range(12, 14))

		_, err := h.rentals.Transition(context.Background(), v.ID, rental.EventAccept, renter)

		var unauthorized *rental.UnauthorizedActorError
		require.True(t, errs.As(err, &unauthorized), "got %v", err)
		assert.Equal(t, rental.RoleRenter, unauthorized.Role)
		assert.Equal(t, rental.StatusPending, h.stored(t, v.ID).Status())
		assert.Empty(t, h.index.LocksFor(item.ID))
	})

	t.Run("accepting a declined rental is an invalid transition", func(t *testing.T) {
		h := newHarness(t)
		lender := uuid.New()
		item := h.listItem(t, lender, "50")
		v := h.request(t, item.ID, uuid.New(), builder.Range(12, 14))
		h.apply(t, v.ID, rental.EventDecline, lender)

		_, err := h.rentals.Transition(context.Background(), v.ID, rental.EventAccept, lender)

		var invalid *rental.InvalidTransitionError
		require.True(t, errs.As(err, &invalid), "got %v", err)
		assert.Equal(t, rental.StatusDeclined, invalid.Status)
		assert.Equal(t, rental.EventAccept, invalid.Event)
	})

	t.Run("re-accepting is rejected, not silently ignored", func(t *testing.T) {
		h := newHarness(t)
		lender := uuid.New()
		item := h.listItem(t, lender, "50")
		v := h.request(t, item.ID, uuid.New(), builder.Range(12, 14))
		h.apply(t, v.ID, rental.EventAccept, lender)

		_, err := h.rentals.Transition(context.Background(), v.ID, rental.EventAccept, lender)

		assert.True(t, errs.Is(err, rental.ErrInvalidTransition), "got %v", err)
		assert.Len(t, h.index.LocksFor(item.ID), 1)
	})

	t.Run("outsiders are unauthorized", func(t *testing.T) {
		h := newHarness(t)
		item := h.listItem(t, uuid.New(), "50")
		v := h.request(t, item.ID, uuid.New(), builder.Range(12, 14))

		_, err := h.rentals.Transition(context.Background(), v.ID, rental.EventDecline, uuid.New())
		assert.True(t, errs.Is(err, rental.ErrUnauthorizedActor), "got %v", err)
	})

	t.Run("unknown rental", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.rentals.Transition(context.Background(), uuid.New(), rental.EventAccept, uuid.New())
		assert.True(t, errs.Is(err, errs.ErrRentalNotFound), "got %v", err)
	})
}

func TestTransition_FullLifecycle(t *testing.T) {
	h := newHarness(t)
	lender, renter := uuid.New(), uuid.New()
	item := h.listItem(t, lender, "50")
	v := h.request(t, item.ID, renter, builder.Range(12, 14))

	h.apply(t, v.ID, rental.EventAccept, lender)
	h.apply(t, v.ID, rental.EventActivate, renter)
	assert.Len(t, h.index.LocksFor(item.ID), 1, "lock is kept while active")

	res := h.apply(t, v.ID, rental.EventComplete, lender)

	assert.Equal(t, "completed", res.Rental.Status)
	assert.Empty(t, h.index.LocksFor(item.ID))
	got := h.stored(t, v.ID)
	assert.Equal(t, rental.StatusCompleted, got.Status())
	assert.True(t, got.ReviewableBy(renter))
	assert.True(t, got.ReviewableBy(lender))
	assert.Equal(t, 4, got.Version())
}

func TestTransition_MutualCancel(t *testing.T) {
	h := newHarness(t)
	lender, renter := uuid.New(), uuid.New()
	item := h.listItem(t, lender, "50")
	v := h.request(t, item.ID, renter, builder.Range(12, 14))
	h.apply(t, v.ID, rental.EventAccept, lender)
	h.notifier.reset()

	first := h.apply(t, v.ID, rental.EventCancel, renter)
	assert.False(t, first.Outcome.Changed)
	assert.True(t, first.Outcome.ConsentRecorded)
	assert.Equal(t, "accepted", first.Rental.Status)
	assert.Len(t, h.index.LocksFor(item.ID), 1, "consent alone keeps the lock")

	_, err := h.rentals.Transition(context.Background(), v.ID, rental.EventCancel, renter)
	assert.True(t, errs.Is(err, rental.ErrInvalidTransition), "same party cannot consent twice")

	second := h.apply(t, v.ID, rental.EventCancel, lender)
	assert.True(t, second.Outcome.Changed)
	assert.Equal(t, "declined", second.Rental.Status)
	assert.Empty(t, h.index.LocksFor(item.ID))

	notices := h.notifier.all()
	require.Len(t, notices, 2)
	assert.Equal(t, shared.NoticeCancelRequested, notices[0].Kind)
	assert.Equal(t, lender, notices[0].CounterpartyID)
	assert.Equal(t, shared.NoticeTransitioned, notices[1].Kind)
	assert.Equal(t, renter, notices[1].CounterpartyID)
	assert.Equal(t, rental.StatusAccepted, notices[1].From)
	assert.Equal(t, rental.StatusDeclined, notices[1].To)
}

func TestTransition_NotifiesCounterparty(t *testing.T) {
	h := newHarness(t)
	lender, renter := uuid.New(), uuid.New()
	item := h.listItem(t, lender, "50")
	v := h.request(t, item.ID, renter, builder.Range(12, 14))
	h.notifier.reset()

	h.apply(t, v.ID, rental.EventAccept, lender)

	want := shared.Notice{
		Kind:           shared.NoticeTransitioned,
		RentalID:       v.ID,
		ItemID:         item.ID,
		Event:          rental.EventAccept,
		From:           rental.StatusPending,
		To:             rental.StatusAccepted,
		ActorID:        lender,
		CounterpartyID: renter,
		OccurredAt:     h.clock.Now(),
	}
	if diff := cmp.Diff([]shared.Notice{want}, h.notifier.all()); diff != "" {
		t.Errorf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestTransition_NotifierFailureDoesNotFailTransition(t *testing.T) {
	h := newHarness(t)
	lender := uuid.New()
	item := h.listItem(t, lender, "50")
	v := h.request(t, item.ID, uuid.New(), builder.Range(12, 14))
	h.notifier.err = errs.New("bus closed")

	res, err := h.rentals.Transition(context.Background(), v.ID, rental.EventAccept, lender)

	require.NoError(t, err)
	assert.Equal(t, "accepted", res.Rental.Status)
}

// Property: N lenders' accepts racing on overlapping ranges of one item, exactly one wins.
func TestTransition_ConcurrentAcceptsOnOverlappingRanges(t *testing.T) {
	const n = 16
	h := newHarness(t)
	lender := uuid.New()
	item := h.listItem(t, lender, "50")

	ids := make([]uuid.UUID, n)
	for i := range ids {
		// every range contains day 20
		ids[i] = h.request(t, item.ID, uuid.New(), builder.Range(10+i%5, 20+i%3)).ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			<-start
			_, err := h.rentals.Transition(context.Background(), id, rental.EventAccept, lender)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errs.Is(err, rental.ErrConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}(id)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, conflicts)
	assert.Empty(t, others)
	assert.Len(t, h.index.LocksFor(item.ID), 1)

	accepted, err := h.store.Rentals().ListHoldingLocks(context.Background())
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
}

// Concurrent accept of the same rental: the second caller sees the first one's result.
func TestTransition_ConcurrentAcceptsOfOneRental(t *testing.T) {
	h := newHarness(t)
	lender := uuid.New()
	item := h.listItem(t, lender, "50")
	v := h.request(t, item.ID, uuid.New(), builder.Range(12, 14))

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = h.rentals.Transition(context.Background(), v.ID, rental.EventAccept, lender)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errs.Is(err, rental.ErrInvalidTransition), "got %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, h.index.LocksFor(item.ID), 1)
}

// failingUpdates makes every rental Update fail with the given repository error.
type failingUpdates struct {
	shared.UnitOfWork
	kind infra.RepositoryErrorKind
}

type failingTx struct {
	shared.Tx
	kind infra.RepositoryErrorKind
}

type failingRentalRepo struct {
	shared.RentalRepository
	kind infra.RepositoryErrorKind
}

func (u failingUpdates) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.UnitOfWork.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, failingTx{Tx: tx, kind: u.kind})
	})
}

func (t failingTx) Rentals() shared.RentalRepository {
	return failingRentalRepo{RentalRepository: t.Tx.Rentals(), kind: t.kind}
}

func (r failingRentalRepo) Update(context.Context, *rental.Rental, int) error {
	return infra.RepositoryError{Kind: r.kind}
}

func TestTransition_StorageFailureReleasesLock(t *testing.T) {
	tests := []struct {
		name string
		kind infra.RepositoryErrorKind
		want error
	}{
		{name: "version conflict", kind: infra.KindVersionConflict, want: errs.ErrStaleRental},
		{name: "exclusion constraint", kind: infra.KindConflict, want: rental.ErrConflict},
		{name: "database down", kind: infra.KindDBFailure, want: errs.ErrDatabaseOperationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarnessWithUoW(t, func(u shared.UnitOfWork) shared.UnitOfWork {
				return failingUpdates{UnitOfWork: u, kind: tt.kind}
			})
			lender := uuid.New()
			item := h.listItem(t, lender, "50")
			v := h.request(t, item.ID, uuid.New(), builder.Range(12, 14))
			h.notifier.reset()

			_, err := h.rentals.Transition(context.Background(), v.ID, rental.EventAccept, lender)

			assert.True(t, errs.Is(err, tt.want), "got %v", err)
			assert.Empty(t, h.index.LocksFor(item.ID), "lock taken before the failed write is released")
			assert.Equal(t, rental.StatusPending, h.stored(t, v.ID).Status())
			assert.Empty(t, h.notifier.all())
		})
	}
}
