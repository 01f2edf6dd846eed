//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra/availability"
	"closet-rental/internal/infra/memstore"
	"closet-rental/internal/pkg/clock"
	"closet-rental/internal/pkg/metrics"
	"closet-rental/internal/testutil/builder"
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/queries"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []shared.Notice
	err     error
}

func (n *recordingNotifier) Notify(_ context.Context, notice shared.Notice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

func (n *recordingNotifier) all() []shared.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]shared.Notice(nil), n.notices...)
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	n.notices = nil
	n.mu.Unlock()
}

type harness struct {
	store    *memstore.Store
	index    *availability.Index
	notifier *recordingNotifier
	metrics  *metrics.Recorder
	clock    *clock.MockClock

	rentals commands.RentalCommands
	catalog commands.CatalogCommands
	reviews commands.ReviewCommands
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithUoW(t, nil)
}

// newHarnessWithUoW lets a test wrap the store's unit of work; nil uses the store itself.
func newHarnessWithUoW(t *testing.T, wrap func(shared.UnitOfWork) shared.UnitOfWork) *harness {
	t.Helper()
	h := &harness{
		store:    memstore.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil))),
		index:    availability.NewIndex(),
		notifier: &recordingNotifier{},
		metrics:  metrics.NewRecorder(),
		clock:    clock.NewMockClock(builder.Today.Add(10 * time.Hour)),
	}
	var uow shared.UnitOfWork = h.store
	if wrap != nil {
		uow = wrap(h.store)
	}
	factory := rental.NewFactory(h.clock, rental.NewDailyRateCalculator())
	h.rentals = commands.NewRentalUseCase(uow, h.store.Rentals(), h.index, h.notifier, h.metrics, factory, h.clock)
	h.catalog = commands.NewCatalogUseCase(uow, h.index, h.clock)
	h.reviews = commands.NewReviewUseCase(uow, h.clock)
	return h
}

func (h *harness) listItem(t *testing.T, ownerID uuid.UUID, price string) *queries.ItemView {
	t.Helper()
	item, err := h.catalog.CreateItem(context.Background(), commands.CreateItemInput{
		OwnerID:     ownerID,
		Title:       "Velvet sherwani",
		PricePerDay: price,
	})
	require.NoError(t, err)
	return item
}

func (h *harness) request(t *testing.T, itemID, renterID uuid.UUID, period rental.DateRange) *queries.RentalView {
	t.Helper()
	v, err := h.rentals.CreateRequest(context.Background(), commands.CreateRequestInput{
		ItemID:   itemID,
		RenterID: renterID,
		Period:   period,
	})
	require.NoError(t, err)
	return v
}

func (h *harness) apply(t *testing.T, rentalID uuid.UUID, event rental.Event, actorID uuid.UUID) *commands.TransitionResult {
	t.Helper()
	res, err := h.rentals.Transition(context.Background(), rentalID, event, actorID)
	require.NoError(t, err)
	return res
}

func (h *harness) stored(t *testing.T, id uuid.UUID) *rental.Rental {
	t.Helper()
	r, err := h.store.Rentals().FindByID(context.Background(), id)
	require.NoError(t, err)
	return r
}
