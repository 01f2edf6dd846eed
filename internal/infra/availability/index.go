package availability

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"closet-rental/internal/domain/rental"

	"github.com/google/uuid"
)

// Index is the in-memory calendar of locked date ranges per item. It is a
// derived cache of accepted and active rentals and can be rebuilt at any time.
//
// Entries are never replaced once created, so a caller holding an entry keeps
// writing to the live index even while Rebuild runs. Lock order is Index.mu
// before itemLocks.mu.
type Index struct {
	mu    sync.Mutex // guards items map membership
	items map[uuid.UUID]*itemLocks
}

type itemLocks struct {
	mu     sync.Mutex
	ranges []rental.DateRange // sorted by start
}

func NewIndex() *Index {
	return &Index{items: make(map[uuid.UUID]*itemLocks)}
}

func (x *Index) entry(itemID uuid.UUID) *itemLocks {
	x.mu.Lock()
	defer x.mu.Unlock()

	e, ok := x.items[itemID]
	if !ok {
		e = &itemLocks{}
		x.items[itemID] = e
	}
	return e
}

func (x *Index) Lock(itemID uuid.UUID, period rental.DateRange) error {
	if !period.IsWellFormed() {
		return rental.ErrInvalidRange
	}

	return x.entry(itemID).lock(itemID, period)
}

func (e *itemLocks) lock(itemID uuid.UUID, period rental.DateRange) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, r := range e.ranges {
		if r.Overlaps(period) {
			return &rental.ConflictError{ItemID: itemID, Range: r}
		}
	}

	i := sort.Search(len(e.ranges), func(i int) bool {
		return !e.ranges[i].Start().Before(period.Start())
	})
	e.ranges = append(e.ranges, rental.DateRange{})
	copy(e.ranges[i+1:], e.ranges[i:])
	e.ranges[i] = period
	return nil
}

func (x *Index) Unlock(itemID uuid.UUID, period rental.DateRange) {
	e := x.entry(itemID)
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, r := range e.ranges {
		if r.Equal(period) {
			e.ranges = append(e.ranges[:i], e.ranges[i+1:]...)
			return
		}
	}
}

func (x *Index) LocksFor(itemID uuid.UUID) []rental.DateRange {
	e := x.entry(itemID)
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]rental.DateRange, len(e.ranges))
	copy(out, e.ranges)
	return out
}

// Rebuild replaces every item's locks with the ones held by rentals. Rentals that
// do not hold a lock are skipped; overlapping ones are logged and skipped.
//
// The swap happens in place under each item's mutex. A Lock that finishes
// after the swap survives it; one that finished before is kept only if
// rentals includes its rental, so rentals must be read after any in-flight
// transition has committed. Startup, before traffic is served, satisfies that.
func (x *Index) Rebuild(ctx context.Context, rentals []*rental.Rental) int {
	fresh := NewIndex()
	count := 0
	for _, r := range rentals {
		if !r.Status().HoldsLock() {
			continue
		}
		if err := fresh.Lock(r.ItemID(), r.Period()); err != nil {
			slog.WarnContext(ctx, "skipping overlapping lock during index rebuild",
				"rental_id", r.ID().String(),
				"item_id", r.ItemID().String(),
				"error", err.Error())
			continue
		}
		count++
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	for id, e := range x.items {
		if _, ok := fresh.items[id]; ok {
			continue
		}
		e.mu.Lock()
		e.ranges = nil
		e.mu.Unlock()
	}
	for id, f := range fresh.items {
		e, ok := x.items[id]
		if !ok {
			x.items[id] = f
			continue
		}
		e.mu.Lock()
		e.ranges = f.ranges
		e.mu.Unlock()
	}
	return count
}
