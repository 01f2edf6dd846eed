//go:build unit

package availability_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra/availability"
	"closet-rental/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_LockUnlock(t *testing.T) {
	idx := availability.NewIndex()
	item := uuid.New()

	require.NoError(t, idx.Lock(item, builder.Range(10, 12)))
	require.NoError(t, idx.Lock(item, builder.Range(1, 3)))
	require.NoError(t, idx.Lock(item, builder.Range(4, 9)))

	locks := idx.LocksFor(item)
	require.Len(t, locks, 3)
	assert.True(t, locks[0].Equal(builder.Range(1, 3)), "locks are ordered by start")
	assert.True(t, locks[1].Equal(builder.Range(4, 9)))
	assert.True(t, locks[2].Equal(builder.Range(10, 12)))

	t.Run("overlap is rejected with the existing range", func(t *testing.T) {
		err := idx.Lock(item, builder.Range(12, 14))
		require.ErrorIs(t, err, rental.ErrConflict)

		ce, ok := rental.AsConflict(err)
		require.True(t, ok)
		assert.Equal(t, item, ce.ItemID)
		assert.True(t, ce.Range.Equal(builder.Range(10, 12)))
		assert.Len(t, idx.LocksFor(item), 3, "failed lock leaves index unchanged")
	})

	t.Run("other items are independent", func(t *testing.T) {
		assert.NoError(t, idx.Lock(uuid.New(), builder.Range(10, 12)))
	})

	t.Run("malformed range", func(t *testing.T) {
		assert.ErrorIs(t, idx.Lock(item, builder.Range(30, 29)), rental.ErrInvalidRange)
	})

	t.Run("unlock", func(t *testing.T) {
		idx.Unlock(item, builder.Range(4, 9))
		assert.Len(t, idx.LocksFor(item), 2)

		// absent ranges are ignored
		idx.Unlock(item, builder.Range(4, 9))
		idx.Unlock(item, builder.Range(1, 2))
		idx.Unlock(uuid.New(), builder.Range(1, 3))
		assert.Len(t, idx.LocksFor(item), 2)

		require.NoError(t, idx.Lock(item, builder.Range(5, 8)))
	})

	t.Run("LocksFor returns a copy", func(t *testing.T) {
		locks := idx.LocksFor(item)
		locks[0] = builder.Range(100, 101)
		assert.False(t, idx.LocksFor(item)[0].Equal(builder.Range(100, 101)))
	})
}

func TestIndex_ConcurrentLocks(t *testing.T) {
	const workers = 64
	idx := availability.NewIndex()
	item := uuid.New()

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			// every candidate covers day 10
			err := idx.Lock(item, builder.Range(10-i%5, 10+i%3))
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, rental.ErrConflict):
				conflicts.Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
	assert.Len(t, idx.LocksFor(item), 1)
}

func TestIndex_Rebuild(t *testing.T) {
	idx := availability.NewIndex()
	stale := uuid.New()
	require.NoError(t, idx.Lock(stale, builder.Range(1, 2)))

	b := builder.NewRentalBuilder().WithDays(3, 5)
	accepted := b.BuildInStatus(rental.StatusAccepted)
	active := builder.NewRentalBuilder().WithItem(b.Item).WithDays(7, 8).BuildInStatus(rental.StatusActive)
	overlapping := builder.NewRentalBuilder().WithItem(b.Item).WithDays(5, 6).BuildInStatus(rental.StatusAccepted)
	pending := builder.NewRentalBuilder().WithItem(b.Item).WithDays(10, 11).BuildInStatus(rental.StatusPending)
	completed := builder.NewRentalBuilder().WithItem(b.Item).WithDays(12, 13).BuildInStatus(rental.StatusCompleted)

	n := idx.Rebuild(context.Background(), []*rental.Rental{accepted, active, overlapping, pending, completed})

	assert.Equal(t, 2, n)
	assert.Empty(t, idx.LocksFor(stale), "rebuild drops locks not backed by rentals")
	locks := idx.LocksFor(b.Item.ID)
	require.Len(t, locks, 2)
	assert.True(t, locks[0].Equal(builder.Range(3, 5)))
	assert.True(t, locks[1].Equal(builder.Range(7, 8)))
}

// Run with -race: Rebuild must not race Lock, Unlock or LocksFor.
func TestIndex_RebuildDuringTraffic(t *testing.T) {
	idx := availability.NewIndex()
	b := builder.NewRentalBuilder().WithDays(0, 1)
	snapshot := []*rental.Rental{b.BuildInStatus(rental.StatusAccepted)}

	items := make([]uuid.UUID, 8)
	for i := range items {
		items[i] = uuid.New()
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, item := range items {
		wg.Add(1)
		go func(i int, item uuid.UUID) {
			defer wg.Done()
			<-start
			for d := 0; d < 50; d++ {
				period := builder.Range(d*2, d*2+1)
				if err := idx.Lock(item, period); err == nil && d%2 == i%2 {
					idx.Unlock(item, period)
				}
				_ = idx.LocksFor(item)
			}
		}(i, item)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		for range 20 {
			idx.Rebuild(context.Background(), snapshot)
		}
	}()
	close(start)
	wg.Wait()

	// the last rebuild wins for the snapshot's item, and later locks are kept
	idx.Rebuild(context.Background(), snapshot)
	assert.Len(t, idx.LocksFor(b.Item.ID), 1)
	require.NoError(t, idx.Lock(items[0], builder.Range(200, 201)))
	assert.Len(t, idx.LocksFor(items[0]), 1)
}
