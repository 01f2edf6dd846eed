//go:build unit

package availability

import (
	"context"
	"errors"
	"testing"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Lock that resolved its entry before a Rebuild must land in the live index.
func TestIndex_LockAcrossRebuildIsNotLost(t *testing.T) {
	idx := NewIndex()
	item := uuid.New()
	period := builder.Range(3, 5)

	t.Run("entry created before the rebuild", func(t *testing.T) {
		e := idx.entry(item)
		idx.Rebuild(context.Background(), nil)

		require.NoError(t, e.lock(item, period))
		locks := idx.LocksFor(item)
		require.Len(t, locks, 1)
		assert.True(t, locks[0].Equal(period))

		err := idx.Lock(item, builder.Range(4, 6))
		assert.True(t, errors.Is(err, rental.ErrConflict), "got %v", err)
	})

	t.Run("entry holding ranges is cleared in place", func(t *testing.T) {
		e := idx.entry(item)
		idx.Rebuild(context.Background(), nil)

		assert.Same(t, e, idx.entry(item))
		assert.Empty(t, idx.LocksFor(item))
	})
}
