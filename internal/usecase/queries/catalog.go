package queries

//go:generate mockgen -source=$GOFILE -destination=../../testutil/mock/queries/$GOFILE -package=queriesmock

import (
	"context"
	"strings"

	"closet-rental/internal/infra"
	"closet-rental/internal/pkg/clock"
	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidAvailability = errs.New("availability must be available, rented or unavailable")

func ParseAvailability(s string) (ItemAvailability, error) {
	switch a := ItemAvailability(s); a {
	case ItemAvailable, ItemRented, ItemUnavailable:
		return a, nil
	}
	return "", ErrInvalidAvailability
}

// ItemListFilter drives both the browse page and an owner's closet. Unlisted items
// only show up when OwnerID is set.
type ItemListFilter struct {
	OwnerID      *uuid.UUID
	Category     string
	Availability ItemAvailability
}

type ItemQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	List(ctx context.Context, filter ItemListFilter) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	items shared.ItemReader
	index shared.AvailabilityIndex
	clock clock.Clock
}

func NewItemQueries(items shared.ItemReader, index shared.AvailabilityIndex, clk clock.Clock) ItemQueries {
	return &itemQueriesImpl{items: items, index: index, clock: clk}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	item, err := q.items.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return NewItemView(item, q.index.LocksFor(id), clock.Today(q.clock)), nil
}

func (q *itemQueriesImpl) List(ctx context.Context, filter ItemListFilter) ([]*ItemView, error) {
	items, err := q.items.List(ctx, shared.ItemFilter{
		OwnerID:         filter.OwnerID,
		Category:        strings.ToLower(strings.TrimSpace(filter.Category)),
		IncludeUnlisted: filter.OwnerID != nil,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	today := clock.Today(q.clock)
	views := make([]*ItemView, 0, len(items))
	for _, item := range items {
		view := NewItemView(item, q.index.LocksFor(item.ID()), today)
		// the rented badge depends on today's locks, so this filter cannot be pushed into the store
		if filter.Availability != "" && view.Availability != filter.Availability {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}
