package queries

//go:generate mockgen -source=$GOFILE -destination=../../testutil/mock/queries/$GOFILE -package=queriesmock

import (
	"context"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra"
	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRentalAccess  = errs.New("rental is only visible to its renter and lender")
	ErrInvalidCursor = errs.New("invalid cursor")
	ErrInvalidRole   = errs.New("role must be renter or lender")
)

// RentalListFilter mirrors the dashboard tabs: which side the caller is on and which status to show.
type RentalListFilter struct {
	Role   string
	Status string
	ItemID *uuid.UUID
}

type RentalQueries interface {
	// Get reports found=false instead of an error when the rental does not exist.
	Get(ctx context.Context, viewerID, id uuid.UUID) (view *RentalView, found bool, err error)
	List(ctx context.Context, viewerID uuid.UUID, filter RentalListFilter, cursor *Cursor, limit int) ([]*RentalView, *Cursor, error)
	LocksFor(ctx context.Context, itemID uuid.UUID) ([]DateRangeView, error)
}

type rentalQueriesImpl struct {
	rentals shared.RentalReader
	items   shared.ItemReader
	index   shared.AvailabilityIndex
}

func NewRentalQueries(rentals shared.RentalReader, items shared.ItemReader, index shared.AvailabilityIndex) RentalQueries {
	return &rentalQueriesImpl{rentals: rentals, items: items, index: index}
}

func (q *rentalQueriesImpl) Get(ctx context.Context, viewerID, id uuid.UUID) (*RentalView, bool, error) {
	r, err := q.rentals.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, false, nil
		}
		return nil, false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !r.IsParty(viewerID) {
		return nil, true, ErrRentalAccess
	}
	return NewRentalView(r, viewerID), true, nil
}

func (q *rentalQueriesImpl) List(ctx context.Context, viewerID uuid.UUID, filter RentalListFilter, cursor *Cursor, limit int) ([]*RentalView, *Cursor, error) {
	limit = ValidateLimit(limit)
	sf := shared.RentalFilter{
		PartyID: viewerID,
		ItemID:  filter.ItemID,
		Limit:   limit + 1,
	}

	switch rental.Role(filter.Role) {
	case "":
	case rental.RoleRenter, rental.RoleLender:
		sf.Role = rental.Role(filter.Role)
	default:
		return nil, nil, ErrInvalidRole
	}

	if filter.Status != "" {
		st, err := rental.ParseStatus(filter.Status)
		if err != nil {
			return nil, nil, err
		}
		sf.Status = &st
	}

	if cursor != nil && cursor.After != "" {
		createdAt, id, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, ErrInvalidCursor
		}
		sf.AfterCreatedAt, sf.AfterID = createdAt, id
	}

	rows, err := q.rentals.List(ctx, sf)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
		rows = rows[:limit]
	}

	views := make([]*RentalView, 0, len(rows))
	for _, r := range rows {
		views = append(views, NewRentalView(r, viewerID))
	}
	return views, next, nil
}

func (q *rentalQueriesImpl) LocksFor(ctx context.Context, itemID uuid.UUID) ([]DateRangeView, error) {
	if _, err := q.items.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	stored, err := q.rentals.LockedRanges(ctx, itemID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	locks := rental.UnionRanges(q.index.LocksFor(itemID), stored)
	views := make([]DateRangeView, 0, len(locks))
	for _, l := range locks {
		views = append(views, NewDateRangeView(l))
	}
	return views, nil
}
