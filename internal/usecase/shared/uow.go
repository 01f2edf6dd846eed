package shared

import (
	"context"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/domain/rental"
	"closet-rental/internal/domain/review"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic.
	// fn may run more than once; it must not keep side effects from a failed attempt.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Rentals() RentalRepository
	Items() ItemRepository
	Reviews() ReviewRepository
}

type RentalRepository interface {
	Create(ctx context.Context, r *rental.Rental) error
	// FindByID locks the row for the rest of the transaction where the backend supports it.
	FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error)
	// Update persists r only if the stored version still equals expectedVersion.
	Update(ctx context.Context, r *rental.Rental, expectedVersion int) error
	// HasOpenForItem reports whether any pending, accepted or active rental refers to the item.
	HasOpenForItem(ctx context.Context, itemID uuid.UUID) (bool, error)
	// LockedRanges returns the periods of the item's accepted and active rentals as stored,
	// including ones accepted by other processes sharing the database.
	LockedRanges(ctx context.Context, itemID uuid.UUID) ([]rental.DateRange, error)
}

// Removed items are invisible to every lookup.
type ItemRepository interface {
	Create(ctx context.Context, item *catalog.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error)
	Update(ctx context.Context, item *catalog.Item) error
}

type ReviewRepository interface {
	Create(ctx context.Context, rev *review.Review) error
}
