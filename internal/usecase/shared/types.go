package shared

import (
	"context"
	"time"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/domain/rental"
	"closet-rental/internal/domain/review"

	"github.com/google/uuid"
)

// Read side ports, used outside transactions.

type RentalFilter struct {
	PartyID uuid.UUID
	// Role narrows PartyID to one side; empty matches either side.
	Role   rental.Role
	Status *rental.Status
	ItemID *uuid.UUID

	// Keyset pagination over (created_at DESC, id DESC). Zero values start from the newest rental.
	AfterCreatedAt time.Time
	AfterID        uuid.UUID
	Limit          int
}

type RentalReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error)
	List(ctx context.Context, filter RentalFilter) ([]*rental.Rental, error)
	// ListHoldingLocks returns accepted and active rentals, the source the availability index is rebuilt from.
	ListHoldingLocks(ctx context.Context) ([]*rental.Rental, error)
	// ListDue returns accepted rentals starting on or before today and active rentals that ended before today.
	ListDue(ctx context.Context, today time.Time) ([]*rental.Rental, error)
	LockedRanges(ctx context.Context, itemID uuid.UUID) ([]rental.DateRange, error)
}

type ItemFilter struct {
	OwnerID *uuid.UUID
	// Category matches exactly; empty matches every category.
	Category string
	// IncludeUnlisted also returns items the owner marked unavailable. Removed items never appear.
	IncludeUnlisted bool
}

type ItemReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]*catalog.Item, error)
}

type ReviewReader interface {
	ListByRental(ctx context.Context, rentalID uuid.UUID) ([]*review.Review, error)
	ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*review.Review, error)
}

// AvailabilityIndex holds the locked date ranges of every item.
type AvailabilityIndex interface {
	Lock(itemID uuid.UUID, period rental.DateRange) error
	// Unlock is a no-op when the range is not locked.
	Unlock(itemID uuid.UUID, period rental.DateRange)
	LocksFor(itemID uuid.UUID) []rental.DateRange
}

type NoticeKind string

const (
	NoticeRequested       NoticeKind = "requested"
	NoticeTransitioned    NoticeKind = "transitioned"
	NoticeCancelRequested NoticeKind = "cancel_requested"
)

// Notice tells the counterparty that something happened to a rental they are part of.
type Notice struct {
	Kind           NoticeKind
	RentalID       uuid.UUID
	ItemID         uuid.UUID
	Event          rental.Event
	From           rental.Status
	To             rental.Status
	ActorID        uuid.UUID
	CounterpartyID uuid.UUID
	OccurredAt     time.Time
}

type Notifier interface {
	Notify(ctx context.Context, notice Notice) error
}

// Metrics receives lifecycle counters; implementations must be safe for concurrent use.
type Metrics interface {
	RequestCreated()
	RequestRejected(reason string)
	TransitionApplied(event rental.Event, from, to rental.Status)
	TransitionRejected(event rental.Event, reason string)
	SweepCompleted(activated, completed, failed int)
}

// NoticeFeed returns what a recipient has been told so far, newest first.
type NoticeFeed interface {
	For(userID uuid.UUID) []Notice
}
