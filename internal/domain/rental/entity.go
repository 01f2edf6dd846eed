package rental

import (
	"strings"
	"time"
	"unicode/utf8"

	"closet-rental/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxNotesLength = 500

type Rental struct {
	id                uuid.UUID
	item              catalog.Snapshot
	renterID          uuid.UUID
	lenderID          uuid.UUID
	period            DateRange
	totalPrice        decimal.Decimal
	status            Status
	notes             string
	cancelRequestedBy *uuid.UUID
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// Outcome describes what an applied event did to a rental.
type Outcome struct {
	Event   Event
	From    Status
	To      Status
	Role    Role
	Effect  LockEffect
	Changed bool
	// ConsentRecorded is set when the event only registered one side of a mutual transition.
	ConsentRecorded bool
}

func NewRental(
	item catalog.Snapshot,
	renterID uuid.UUID,
	period DateRange,
	totalPrice decimal.Decimal,
	notes string,
	now time.Time,
) (*Rental, error) {
	if renterID == uuid.Nil {
		return nil, ErrMissingRenter
	}
	if renterID == item.OwnerID {
		return nil, ErrSelfRental
	}
	if !period.IsWellFormed() {
		return nil, ErrInvalidRange
	}
	notes, err := normalizeNotes(notes)
	if err != nil {
		return nil, err
	}

	return &Rental{
		id:         uuid.New(),
		item:       item,
		renterID:   renterID,
		lenderID:   item.OwnerID,
		period:     period,
		totalPrice: totalPrice,
		status:     StatusPending,
		notes:      notes,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructRental(
	id uuid.UUID,
	item catalog.Snapshot,
	renterID, lenderID uuid.UUID,
	period DateRange,
	totalPrice decimal.Decimal,
	status Status,
	notes string,
	cancelRequestedBy *uuid.UUID,
	version int,
	createdAt, updatedAt time.Time,
) *Rental {
	return &Rental{
		id:                id,
		item:              item,
		renterID:          renterID,
		lenderID:          lenderID,
		period:            period,
		totalPrice:        totalPrice,
		status:            status,
		notes:             notes,
		cancelRequestedBy: cancelRequestedBy,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func normalizeNotes(notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return "", ErrNotesTooLong
	}
	return notes, nil
}

// RoleOf resolves the capacity in which actorID acts on this rental.
func (r *Rental) RoleOf(actorID uuid.UUID) Role {
	switch actorID {
	case SystemActor:
		return RoleSystem
	case r.renterID:
		return RoleRenter
	case r.lenderID:
		return RoleLender
	default:
		return RoleOutsider
	}
}

func (r *Rental) IsParty(userID uuid.UUID) bool {
	return userID != uuid.Nil && (userID == r.renterID || userID == r.lenderID)
}

// Counterparty returns the other party of the rental, or uuid.Nil when actorID is not a party.
func (r *Rental) Counterparty(actorID uuid.UUID) uuid.UUID {
	switch actorID {
	case r.renterID:
		return r.lenderID
	case r.lenderID:
		return r.renterID
	default:
		return uuid.Nil
	}
}

// Apply evaluates event on behalf of actorID and returns the resulting rental.
// The receiver is never modified, so a failed side effect can simply discard the result.
func (r *Rental) Apply(event Event, actorID uuid.UUID, now time.Time) (*Rental, Outcome, error) {
	role := r.RoleOf(actorID)
	if role == RoleOutsider {
		return nil, Outcome{}, &UnauthorizedActorError{Event: event, ActorID: actorID, Role: role}
	}

	t, ok := lookupTransition(r.status, event)
	if !ok {
		return nil, Outcome{}, &InvalidTransitionError{Event: event, Status: r.status}
	}
	if !t.allows(role) {
		return nil, Outcome{}, &UnauthorizedActorError{Event: event, ActorID: actorID, Role: role}
	}

	next := r.clone()
	next.version++
	next.updatedAt = now
	outcome := Outcome{Event: event, From: r.status, To: r.status, Role: role}

	if t.mutual {
		switch {
		case r.cancelRequestedBy == nil:
			requester := actorID
			next.cancelRequestedBy = &requester
			outcome.ConsentRecorded = true
			return next, outcome, nil
		case *r.cancelRequestedBy == actorID:
			return nil, Outcome{}, &InvalidTransitionError{Event: event, Status: r.status}
		}
	}

	next.status = t.to
	next.cancelRequestedBy = nil
	outcome.To = t.to
	outcome.Effect = t.effect
	outcome.Changed = true
	return next, outcome, nil
}

// IsDueForActivation reports whether the scheduler should move an accepted rental to active.
func (r *Rental) IsDueForActivation(today time.Time) bool {
	return r.status == StatusAccepted && !r.period.Start().After(today)
}

// IsDueForCompletion reports whether the last rental day has passed.
func (r *Rental) IsDueForCompletion(today time.Time) bool {
	return r.status == StatusActive && r.period.End().Before(today)
}

func (r *Rental) ReviewableBy(userID uuid.UUID) bool {
	return r.status == StatusCompleted && r.IsParty(userID)
}

func (r *Rental) clone() *Rental {
	c := *r
	if r.cancelRequestedBy != nil {
		id := *r.cancelRequestedBy
		c.cancelRequestedBy = &id
	}
	return &c
}

func (r *Rental) ID() uuid.UUID                 { return r.id }
func (r *Rental) Item() catalog.Snapshot        { return r.item }
func (r *Rental) ItemID() uuid.UUID             { return r.item.ID }
func (r *Rental) RenterID() uuid.UUID           { return r.renterID }
func (r *Rental) LenderID() uuid.UUID           { return r.lenderID }
func (r *Rental) Period() DateRange             { return r.period }
func (r *Rental) TotalPrice() decimal.Decimal   { return r.totalPrice }
func (r *Rental) Status() Status                { return r.status }
func (r *Rental) Notes() string                 { return r.notes }
func (r *Rental) CancelRequestedBy() *uuid.UUID { return r.cancelRequestedBy }
func (r *Rental) Version() int                  { return r.version }
func (r *Rental) CreatedAt() time.Time          { return r.createdAt }
func (r *Rental) UpdatedAt() time.Time          { return r.updatedAt }
