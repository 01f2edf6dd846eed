package rental

import (
	"errors"
	"fmt"

	"closet-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPastDate          = errs.New("start date is in the past")
	ErrInvalidRange      = errs.New("end date is before start date")
	ErrConflict          = errs.New("dates overlap an existing booking")
	ErrSelfRental        = errs.New("cannot rent your own item")
	ErrNotesTooLong      = errs.New("notes are too long (max 500 characters)")
	ErrInvalidTransition = errs.New("invalid rental transition")
	ErrUnauthorizedActor = errs.New("actor is not allowed to perform this transition")
	ErrMissingRenter     = errs.New("renter is required")
	ErrUnknownEvent      = errs.New("unknown rental event")
	ErrUnknownStatus     = errs.New("unknown rental status")
)

// ConflictError reports the existing locked range a candidate collided with.
type ConflictError struct {
	ItemID uuid.UUID
	Range  DateRange
}

func (e *ConflictError) Error() string {
	if e.ItemID == uuid.Nil {
		return fmt.Sprintf("%s: %s", ErrConflict, e.Range)
	}
	return fmt.Sprintf("%s: item %s is booked %s", ErrConflict, e.ItemID, e.Range)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

type InvalidTransitionError struct {
	Event  Event
	Status Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a %s rental", ErrInvalidTransition, e.Event, e.Status)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type UnauthorizedActorError struct {
	Event   Event
	ActorID uuid.UUID
	Role    Role
}

func (e *UnauthorizedActorError) Error() string {
	return fmt.Sprintf("%s: %s (%s) cannot %s", ErrUnauthorizedActor, e.ActorID, e.Role, e.Event)
}

func (e *UnauthorizedActorError) Unwrap() error {
	return ErrUnauthorizedActor
}

// AsConflict extracts the conflicting range from err, if any.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
