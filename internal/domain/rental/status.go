package rental

import "github.com/google/uuid"

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDeclined  Status = "declined"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusActive, StatusCompleted, StatusDeclined:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusDeclined
}

// HoldsLock reports whether a rental in this status owns its dates in the availability index.
func (s Status) HoldsLock() bool {
	return s == StatusAccepted || s == StatusActive
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrUnknownStatus
	}
	return st, nil
}

type Event string

const (
	EventAccept   Event = "accept"
	EventDecline  Event = "decline"
	EventCancel   Event = "cancel"
	EventActivate Event = "activate"
	EventComplete Event = "complete"
)

func (e Event) String() string {
	return string(e)
}

func ParseEvent(s string) (Event, error) {
	switch e := Event(s); e {
	case EventAccept, EventDecline, EventCancel, EventActivate, EventComplete:
		return e, nil
	default:
		return "", ErrUnknownEvent
	}
}

// Role is the capacity in which an actor acts on a particular rental.
type Role string

const (
	RoleRenter   Role = "renter"
	RoleLender   Role = "lender"
	RoleSystem   Role = "system"
	RoleOutsider Role = "outsider"
)

func (r Role) String() string {
	return string(r)
}

// SystemActor is the identity used by the scheduler for time-driven transitions.
var SystemActor = uuid.Nil

// LockEffect is the availability side effect that accompanies a transition.
type LockEffect int

const (
	LockNone LockEffect = iota
	LockAcquire
	LockRelease
)

type transition struct {
	to     Status
	actors []Role
	effect LockEffect
	// mutual transitions fire only once both parties have requested them
	mutual bool
}

type transitionKey struct {
	from  Status
	event Event
}

var transitions = map[transitionKey]transition{
	{StatusPending, EventAccept}:    {to: StatusAccepted, actors: []Role{RoleLender}, effect: LockAcquire},
	{StatusPending, EventDecline}:   {to: StatusDeclined, actors: []Role{RoleLender}},
	{StatusPending, EventCancel}:    {to: StatusDeclined, actors: []Role{RoleRenter}},
	{StatusAccepted, EventActivate}: {to: StatusActive, actors: []Role{RoleRenter, RoleLender, RoleSystem}},
	{StatusAccepted, EventCancel}:   {to: StatusDeclined, actors: []Role{RoleRenter, RoleLender}, effect: LockRelease, mutual: true},
	{StatusActive, EventComplete}:   {to: StatusCompleted, actors: []Role{RoleRenter, RoleLender, RoleSystem}, effect: LockRelease},
}

func lookupTransition(from Status, event Event) (transition, bool) {
	t, ok := transitions[transitionKey{from: from, event: event}]
	return t, ok
}

func (t transition) allows(role Role) bool {
	for _, r := range t.actors {
		if r == role {
			return true
		}
	}
	return false
}

// AvailableEvents lists the events the given role may fire from status s.
func AvailableEvents(s Status, role Role) []Event {
	var events []Event
	for _, e := range []Event{EventAccept, EventDecline, EventCancel, EventActivate, EventComplete} {
		if t, ok := lookupTransition(s, e); ok && t.allows(role) {
			events = append(events, e)
		}
	}
	return events
}
