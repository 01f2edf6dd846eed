package commands

//go:generate mockgen -source=$GOFILE -destination=../../testutil/mock/commands/$GOFILE -package=commandsmock

import (
	"context"
	"log/slog"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra"
	"closet-rental/internal/pkg/clock"
	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/usecase/queries"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRequestInput struct {
	ItemID   uuid.UUID
	RenterID uuid.UUID
	Period   rental.DateRange
	Notes    string
}

type TransitionResult struct {
	Rental  *queries.RentalView
	Outcome rental.Outcome
}

type SweepResult struct {
	Activated int
	Completed int
	Failed    int
}

type RentalCommands interface {
	CreateRequest(ctx context.Context, in CreateRequestInput) (*queries.RentalView, error)
	Transition(ctx context.Context, rentalID uuid.UUID, event rental.Event, actorID uuid.UUID) (*TransitionResult, error)
	// AdvanceDue applies the time-driven activate and complete transitions. Safe to call repeatedly.
	AdvanceDue(ctx context.Context) (*SweepResult, error)
}

type rentalUseCaseImpl struct {
	uow      shared.UnitOfWork
	rentals  shared.RentalReader
	index    shared.AvailabilityIndex
	notifier shared.Notifier
	metrics  shared.Metrics
	factory  *rental.Factory
	clock    clock.Clock
}

func NewRentalUseCase(
	uow shared.UnitOfWork,
	rentals shared.RentalReader,
	index shared.AvailabilityIndex,
	notifier shared.Notifier,
	metrics shared.Metrics,
	factory *rental.Factory,
	clk clock.Clock,
) RentalCommands {
	return &rentalUseCaseImpl{
		uow:      uow,
		rentals:  rentals,
		index:    index,
		notifier: notifier,
		metrics:  metrics,
		factory:  factory,
		clock:    clk,
	}
}

func (uc *rentalUseCaseImpl) CreateRequest(ctx context.Context, in CreateRequestInput) (*queries.RentalView, error) {
	var created *rental.Rental
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := tx.Items().FindByID(ctx, in.ItemID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrItemNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := item.CheckRentable(); err != nil {
			return err
		}

		stored, err := tx.Rentals().LockedRanges(ctx, item.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		locks := rental.UnionRanges(uc.index.LocksFor(item.ID()), stored)

		r, err := uc.factory.CreateRequest(item.Snapshot(), in.RenterID, in.Period, in.Notes, locks)
		if err != nil {
			return err
		}

		if err := tx.Rentals().Create(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		created = r
		return nil
	})
	if err != nil {
		uc.metrics.RequestRejected(rejectionReason(err))
		return nil, err
	}

	uc.metrics.RequestCreated()
	uc.notify(ctx, shared.Notice{
		Kind:           shared.NoticeRequested,
		RentalID:       created.ID(),
		ItemID:         created.ItemID(),
		To:             created.Status(),
		ActorID:        created.RenterID(),
		CounterpartyID: created.LenderID(),
		OccurredAt:     created.CreatedAt(),
	})

	return queries.NewRentalView(created, in.RenterID), nil
}

type heldLock struct {
	itemID uuid.UUID
	period rental.DateRange
}

func (uc *rentalUseCaseImpl) Transition(ctx context.Context, rentalID uuid.UUID, event rental.Event, actorID uuid.UUID) (*TransitionResult, error) {
	var (
		next    *rental.Rental
		outcome rental.Outcome
		held    *heldLock
	)
	release := func() {
		if held != nil {
			uc.index.Unlock(held.itemID, held.period)
			held = nil
		}
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// a retried attempt must not trip over the lock taken by the previous one
		release()

		current, err := tx.Rentals().FindByID(ctx, rentalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrRentalNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		n, o, err := current.Apply(event, actorID, uc.clock.Now())
		if err != nil {
			return err
		}

		if o.Effect == rental.LockAcquire {
			if err := uc.index.Lock(n.ItemID(), n.Period()); err != nil {
				return err
			}
			held = &heldLock{itemID: n.ItemID(), period: n.Period()}
		}

		if err := tx.Rentals().Update(ctx, n, current.Version()); err != nil {
			release()
			switch {
			case infra.IsKind(err, infra.KindVersionConflict):
				return errs.Mark(err, errs.ErrStaleRental)
			case infra.IsKind(err, infra.KindConflict):
				return &rental.ConflictError{ItemID: n.ItemID(), Range: n.Period()}
			default:
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		next, outcome = n, o
		return nil
	})
	if err != nil {
		release()
		uc.metrics.TransitionRejected(event, rejectionReason(err))
		return nil, err
	}

	if outcome.Effect == rental.LockRelease {
		uc.index.Unlock(next.ItemID(), next.Period())
	}

	if outcome.Changed {
		uc.metrics.TransitionApplied(event, outcome.From, outcome.To)
	}
	uc.notifyOutcome(ctx, next, outcome, actorID)

	return &TransitionResult{
		Rental:  queries.NewRentalView(next, actorID),
		Outcome: outcome,
	}, nil
}

func (uc *rentalUseCaseImpl) notifyOutcome(ctx context.Context, r *rental.Rental, o rental.Outcome, actorID uuid.UUID) {
	base := shared.Notice{
		Kind:       shared.NoticeTransitioned,
		RentalID:   r.ID(),
		ItemID:     r.ItemID(),
		Event:      o.Event,
		From:       o.From,
		To:         o.To,
		ActorID:    actorID,
		OccurredAt: r.UpdatedAt(),
	}
	if o.ConsentRecorded {
		base.Kind = shared.NoticeCancelRequested
	}

	// scheduler-driven transitions have no counterparty, so both parties hear about them
	recipients := []uuid.UUID{r.Counterparty(actorID)}
	if o.Role == rental.RoleSystem {
		recipients = []uuid.UUID{r.RenterID(), r.LenderID()}
	}

	for _, to := range recipients {
		n := base
		n.CounterpartyID = to
		uc.notify(ctx, n)
	}
}

func (uc *rentalUseCaseImpl) notify(ctx context.Context, n shared.Notice) {
	if err := uc.notifier.Notify(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to publish rental notice",
			"rental_id", n.RentalID.String(),
			"kind", string(n.Kind),
			"error", err.Error())
	}
}

func rejectionReason(err error) string {
	switch {
	case errs.Is(err, rental.ErrPastDate):
		return "past_date"
	case errs.Is(err, rental.ErrInvalidRange):
		return "invalid_range"
	case errs.Is(err, rental.ErrConflict):
		return "conflict"
	case errs.Is(err, rental.ErrSelfRental):
		return "self_rental"
	case errs.Is(err, rental.ErrNotesTooLong):
		return "notes_too_long"
	case errs.Is(err, rental.ErrInvalidTransition):
		return "invalid_transition"
	case errs.Is(err, rental.ErrUnauthorizedActor):
		return "unauthorized_actor"
	case errs.Is(err, errs.ErrItemNotFound), errs.Is(err, errs.ErrRentalNotFound):
		return "not_found"
	case errs.Is(err, errs.ErrStaleRental):
		return "stale"
	case errs.Is(err, catalog.ErrItemUnavailable):
		return "item_unavailable"
	default:
		return "internal"
	}
}
