package commands

import (
	"context"
	"log/slog"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/pkg/clock"
	"closet-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

func (uc *rentalUseCaseImpl) AdvanceDue(ctx context.Context) (*SweepResult, error) {
	today := clock.Today(uc.clock)
	due, err := uc.rentals.ListDue(ctx, today)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	result := &SweepResult{}
	for _, r := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		// an accepted rental whose last day has also passed is activated and completed in one sweep
		var events []rental.Event
		if r.Status() == rental.StatusAccepted {
			events = append(events, rental.EventActivate)
		}
		if r.Period().End().Before(today) {
			events = append(events, rental.EventComplete)
		}

		for _, event := range events {
			applied, err := uc.advance(ctx, r.ID(), event)
			if err != nil {
				result.Failed++
				slog.ErrorContext(ctx, "scheduled transition failed",
					"rental_id", r.ID().String(),
					"event", event.String(),
					"error", err.Error())
				break
			}
			if !applied {
				continue
			}
			switch event {
			case rental.EventActivate:
				result.Activated++
			case rental.EventComplete:
				result.Completed++
			}
		}
	}

	uc.metrics.SweepCompleted(result.Activated, result.Completed, result.Failed)
	return result, nil
}

// advance reports applied=false when another actor already moved the rental on.
func (uc *rentalUseCaseImpl) advance(ctx context.Context, id uuid.UUID, event rental.Event) (bool, error) {
	_, err := uc.Transition(ctx, id, event, rental.SystemActor)
	switch {
	case err == nil:
		return true, nil
	case errs.Is(err, rental.ErrInvalidTransition), errs.Is(err, errs.ErrRentalNotFound):
		return false, nil
	default:
		return false, err
	}
}
