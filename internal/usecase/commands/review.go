package commands

//go:generate mockgen -source=$GOFILE -destination=../../testutil/mock/commands/$GOFILE -package=commandsmock

import (
	"context"

	domreview "closet-rental/internal/domain/review"
	"closet-rental/internal/infra"
	"closet-rental/internal/pkg/clock"
	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/usecase/queries"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubmitReviewInput struct {
	RentalID uuid.UUID
	AuthorID uuid.UUID
	Rating   int
	Comment  string
	Tags     []string
}

type ReviewCommands interface {
	Submit(ctx context.Context, in SubmitReviewInput) (*queries.ReviewView, error)
}

type reviewUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewUseCase(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow, clock: clk}
}

func (uc *reviewUseCaseImpl) Submit(ctx context.Context, in SubmitReviewInput) (*queries.ReviewView, error) {
	var created *domreview.Review
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Rentals().FindByID(ctx, in.RentalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrRentalNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		eligibility, err := domreview.CheckEligibility(r, in.AuthorID)
		if err != nil {
			return err
		}

		rev, err := domreview.NewReview(eligibility, in.Rating, in.Comment, in.Tags, uc.clock.Now())
		if err != nil {
			return err
		}

		if err := tx.Reviews().Create(ctx, rev); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return domreview.ErrAlreadyReviewed
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		created = rev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.NewReviewView(created), nil
}
