package queries

//go:generate mockgen -source=$GOFILE -destination=../../testutil/mock/queries/$GOFILE -package=queriesmock

import (
	"context"

	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReviewQueries interface {
	ListByRental(ctx context.Context, rentalID uuid.UUID) ([]*ReviewView, error)
	ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*ReviewView, *RatingSummary, error)
}

type reviewQueriesImpl struct {
	reviews shared.ReviewReader
}

func NewReviewQueries(reviews shared.ReviewReader) ReviewQueries {
	return &reviewQueriesImpl{reviews: reviews}
}

func (q *reviewQueriesImpl) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]*ReviewView, error) {
	rows, err := q.reviews.ListByRental(ctx, rentalID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	views := make([]*ReviewView, 0, len(rows))
	for _, rv := range rows {
		views = append(views, NewReviewView(rv))
	}
	return views, nil
}

func (q *reviewQueriesImpl) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*ReviewView, *RatingSummary, error) {
	rows, err := q.reviews.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	summary := &RatingSummary{SubjectID: subjectID}
	views := make([]*ReviewView, 0, len(rows))
	total := 0
	for _, rv := range rows {
		views = append(views, NewReviewView(rv))
		rating := rv.Rating().Value()
		summary.RatingCounts[rating-1]++
		total += rating
	}
	summary.TotalReviews = len(rows)
	if summary.TotalReviews > 0 {
		summary.AverageRating = float64(total) / float64(summary.TotalReviews)
	}
	return views, summary, nil
}
