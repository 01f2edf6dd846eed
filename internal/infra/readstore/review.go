package readstore

import (
	"context"
	"log/slog"

	"closet-rental/internal/domain/review"
	"closet-rental/internal/infra"
	"closet-rental/internal/infra/repository"
	"closet-rental/internal/infra/repository/converter"

	"github.com/google/uuid"
)

const (
	selectReviewsByRentalSQL = `SELECT ` + converter.ReviewColumns + ` FROM reviews
		WHERE rental_id = $1 ORDER BY created_at DESC`

	selectReviewsBySubjectSQL = `SELECT ` + converter.ReviewColumns + ` FROM reviews
		WHERE subject_id = $1 ORDER BY created_at DESC`
)

type ReviewReadStore struct {
	db     repository.DBTX
	logger *slog.Logger
}

func NewReviewReadStore(db repository.DBTX, logger *slog.Logger) *ReviewReadStore {
	return &ReviewReadStore{db: db, logger: logger}
}

func (s *ReviewReadStore) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]*review.Review, error) {
	return s.list(ctx, selectReviewsByRentalSQL, rentalID)
}

func (s *ReviewReadStore) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*review.Review, error) {
	return s.list(ctx, selectReviewsBySubjectSQL, subjectID)
}

func (s *ReviewReadStore) list(ctx context.Context, query string, id uuid.UUID) ([]*review.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list reviews", err)
	}
	defer rows.Close()

	var out []*review.Review
	for rows.Next() {
		rev, err := converter.ScanReview(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan review", err)
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate reviews", err)
	}
	return out, nil
}
