package repository

import (
	"context"
	"log/slog"

	"closet-rental/internal/domain/review"
	"closet-rental/internal/infra"
	"closet-rental/internal/infra/repository/converter"
	"closet-rental/internal/pkg/pgconv"
)

const insertReviewSQL = `INSERT INTO reviews (` + converter.ReviewColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

type ReviewRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewReviewRepository(db DBTX, logger *slog.Logger) *ReviewRepository {
	return &ReviewRepository{db: db, logger: logger}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	tags, err := converter.TagsJSON(rev.Tags())
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode review tags", err)
	}

	_, err = r.db.ExecContext(ctx, insertReviewSQL,
		rev.ID(), rev.RentalID(), rev.ItemID(), rev.AuthorID(), rev.SubjectID(),
		rev.AuthorRole().String(), rev.Rating().Value(), rev.Comment().String(),
		string(tags), rev.CreatedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "review already exists for rental and author", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create review", err)
	}
	return nil
}
