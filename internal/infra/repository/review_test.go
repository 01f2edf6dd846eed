//go:build unit

package repository_test

import (
	"context"
	"testing"

	"closet-rental/internal/infra"
	"closet-rental/internal/infra/repository"
	"closet-rental/internal/testutil/builder"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success: tags stored as json", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rev := builder.NewReviewBuilder().WithTags("Perfect fit").MustBuildDomain()

		mock.ExpectExec("INSERT INTO reviews").
			WithArgs(rev.ID(), rev.RentalID(), rev.ItemID(), rev.AuthorID(), rev.SubjectID(),
				"renter", rev.Rating().Value(), rev.Comment().String(), `["Perfect fit"]`, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repository.NewReviewRepository(db, discardLogger()).Create(ctx, rev)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: second review by the same author", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO reviews").
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err = repository.NewReviewRepository(db, discardLogger()).Create(ctx, builder.NewReviewBuilder().MustBuildDomain())
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})
}
