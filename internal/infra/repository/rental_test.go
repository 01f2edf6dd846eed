//go:build unit

package repository_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"testing"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra"
	"closet-rental/internal/infra/repository"
	"closet-rental/internal/testutil/builder"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rentalColumns = []string{
	"id", "item_id", "item_title", "item_price_per_day", "item_image_url",
	"renter_id", "lender_id", "start_date", "end_date", "total_price", "status", "notes",
	"cancel_requested_by", "version", "created_at", "updated_at",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rentalRow(r *rental.Rental) []driver.Value {
	item := r.Item()
	return []driver.Value{
		r.ID().String(), item.ID.String(), item.Title, item.PricePerDay.String(), item.ImageURL,
		r.RenterID().String(), r.LenderID().String(), r.Period().Start(), r.Period().End(),
		r.TotalPrice().String(), r.Status().String(), r.Notes(),
		nil, int64(r.Version()), r.CreatedAt(), r.UpdatedAt(),
	}
}

func TestRentalRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: rental inserted"},
		{
			name:       "error: overlapping lock rejected by exclusion constraint",
			execErr:    &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"},
			expectKind: infra.KindConflict,
		},
		{
			name:       "error: duplicate id",
			execErr:    &pgconn.PgError{Code: "23505"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "error: connection failure",
			execErr:    errors.New("connection reset"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			rent, err := builder.NewRentalBuilder().BuildDomain()
			require.NoError(t, err)

			exp := mock.ExpectExec("INSERT INTO rentals").WithArgs(
				rent.ID(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				rent.RenterID(), rent.LenderID(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				"pending", sqlmock.AnyArg(), sqlmock.AnyArg(), 1, sqlmock.AnyArg(), sqlmock.AnyArg(),
			)
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			repo := repository.NewRentalRepository(db, discardLogger())
			err = repo.Create(ctx, rent)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRentalRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success: row is locked and mapped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		want, err := builder.NewRentalBuilder().WithNotes("evening event").BuildDomain()
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT (.+) FROM rentals WHERE id = \$1 FOR UPDATE`).
			WithArgs(want.ID()).
			WillReturnRows(sqlmock.NewRows(rentalColumns).AddRow(rentalRow(want)...))

		got, err := repository.NewRentalRepository(db, discardLogger()).FindByID(ctx, want.ID())
		require.NoError(t, err)

		assert.Equal(t, want.ID(), got.ID())
		assert.Equal(t, want.ItemID(), got.ItemID())
		assert.Equal(t, rental.StatusPending, got.Status())
		assert.True(t, want.Period().Equal(got.Period()))
		assert.True(t, want.TotalPrice().Equal(got.TotalPrice()))
		assert.Equal(t, "evening event", got.Notes())
		assert.Nil(t, got.CancelRequestedBy())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: missing row maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		mock.ExpectQuery("SELECT (.+) FROM rentals").WithArgs(id).
			WillReturnRows(sqlmock.NewRows(rentalColumns))

		_, err = repository.NewRentalRepository(db, discardLogger()).FindByID(ctx, id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestRentalRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		setup      func(sqlmock.Sqlmock)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: version matched",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE rentals").WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "error: no row with the expected version",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE rentals").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectKind: infra.KindVersionConflict,
		},
		{
			name: "error: accepting an overlapping range",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE rentals").WillReturnError(&pgconn.PgError{Code: "23P01"})
			},
			expectKind: infra.KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			b := builder.NewRentalBuilder()
			current, err := b.BuildDomain()
			require.NoError(t, err)
			next, _, err := current.Apply(rental.EventAccept, current.LenderID(), b.Now)
			require.NoError(t, err)

			tc.setup(mock)

			err = repository.NewRentalRepository(db, discardLogger()).Update(ctx, next, current.Version())
			if tc.expectKind != "" {
				assert.True(t, infra.IsKind(err, tc.expectKind), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
