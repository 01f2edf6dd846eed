package repository

import (
	"context"
	"log/slog"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra"
	"closet-rental/internal/infra/repository/converter"
	"closet-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertRentalSQL = `INSERT INTO rentals (` + converter.RentalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	selectRentalForUpdateSQL = `SELECT ` + converter.RentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`

	updateRentalSQL = `UPDATE rentals
		SET status = $2, cancel_requested_by = $3, version = $4, updated_at = $5
		WHERE id = $1 AND version = $6`

	selectOpenForItemSQL = `SELECT EXISTS (
		SELECT 1 FROM rentals WHERE item_id = $1 AND status IN ('pending', 'accepted', 'active')
	)`
)

type RentalRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewRentalRepository(db DBTX, logger *slog.Logger) *RentalRepository {
	return &RentalRepository{db: db, logger: logger}
}

func (r *RentalRepository) Create(ctx context.Context, rent *rental.Rental) error {
	if _, err := r.db.ExecContext(ctx, insertRentalSQL, converter.RentalInsertArgs(rent)...); err != nil {
		return r.classify(err, "failed to create rental")
	}
	return nil
}

func (r *RentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	rent, err := converter.ScanRental(r.db.QueryRowContext(ctx, selectRentalForUpdateSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "rental not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get rental", err)
	}
	return rent, nil
}

func (r *RentalRepository) Update(ctx context.Context, rent *rental.Rental, expectedVersion int) error {
	res, err := r.db.ExecContext(ctx, updateRentalSQL,
		rent.ID(),
		rent.Status().String(),
		pgconv.UUIDPtrToNull(rent.CancelRequestedBy()),
		rent.Version(),
		rent.UpdatedAt(),
		expectedVersion,
	)
	if err != nil {
		return r.classify(err, "failed to update rental")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read affected rows", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindVersionConflict, "rental version mismatch", nil)
	}
	return nil
}

func (r *RentalRepository) HasOpenForItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	var open bool
	if err := r.db.QueryRowContext(ctx, selectOpenForItemSQL, itemID).Scan(&open); err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check open rentals", err)
	}
	return open, nil
}

func (r *RentalRepository) LockedRanges(ctx context.Context, itemID uuid.UUID) ([]rental.DateRange, error) {
	rows, err := r.db.QueryContext(ctx, converter.LockedRangesQuery, itemID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list locked ranges", err)
	}
	ranges, err := converter.ScanLockedRanges(rows)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan locked ranges", err)
	}
	return ranges, nil
}

func (r *RentalRepository) classify(err error, msg string) error {
	switch {
	case pgconv.IsExclusionViolation(err):
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "rental overlaps a locked range", err)
	case pgconv.IsUniqueViolation(err):
		return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "rental already exists", err)
	case pgconv.IsForeignKeyViolation(err):
		return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "rental references a missing item", err)
	default:
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
	}
}
