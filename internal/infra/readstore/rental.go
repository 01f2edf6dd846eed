package readstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra"
	"closet-rental/internal/infra/repository"
	"closet-rental/internal/infra/repository/converter"
	"closet-rental/internal/pkg/pgconv"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	selectRentalSQL = `SELECT ` + converter.RentalColumns + ` FROM rentals WHERE id = $1`

	selectHoldingLocksSQL = `SELECT ` + converter.RentalColumns + ` FROM rentals
		WHERE status IN ('accepted', 'active')`

	selectDueSQL = `SELECT ` + converter.RentalColumns + ` FROM rentals
		WHERE (status = 'accepted' AND start_date <= $1)
		   OR (status = 'active' AND end_date < $1)
		ORDER BY start_date, id`
)

type RentalReadStore struct {
	db     repository.DBTX
	logger *slog.Logger
}

func NewRentalReadStore(db repository.DBTX, logger *slog.Logger) *RentalReadStore {
	return &RentalReadStore{db: db, logger: logger}
}

func (s *RentalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	rent, err := converter.ScanRental(s.db.QueryRowContext(ctx, selectRentalSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "rental not found", err)
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to get rental", err)
	}
	return rent, nil
}

func (s *RentalReadStore) List(ctx context.Context, f shared.RentalFilter) ([]*rental.Rental, error) {
	query, args := buildListQuery(f)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list rentals", err)
	}
	return s.collect(rows)
}

func (s *RentalReadStore) ListHoldingLocks(ctx context.Context) ([]*rental.Rental, error) {
	rows, err := s.db.QueryContext(ctx, selectHoldingLocksSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list locked rentals", err)
	}
	return s.collect(rows)
}

func (s *RentalReadStore) ListDue(ctx context.Context, today time.Time) ([]*rental.Rental, error) {
	rows, err := s.db.QueryContext(ctx, selectDueSQL, today)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list due rentals", err)
	}
	return s.collect(rows)
}

func (s *RentalReadStore) LockedRanges(ctx context.Context, itemID uuid.UUID) ([]rental.DateRange, error) {
	rows, err := s.db.QueryContext(ctx, converter.LockedRangesQuery, itemID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list locked ranges", err)
	}
	ranges, err := converter.ScanLockedRanges(rows)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan locked ranges", err)
	}
	return ranges, nil
}

func (s *RentalReadStore) collect(rows *sql.Rows) ([]*rental.Rental, error) {
	defer rows.Close()

	var out []*rental.Rental
	for rows.Next() {
		rent, err := converter.ScanRental(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan rental", err)
		}
		out = append(out, rent)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate rentals", err)
	}
	return out, nil
}

// buildListQuery pages over (created_at DESC, id DESC).
func buildListQuery(f shared.RentalFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.PartyID != uuid.Nil {
		switch f.Role {
		case rental.RoleRenter:
			where = append(where, "renter_id = "+arg(f.PartyID))
		case rental.RoleLender:
			where = append(where, "lender_id = "+arg(f.PartyID))
		default:
			p := arg(f.PartyID)
			where = append(where, "(renter_id = "+p+" OR lender_id = "+p+")")
		}
	}
	if f.Status != nil {
		where = append(where, "status = "+arg(f.Status.String()))
	}
	if f.ItemID != nil {
		where = append(where, "item_id = "+arg(*f.ItemID))
	}
	if !f.AfterCreatedAt.IsZero() {
		where = append(where, "(created_at, id) < ("+arg(f.AfterCreatedAt)+", "+arg(f.AfterID)+")")
	}

	var b strings.Builder
	b.WriteString("SELECT " + converter.RentalColumns + " FROM rentals")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	if f.Limit > 0 {
		b.WriteString(" LIMIT " + arg(f.Limit))
	}
	return b.String(), args
}
