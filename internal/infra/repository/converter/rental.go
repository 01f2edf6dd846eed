package converter

import (
	"database/sql"
	"time"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/domain/rental"
	"closet-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

const RentalColumns = `id, item_id, item_title, item_price_per_day, item_image_url,
	renter_id, lender_id, start_date, end_date, total_price, status, notes,
	cancel_requested_by, version, created_at, updated_at`

func ScanRental(s Scanner) (*rental.Rental, error) {
	var (
		id, itemID, renterID, lenderID uuid.UUID
		title, imageURL, status, notes string
		pricePerDay, totalPrice        decimal.Decimal
		start, end                     time.Time
		cancelRequestedBy              uuid.NullUUID
		version                        int
		createdAt, updatedAt           time.Time
	)
	err := s.Scan(
		&id, &itemID, &title, &pricePerDay, &imageURL,
		&renterID, &lenderID, &start, &end, &totalPrice, &status, &notes,
		&cancelRequestedBy, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	st, err := rental.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	item := catalog.Snapshot{
		ID:          itemID,
		OwnerID:     lenderID,
		Title:       title,
		PricePerDay: pricePerDay,
		ImageURL:    imageURL,
	}
	return rental.ReconstructRental(
		id, item, renterID, lenderID,
		rental.NewDateRange(start, end),
		totalPrice, st, notes,
		pgconv.UUIDPtrFromNull(cancelRequestedBy),
		version, createdAt, updatedAt,
	), nil
}

// RentalInsertArgs follows the column order of RentalColumns.
func RentalInsertArgs(r *rental.Rental) []any {
	item := r.Item()
	return []any{
		r.ID(), item.ID, item.Title, item.PricePerDay, item.ImageURL,
		r.RenterID(), r.LenderID(), r.Period().Start(), r.Period().End(), r.TotalPrice(),
		r.Status().String(), r.Notes(), pgconv.UUIDPtrToNull(r.CancelRequestedBy()),
		r.Version(), r.CreatedAt(), r.UpdatedAt(),
	}
}

// LockedRangesQuery selects the periods that hold a lock on item $1.
const LockedRangesQuery = `SELECT start_date, end_date FROM rentals
	WHERE item_id = $1 AND status IN ('accepted', 'active')
	ORDER BY start_date`

func ScanLockedRanges(rows *sql.Rows) ([]rental.DateRange, error) {
	defer rows.Close()

	var out []rental.DateRange
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, err
		}
		out = append(out, rental.NewDateRange(start, end))
	}
	return out, rows.Err()
}
