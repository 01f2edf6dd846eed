package converter

import (
	"database/sql"
	"time"

	"closet-rental/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const ItemColumns = `id, owner_id, title, price_per_day, image_url,
	description, size, category, condition, listed, deleted_at, created_at, updated_at`

func ScanItem(s Scanner) (*catalog.Item, error) {
	var (
		id, ownerID          uuid.UUID
		title, imageURL      string
		pricePerDay          decimal.Decimal
		details              catalog.Details
		condition            string
		listed               bool
		deletedAt            sql.NullTime
		createdAt, updatedAt time.Time
	)
	if err := s.Scan(
		&id, &ownerID, &title, &pricePerDay, &imageURL,
		&details.Description, &details.Size, &details.Category, &condition, &listed, &deletedAt,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	details.Condition = catalog.Condition(condition)

	var removedAt *time.Time
	if deletedAt.Valid {
		removedAt = &deletedAt.Time
	}
	return catalog.ReconstructItem(id, ownerID, title, pricePerDay, imageURL, details, listed, removedAt, createdAt, updatedAt), nil
}

// ItemArgs lists the values for ItemColumns in order.
func ItemArgs(item *catalog.Item) []any {
	d := item.Details()
	return []any{
		item.ID(), item.OwnerID(), item.Title(), item.PricePerDay().Amount(), item.ImageURL(),
		d.Description, d.Size, d.Category, string(d.Condition), item.IsListed(), item.DeletedAt(),
		item.CreatedAt(), item.UpdatedAt(),
	}
}
