package repository

import (
	"context"
	"log/slog"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/infra"
	"closet-rental/internal/infra/repository/converter"
	"closet-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertItemSQL = `INSERT INTO catalog_items (` + converter.ItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	selectItemForUpdateSQL = `SELECT ` + converter.ItemColumns + ` FROM catalog_items
		WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	updateItemSQL = `UPDATE catalog_items
		SET title = $2, price_per_day = $3, image_url = $4,
			description = $5, size = $6, category = $7, condition = $8,
			listed = $9, deleted_at = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL`
)

type ItemRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewItemRepository(db DBTX, logger *slog.Logger) *ItemRepository {
	return &ItemRepository{db: db, logger: logger}
}

func (r *ItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	_, err := r.db.ExecContext(ctx, insertItemSQL, converter.ItemArgs(item)...)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "item already exists", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create item", err)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	item, err := converter.ScanItem(r.db.QueryRowContext(ctx, selectItemForUpdateSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "item not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get item", err)
	}
	return item, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *catalog.Item) error {
	d := item.Details()
	res, err := r.db.ExecContext(ctx, updateItemSQL,
		item.ID(), item.Title(), item.PricePerDay().Amount(), item.ImageURL(),
		d.Description, d.Size, d.Category, string(d.Condition),
		item.IsListed(), item.DeletedAt(), item.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update item", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "item not found", nil)
	}
	return nil
}
