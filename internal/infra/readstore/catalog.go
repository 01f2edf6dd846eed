package readstore

import (
	"context"
	"log/slog"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/infra"
	"closet-rental/internal/infra/repository"
	"closet-rental/internal/infra/repository/converter"
	"closet-rental/internal/pkg/pgconv"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	selectItemSQL = `SELECT ` + converter.ItemColumns + ` FROM catalog_items
		WHERE id = $1 AND deleted_at IS NULL`

	// NULL or empty parameters disable their filter
	selectItemsSQL = `SELECT ` + converter.ItemColumns + ` FROM catalog_items
		WHERE deleted_at IS NULL
			AND ($1::uuid IS NULL OR owner_id = $1)
			AND ($2::text = '' OR category = $2)
			AND ($3::boolean OR listed)
		ORDER BY created_at DESC, id DESC`
)

type ItemReadStore struct {
	db     repository.DBTX
	logger *slog.Logger
}

func NewItemReadStore(db repository.DBTX, logger *slog.Logger) *ItemReadStore {
	return &ItemReadStore{db: db, logger: logger}
}

func (s *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	item, err := converter.ScanItem(s.db.QueryRowContext(ctx, selectItemSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "item not found", err)
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to get item", err)
	}
	return item, nil
}

func (s *ItemReadStore) List(ctx context.Context, f shared.ItemFilter) ([]*catalog.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectItemsSQL, pgconv.UUIDPtrToNull(f.OwnerID), f.Category, f.IncludeUnlisted)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list items", err)
	}
	defer rows.Close()

	var out []*catalog.Item
	for rows.Next() {
		item, err := converter.ScanItem(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan item", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate items", err)
	}
	return out, nil
}
