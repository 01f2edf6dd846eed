package components

import (
	"database/sql"
	"log/slog"

	"closet-rental/internal/infra/memstore"
	"closet-rental/internal/infra/readstore"
	"closet-rental/internal/infra/uow"
	"closet-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var MemoryModule = fx.Module("persistence/memory",
	fx.Provide(
		memstore.NewStore,
		func(s *memstore.Store) shared.UnitOfWork { return s },
		func(s *memstore.Store) shared.RentalReader { return s.Rentals() },
		func(s *memstore.Store) shared.ItemReader { return s.Items() },
		func(s *memstore.Store) shared.ReviewReader { return s.Reviews() },
	),
)

var PostgresModule = fx.Module("persistence/postgres",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			NewRentalReadStore,
			fx.As(new(shared.RentalReader)),
		),
		fx.Annotate(
			NewItemReadStore,
			fx.As(new(shared.ItemReader)),
		),
		fx.Annotate(
			NewReviewReadStore,
			fx.As(new(shared.ReviewReader)),
		),
	),
)

func NewRentalReadStore(db *sql.DB, logger *slog.Logger) *readstore.RentalReadStore {
	return readstore.NewRentalReadStore(db, logger)
}

func NewItemReadStore(db *sql.DB, logger *slog.Logger) *readstore.ItemReadStore {
	return readstore.NewItemReadStore(db, logger)
}

func NewReviewReadStore(db *sql.DB, logger *slog.Logger) *readstore.ReviewReadStore {
	return readstore.NewReviewReadStore(db, logger)
}
