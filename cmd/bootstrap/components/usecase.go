package components

import (
	"log/slog"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra/availability"
	"closet-rental/internal/infra/notify"
	"closet-rental/internal/pkg/clock"
	"closet-rental/internal/pkg/config"
	"closet-rental/internal/pkg/metrics"
	"closet-rental/internal/usecase"
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/queries"
	"closet-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCollaboratorsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		rental.NewDailyRateCalculator,
		fx.As(new(rental.PriceCalculator)),
	),
	rental.NewFactory,
)

var usecaseCollaboratorsModule = fx.Module("usecase/collaborators",
	fx.Provide(
		availability.NewIndex,
		func(x *availability.Index) shared.AvailabilityIndex { return x },
		metrics.NewRecorder,
		func(r *metrics.Recorder) shared.Metrics { return r },
		NewNoticeBus,
		func(b *notify.Bus) shared.Notifier { return b },
		notify.NewInbox,
		func(i *notify.Inbox) shared.NoticeFeed { return i },
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRentalUseCase,
		commands.NewCatalogUseCase,
		commands.NewReviewUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRentalQueries,
		queries.NewItemQueries,
		queries.NewReviewQueries,
		queries.NewNotificationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewNoticeBus(cfg config.Config, logger *slog.Logger) *notify.Bus {
	return notify.NewBus(cfg.Notify.Topic, logger)
}
