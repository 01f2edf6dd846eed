package components

import (
	"context"
	"log/slog"

	"closet-rental/internal/infra/availability"
	"closet-rental/internal/infra/jobs"
	"closet-rental/internal/infra/notify"
	"closet-rental/internal/pkg/config"
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var LifecycleModule = fx.Module("lifecycle",
	fx.Invoke(
		RebuildAvailability,
		StartNoticeDelivery,
		StartScheduler,
	),
)

// RebuildAvailability regenerates the index from the stored rentals before traffic is served.
func RebuildAvailability(lc fx.Lifecycle, rentals shared.RentalReader, index *availability.Index, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			holding, err := rentals.ListHoldingLocks(ctx)
			if err != nil {
				return err
			}
			n := index.Rebuild(ctx, holding)
			logger.Info("Availability index rebuilt", "locks", n, "rentals", len(holding))
			return nil
		},
	})
}

func StartNoticeDelivery(lc fx.Lifecycle, bus *notify.Bus, inbox *notify.Inbox) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return bus.Subscribe(ctx, inbox.Deliver)
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return bus.Close()
		},
	})
}

func StartScheduler(lc fx.Lifecycle, cfg config.Config, rentals commands.RentalCommands, logger *slog.Logger) error {
	if !cfg.Scheduler.Enabled {
		logger.Info("Lifecycle sweep disabled")
		return nil
	}

	scheduler, err := jobs.NewScheduler(cfg.Scheduler.SweepSpec, rentals, logger)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// catch up on anything that came due while the process was down
			go scheduler.Sweep()
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop(ctx)
			return nil
		},
	})
	return nil
}
