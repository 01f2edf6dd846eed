package jobs

import (
	"context"
	"log/slog"
	"time"

	"closet-rental/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 2 * time.Minute

type Sweeper interface {
	AdvanceDue(ctx context.Context) (*commands.SweepResult, error)
}

// Scheduler runs the lifecycle sweep on a cron spec with seconds precision.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	log     *slog.Logger
}

func NewScheduler(spec string, sweeper Sweeper, log *slog.Logger) (*Scheduler, error) {
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithLogger(cl),
		// a slow sweep must not overlap the next one
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &Scheduler{cron: c, sweeper: sweeper, log: log}
	if _, err := c.AddFunc(spec, s.Sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Sweep runs one pass; it is also what the cron entry calls.
func (s *Scheduler) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	result, err := s.sweeper.AdvanceDue(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "rental sweep failed", "error", err.Error())
		return
	}
	if result.Activated+result.Completed+result.Failed == 0 {
		s.log.DebugContext(ctx, "rental sweep found nothing due")
		return
	}
	s.log.InfoContext(ctx, "rental sweep finished",
		"activated", result.Activated,
		"completed", result.Completed,
		"failed", result.Failed)
}

func (s *Scheduler) Start() {
	s.log.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	s.log.Info("Stopping cron scheduler...")
	select {
	case <-s.cron.Stop().Done():
		s.log.Info("Cron scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("Cron scheduler stop timed out")
	}
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct{ log *slog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
