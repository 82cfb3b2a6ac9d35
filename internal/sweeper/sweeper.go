package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"go.uber.org/fx"
)

const sweepTimeout = time.Minute

type Opts struct {
	fx.In

	Command command.Client
	Logger  logger.Logger
	Config  *config.Config
	Clock   clockwork.Clock `optional:"true"`
}

// Sweeper periodically removes expired cache entries and stale handoffs.
type Sweeper struct {
	command   command.Client
	logger    logger.Logger
	interval  time.Duration
	scheduler gocron.Scheduler
}

func New(opts Opts) (*Sweeper, error) {
	schedOpts := []gocron.SchedulerOption{gocron.WithLocation(time.UTC)}
	if opts.Clock != nil {
		schedOpts = append(schedOpts, gocron.WithClock(opts.Clock))
	}

	scheduler, err := gocron.NewScheduler(schedOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	interval := opts.Config.Cache.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}

	return &Sweeper{
		command:   opts.Command,
		logger:    opts.Logger.WithComponent("Sweeper"),
		interval:  interval,
		scheduler: scheduler,
	}, nil
}

// Start schedules the sweep to run now and then every interval.
func (s *Sweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
			defer cancel()
			_, _ = s.RunOnce(ctx)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule cache sweep: %w", err)
	}

	s.scheduler.Start()
	s.logger.Info("Cache sweep scheduled", "interval", s.interval.String())
	return nil
}

func (s *Sweeper) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}
	s.logger.Info("Cache sweep stopped")
	return nil
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) (command.SweepReport, error) {
	report, err := s.command.Sweep(ctx)
	if err != nil {
		s.logger.Error("Cache sweep failed", "error", err)
		return report, err
	}
	s.logger.Info("Cache sweep finished", "sources", report.Sources, "sessions", report.Sessions)
	return report, nil
}

var Module = fx.Module("sweeper",
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, s *Sweeper) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return s.Start()
			},
			OnStop: func(context.Context) error {
				return s.Stop()
			},
		})
	}),
)
