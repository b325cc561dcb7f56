package reminders

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/carewell/portal/config"
	"github.com/carewell/portal/store"
)

// Sweeper periodically transitions overdue upcoming reminders to missed.
// Without it the upcoming -> missed transition would have no driver.
type Sweeper struct {
	logger    *zap.SugaredLogger
	scheduler *gocron.Scheduler
	service   Service
}

func NewSweeper(service Service, cfg *config.Config, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (*Sweeper, error) {
	sweeper := &Sweeper{
		logger:    logger,
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
	}

	if _, err := sweeper.scheduler.Every(cfg.ReminderSweepEvery).Do(sweeper.Run); err != nil {
		return nil, err
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweeper.scheduler.StartAsync()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sweeper.scheduler.Stop()
			return nil
		},
	})

	return sweeper, nil
}

func (s *Sweeper) Run() {
	ctx := store.NewDbContext()
	if _, err := s.service.MarkMissed(ctx, time.Now()); err != nil {
		s.logger.Errorw("error sweeping overdue reminders", zap.Error(err))
	}
}
