// Package scheduler contains the background jobs of the dashboard.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/config"
)

// QuotaResetService zeroes the assistant message tracker at midnight. The
// tracker also self-resets lazily on the first call of a new day; the job
// just keeps the quota endpoint honest overnight.
type QuotaResetService struct {
	scheduler *gocron.Scheduler
	store     *storage.Store
	config    config.QuotaReset
}

func NewQuotaResetService(store *storage.Store, cfg *config.Config) *QuotaResetService {
	return &QuotaResetService{
		scheduler: gocron.NewScheduler(time.Local),
		store:     store,
		config:    cfg.QuotaReset,
	}
}

func (s *QuotaResetService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("quota reset job disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("starting quota reset job")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(s.Run)
	if err != nil {
		return errors.Wrap(err, "scheduling quota reset")
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping quota reset job")
		s.scheduler.Stop()
	}()

	return nil
}

// Run resets the tracker immediately. Safe to trigger manually.
func (s *QuotaResetService) Run() {
	s.store.ResetMessageTracker()
	logrus.Info("assistant message quota reset")
}
