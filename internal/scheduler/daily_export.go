package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/config"
	"github.com/therrabiz/therrabiz-api/internal/usecases/reporting"
)

// DailyExportService writes yesterday's sales report into the export
// directory every night, so the owner always has an offline CSV copy even if
// they never press the export button.
type DailyExportService struct {
	scheduler *gocron.Scheduler
	store     *storage.Store
	reporter  reporting.Reporter
	exportDir string
	config    config.DailyExport

	runMutex   sync.Mutex
	running    bool
	lastRunAt  time.Time
	lastRunErr error
}

func NewDailyExportService(store *storage.Store, reporter reporting.Reporter, cfg *config.Config) *DailyExportService {
	return &DailyExportService{
		scheduler: gocron.NewScheduler(time.Local),
		store:     store,
		reporter:  reporter,
		exportDir: cfg.Storage.ExportDir,
		config:    cfg.DailyExport,
	}
}

func (s *DailyExportService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("daily export job disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("starting daily export job")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Run(); err != nil {
			logrus.WithError(err).Error("daily report export failed")
		}
	})
	if err != nil {
		return errors.Wrap(err, "scheduling daily export")
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping daily export job")
		s.scheduler.Stop()
	}()

	return nil
}

// ExportStatus describes the last export run.
type ExportStatus struct {
	Running   bool      `json:"running"`
	LastRunAt time.Time `json:"lastRunAt"`
	LastError string    `json:"lastError,omitempty"`
}

// Status reports whether an export is in flight and how the last run ended.
func (s *DailyExportService) Status() ExportStatus {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	status := ExportStatus{
		Running:   s.running,
		LastRunAt: s.lastRunAt,
	}
	if s.lastRunErr != nil {
		status.LastError = s.lastRunErr.Error()
	}
	return status
}

// Run exports the current sales list once. Safe to trigger manually.
func (s *DailyExportService) Run() error {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Warn("daily export already running")
		return nil
	}
	s.running = true
	s.runMutex.Unlock()

	err := s.export()

	s.runMutex.Lock()
	s.running = false
	s.lastRunAt = time.Now()
	s.lastRunErr = err
	s.runMutex.Unlock()

	return err
}

func (s *DailyExportService) export() error {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating export directory %s", s.exportDir)
	}

	report := s.reporter.SalesCSV(s.store.Sales())
	path := filepath.Join(s.exportDir, s.reporter.Filename(time.Now()))

	if err := os.WriteFile(path, report, 0o644); err != nil {
		return errors.Wrapf(err, "writing report %s", path)
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(report),
	}).Info("daily sales report exported")
	return nil
}
