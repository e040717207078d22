package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/therrabiz/therrabiz-api/infrastructure/integrator/openrouter"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/api"
	"github.com/therrabiz/therrabiz-api/internal/config"
	"github.com/therrabiz/therrabiz-api/internal/scheduler"
	"github.com/therrabiz/therrabiz-api/internal/usecases/advising"
	"github.com/therrabiz/therrabiz-api/internal/usecases/authenticating"
	"github.com/therrabiz/therrabiz-api/internal/usecases/calculating"
	"github.com/therrabiz/therrabiz-api/internal/usecases/insighting"
	"github.com/therrabiz/therrabiz-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level: %s, falling back to 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := storage.NewBus()

	store, err := storage.New(cfg.Storage.DataDir, bus)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open data directory")
	}

	// The watcher turns external edits of the data files into change
	// notifications, the same path store mutations take.
	watcher, err := storage.NewWatcher(store, bus)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create storage watcher")
	}
	if err := watcher.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start storage watcher")
	}

	authenticator := authenticating.NewService(store, cfg)
	insightService := insighting.NewService(store)
	reporterService := reporting.NewService()
	calculatorService := calculating.NewService()

	openRouterClient := openrouter.NewClient(cfg)
	advisorService := advising.NewService(openRouterClient, store, cfg)

	quotaResetService := scheduler.NewQuotaResetService(store, cfg)
	dailyExportService := scheduler.NewDailyExportService(store, reporterService, cfg)

	if err := quotaResetService.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start quota reset job")
	}

	if err := dailyExportService.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start daily export job")
	}

	server, err := api.New(
		cfg,
		store,
		insightService,
		advisorService,
		reporterService,
		calculatorService,
		authenticator,
		dailyExportService,
		quotaResetService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger sets the log format and anchors the working directory so
// relative data paths resolve next to the binary's source during local runs.
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
