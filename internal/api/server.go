package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/api/handler"
	"github.com/therrabiz/therrabiz-api/internal/api/handler/router"
	"github.com/therrabiz/therrabiz-api/internal/config"
	"github.com/therrabiz/therrabiz-api/internal/scheduler"
	"github.com/therrabiz/therrabiz-api/internal/usecases/advising"
	"github.com/therrabiz/therrabiz-api/internal/usecases/authenticating"
	"github.com/therrabiz/therrabiz-api/internal/usecases/calculating"
	"github.com/therrabiz/therrabiz-api/internal/usecases/insighting"
	"github.com/therrabiz/therrabiz-api/internal/usecases/reporting"
	"github.com/therrabiz/therrabiz-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	store *storage.Store,
	insightService insighting.Insighter,
	advisorService advising.Advisor,
	reporterService reporting.Reporter,
	calculatorService calculating.Calculator,
	authenticator authenticating.Authenticator,
	dailyExportService *scheduler.DailyExportService,
	quotaResetService *scheduler.QuotaResetService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		DailyExportService: dailyExportService,
		QuotaResetService:  quotaResetService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Sales(store, reporterService)...),
		router.WithRoutes(handler.Expenses(store)...),
		router.WithRoutes(handler.Goals(store)...),
		router.WithRoutes(handler.Tasks(store)...),
		router.WithRoutes(handler.Inventory(store)...),
		router.WithRoutes(handler.Profile(store)...),
		router.WithRoutes(handler.Analytics(insightService)...),
		router.WithRoutes(handler.Calculator(calculatorService)...),
		router.WithRoutes(handler.Assistant(advisorService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("error while serving")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during shutdown")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("http server stopped")
	return nil
}
