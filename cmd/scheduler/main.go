package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segyhp/debt-tracker/internal/config"
	"github.com/segyhp/debt-tracker/internal/database"
	"github.com/segyhp/debt-tracker/internal/logger"
	"github.com/segyhp/debt-tracker/internal/metrics"
	"github.com/segyhp/debt-tracker/internal/repository"
	"github.com/segyhp/debt-tracker/internal/service"

	"github.com/robfig/cron/v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.Logging)
	log.Info("starting reminder scheduler")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reminders := service.NewReminderService(
		repository.NewDebtRepository(db),
		repository.NewActivityRepository(db),
		metrics.New(reg),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cronLog := cronLogger{log}
	c := cron.New(
		cron.WithLocation(cfg.GetSchedulerLocation()),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	if err := setupCronJobs(ctx, c, cfg, reminders); err != nil {
		log.Error("failed to schedule jobs", "error", err)
		os.Exit(1)
	}

	c.Start()
	log.Info("scheduler started", "reminder_spec", cfg.Scheduler.ReminderSpec, "timezone", cfg.Scheduler.Timezone)

	metricsServer := &http.Server{
		Addr:              cfg.Scheduler.MetricsAddr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down scheduler")
	cancel()
	<-c.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	_ = metricsServer.Shutdown(shutdownCtx)

	log.Info("scheduler stopped")
}

func setupCronJobs(ctx context.Context, c *cron.Cron, cfg *config.Config, reminders *service.ReminderService) error {
	// Daily sweep for interest payments falling due or overdue
	_, err := c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		if _, err := reminders.Sweep(ctx); err != nil {
			slog.ErrorContext(ctx, "reminder sweep failed", "error", err)
		}
	})
	return err
}

// cronLogger routes cron's internal logging through slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
