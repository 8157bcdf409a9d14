package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/debt-tracker/internal/cache"
	"github.com/segyhp/debt-tracker/internal/config"
	"github.com/segyhp/debt-tracker/internal/database"
	"github.com/segyhp/debt-tracker/internal/handler"
	"github.com/segyhp/debt-tracker/internal/logger"
	"github.com/segyhp/debt-tracker/internal/metrics"
	"github.com/segyhp/debt-tracker/internal/middleware"
	"github.com/segyhp/debt-tracker/internal/repository"
	"github.com/segyhp/debt-tracker/internal/service"
	"github.com/segyhp/debt-tracker/pkg/currency"
	"github.com/segyhp/debt-tracker/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)

	// Initialize database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(cfg.Database.DSN(), cfg.Database.MigrationsPath); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// Initialize Redis when the dashboard cache is enabled
	summaryCache := cache.NewNopSummaryCache()
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewClient(cfg.Redis)
		if err != nil {
			slog.Error("failed to initialize redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		summaryCache = cache.NewRedisSummaryCache(redisClient, cfg.Cache.DashboardTTL)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize repositories
	contactRepo := repository.NewContactRepository(db)
	debtRepo := repository.NewDebtRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Initialize services
	profileService := service.NewProfileService(profileRepo, currency.MustFormatter(cfg.Business.DefaultCurrency))
	contactService := service.NewContactService(contactRepo, debtRepo, summaryCache)
	debtService := service.NewDebtService(debtRepo, contactRepo, activityRepo, profileService, summaryCache, m, cfg.GetAccrualPolicy())
	dashboardService := service.NewDashboardService(contactRepo, debtRepo, activityRepo, summaryCache, m, service.DashboardLimits{
		Recent:   cfg.Business.RecentLimit,
		Upcoming: cfg.Business.UpcomingLimit,
	})
	transactionService := service.NewTransactionService(debtRepo, activityRepo)

	// Setup routes
	v := handler.NewValidator()
	router := handler.NewRouter(handler.Handlers{
		Health:       handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout()),
		Profile:      handler.NewProfileHandler(profileService, v),
		Contacts:     handler.NewContactHandler(contactService, v),
		Debts:        handler.NewDebtHandler(debtService, v),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Transactions: handler.NewTransactionHandler(transactionService),
	}, middleware.NewAuthenticator(cfg.Auth), m, reg)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.CORSMiddleware(response.LoggingMiddleware(router)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return
	}

	slog.Info("server exited")
}
