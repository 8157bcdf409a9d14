package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/segyhp/debt-tracker/internal/config"
	"github.com/segyhp/debt-tracker/internal/database"
	"github.com/segyhp/debt-tracker/internal/logger"
)

// Usage: migrate [-down]
func main() {
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.Logging)

	run, direction := database.RunMigrations, "up"
	if *down {
		run, direction = database.RunMigrationsDown, "down"
	}

	if err := run(cfg.Database.DSN(), cfg.Database.MigrationsPath); err != nil {
		log.Error("migration failed", "direction", direction, "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "direction", direction, "source", cfg.Database.MigrationsPath)
}
