package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/platefull/backend/config"
	"github.com/platefull/backend/internal/database"
	"github.com/platefull/backend/internal/logging"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "directory containing the SQL migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.LogLevel); err != nil {
		slog.Error("failed to set up logging", "err", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(db, *migrationsDir); err != nil {
		slog.Error("migration failed", "err", err)
		os.Exit(1)
	}

	slog.Info("all migrations applied")
}
