// Package main runs the Estação Zen oracle API: tarot draws with a weekly
// quota per membership plan, served over HTTP from a Postgres store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/zen-api/internal/config"
	"github.com/phrazzld/zen-api/internal/platform/logger"
	"github.com/phrazzld/zen-api/internal/platform/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./config.yaml when present)")
	migrate := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *migrate); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"quota_strict", cfg.Quota.Strict,
		"quota_timezone", cfg.Quota.Timezone,
		"quota_week_start", cfg.Quota.WeekStart)

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDB(db, log)
		log.Info("Executing migrations", "command", migrateCmd)
		return postgres.Migrate(ctx, db, migrateCmd, log)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
