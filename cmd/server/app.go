package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/zen-api/internal/config"
	"github.com/phrazzld/zen-api/internal/domain/oracle"
	"github.com/phrazzld/zen-api/internal/platform/postgres"
	"github.com/phrazzld/zen-api/internal/service"
	"github.com/phrazzld/zen-api/internal/service/auth"
	"github.com/phrazzld/zen-api/internal/store"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	readingStore store.ReadingStore

	deck   *oracle.Deck
	policy oracle.QuotaPolicy

	jwtService     auth.JWTService
	userService    service.UserService
	readingService service.ReadingService
}

// newApplication wires stores, services and the oracle from cfg. When an
// admin password is configured the admin account is seeded.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		deck:   oracle.NewDeck(nil),
		policy: oracle.DefaultQuotaPolicy(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	calendar, err := oracle.NewWeekCalendar(cfg.Quota.Timezone, cfg.Quota.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to build quota calendar: %w", err)
	}

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost)
	app.readingStore = postgres.NewPostgresReadingStore(db, logger)

	app.userService = service.NewUserService(app.userStore, auth.NewBcryptVerifier(), db, logger)
	app.readingService, err = service.NewReadingService(
		app.userStore,
		app.readingStore,
		db,
		app.deck,
		service.ReadingServiceConfig{
			Policy:   app.policy,
			Calendar: calendar,
			Strict:   cfg.Quota.Strict,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reading service: %w", err)
	}

	if cfg.Auth.AdminPassword != "" {
		admin, err := app.userService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to seed admin account: %w", err)
		}
		logger.Info("Admin account ready", "user_id", admin.ID)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("Application shutdown completed")
}
