package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/phrazzld/tasker-api/internal/janitor"
	"github.com/phrazzld/tasker-api/internal/platform/postgres"
	"github.com/phrazzld/tasker-api/internal/redact"
	"github.com/phrazzld/tasker-api/internal/service"
	"github.com/phrazzld/tasker-api/internal/service/auth"
	"github.com/phrazzld/tasker-api/internal/store"
)

// stores groups the persistence interfaces the application is built on.
type stores struct {
	users       store.UserStore
	categories  store.CategoryStore
	tasks       store.TaskStore
	revocations store.RevocationStore
}

// postgresStores returns the PostgreSQL implementation of every store.
func postgresStores(db store.DBTX, logger *slog.Logger) stores {
	return stores{
		users:       postgres.NewPostgresUserStore(db, logger),
		categories:  postgres.NewPostgresCategoryStore(db, logger),
		tasks:       postgres.NewPostgresTaskStore(db, logger),
		revocations: postgres.NewPostgresRevocationStore(db, logger),
	}
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	stores stores

	jwtService      auth.JWTService
	passwordHasher  auth.PasswordHasher
	authService     service.AuthService
	categoryService service.CategoryService
	taskService     service.TaskService

	janitor *janitor.Janitor
}

// newApplication creates the application on top of an open PostgreSQL pool.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	return assembleApplication(cfg, logger, db, postgresStores(db, logger))
}

// assembleApplication wires services and background jobs over the given
// stores. db may be nil when the stores do not need one.
func assembleApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, s stores) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		stores: s,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes)

	app.passwordHasher, err = auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.authService, err = service.NewAuthService(
		s.users,
		s.revocations,
		app.jwtService,
		app.passwordHasher,
		cfg.Auth.TokenLifetime(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	app.categoryService = service.NewCategoryService(s.categories, logger)
	app.taskService = service.NewTaskService(s.tasks, s.categories, logger)

	app.janitor, err = janitor.New(s.revocations, cfg.Auth.RevocationPurgeSchedule, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create revocation janitor: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the background jobs and the HTTP server and blocks until ctx
// is canceled or the server fails. Resources are released before it returns.
func (app *application) Run(ctx context.Context) error {
	app.janitor.Start()
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if app.janitor != nil {
		app.janitor.Stop(ctx)
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", redact.Error(err))
		}
	}
}
