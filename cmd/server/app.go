package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/greenrise/greenrise-api/internal/config"
	"github.com/greenrise/greenrise-api/internal/platform/imagestore"
	"github.com/greenrise/greenrise-api/internal/platform/postgres"
	"github.com/greenrise/greenrise-api/internal/service"
	"github.com/greenrise/greenrise-api/internal/service/auth"
	"github.com/greenrise/greenrise-api/internal/store"
)

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore      store.UserStore
	hortalicaStore store.HortalicaStore

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	images         imagestore.Store

	userService      service.UserService
	hortalicaService service.HortalicaService
}

// newApplication builds every store and service on top of an established
// database connection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.images, err = imagestore.New(ctx, cfg.Uploads)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}
	logger.Info("Image store initialized", "backend", cfg.Uploads.Backend)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.hortalicaStore = postgres.NewPostgresHortalicaStore(db, logger)

	app.userService, err = service.NewUserService(
		app.userStore,
		db,
		app.passwordHasher,
		app.jwtService,
		app.images,
		cfg.Uploads.DefaultImage,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.hortalicaService, err = service.NewHortalicaService(
		app.hortalicaStore,
		app.userStore,
		db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hortalica service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
