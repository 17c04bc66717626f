package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/marketplace-api/internal/config"
	"github.com/phrazzld/marketplace-api/internal/platform/telemetry"
	"github.com/phrazzld/marketplace-api/internal/service"
	"github.com/phrazzld/marketplace-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	stores    *stores

	jwtService     auth.JWTService
	userService    service.UserService
	productService service.ProductService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.telemetry, err = telemetry.New(ctx, cfg.Telemetry, logger.With("component", "telemetry"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	app.stores, err = openStores(ctx, cfg.Database, app.telemetry.Tracer(), logger)
	if err != nil {
		app.cleanup(ctx)
		return nil, err
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	passwords := auth.NewBcryptVerifier(cfg.Auth.BcryptCost)
	app.userService = service.NewUserService(app.stores.users, passwords, passwords, logger)

	app.productService, err = service.NewProductService(
		app.stores.products,
		app.stores.users,
		app.telemetry.Tracer(),
		app.telemetry.Meter(),
		logger,
	)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup releases the store connections and flushes telemetry.
func (app *application) cleanup(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.shutdownTimeout())
	defer cancel()

	var errs []error
	if app.stores != nil {
		if err := app.stores.close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown telemetry: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		app.logger.Error("application cleanup failed", "error", err)
		return
	}
	app.logger.Info("application shutdown completed")
}

func (app *application) shutdownTimeout() time.Duration {
	if app.config.Server.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
}
