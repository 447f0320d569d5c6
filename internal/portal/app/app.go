package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/mapacultural/fomenta/internal/portal/http"
	"github.com/mapacultural/fomenta/internal/portal/obs"
	"github.com/mapacultural/fomenta/internal/portal/service"
	"github.com/mapacultural/fomenta/internal/portal/store"
	"github.com/mapacultural/fomenta/internal/portal/store/drivers/sqlite"
	"github.com/mapacultural/fomenta/pkg/cryptox"
	"github.com/mapacultural/fomenta/pkg/jwtx"
	"github.com/mapacultural/fomenta/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the portal service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.HS256

	tenantService       *service.TenantService
	authService         *service.AuthService
	accountService      *service.AccountService
	resetService        *service.PasswordResetService
	proponentService    *service.ProponentService
	projectService      *service.ProjectService
	mfaService          *service.MFAService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "fomenta",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)
	obs.Init(BuildVersion)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	secret, err := loadOrGenerateSecret(cfg.TokenSecretFile)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("initializing token secret: %w", err)
	}
	app.signer, err = jwtx.NewHS256(secret, cfg.Issuer)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("initializing signer: %w", err)
	}

	app.initServices()

	if err := app.bootstrap(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("portal service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down portal service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("portal service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.tenantService = &service.TenantService{Store: app.db}
	app.authService = &service.AuthService{
		Store:  app.db,
		Signer: app.signer,
		Issuer: app.cfg.Issuer,
		TTL:    jwtx.DefaultAccessTokenTTL,
	}
	app.accountService = &service.AccountService{Store: app.db}
	app.resetService = &service.PasswordResetService{Store: app.db}
	app.proponentService = &service.ProponentService{Store: app.db}
	app.projectService = &service.ProjectService{Store: app.db}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.TenantService = app.tenantService
	router.AuthService = app.authService
	router.AccountService = app.accountService
	router.ResetService = app.resetService
	router.ProponentService = app.proponentService
	router.ProjectService = app.projectService
	router.MFAService = app.mfaService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
