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

	httpapi "github.com/hogarcare/hogar/internal/auth/http"
	"github.com/hogarcare/hogar/internal/auth/notify"
	"github.com/hogarcare/hogar/internal/auth/service"
	"github.com/hogarcare/hogar/internal/auth/store"
	"github.com/hogarcare/hogar/internal/auth/store/drivers/sqlite"
	"github.com/hogarcare/hogar/pkg/cryptox"
	"github.com/hogarcare/hogar/pkg/jwtx"
	"github.com/hogarcare/hogar/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   *jwtx.Signer
	verifier *jwtx.Verifier

	authService        *service.AuthService
	twoFactorService   *service.TwoFactorService
	resetService       *service.PasswordResetService
	sessionService     *service.SessionService
	maintenanceService *service.MaintenanceService
	bootstrapService   *service.BootstrapService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)
	if cfg.Argon2MemoryKiB > 0 && cfg.Argon2Iterations > 0 && cfg.Argon2Parallelism > 0 {
		cryptox.SetCost(cfg.Argon2MemoryKiB, cfg.Argon2Iterations, cfg.Argon2Parallelism)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, verifier, err := initSigningKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.signer = signer
	app.verifier = verifier

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
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

// initServices initializes all business logic services.
func (app *Application) initServices() {
	audit := &service.StoreAuditSink{Store: app.db}

	var notifier service.Notifier
	if app.cfg.AMQPURL != "" {
		notifier = notify.NewAMQPNotifier(app.cfg.AMQPURL)
		app.logger.Info("reset codes will be queued to RabbitMQ")
	} else {
		notifier = notify.LogNotifier{}
		app.logger.Warn("AMQP_URL not set, reset codes are only logged")
	}

	app.twoFactorService = service.NewTwoFactorService(app.db, audit, app.cfg.Issuer)

	app.authService = service.NewAuthService(
		app.db, app.signer, app.verifier, app.twoFactorService, audit,
		service.AuthConfig{
			Issuer:       app.cfg.Issuer,
			AccessTTL:    app.cfg.AccessTokenTTL,
			RefreshTTL:   app.cfg.RefreshTokenTTL,
			ChallengeTTL: app.cfg.ChallengeTokenTTL,
		},
	)

	app.resetService = service.NewPasswordResetService(app.db, notifier, audit, app.cfg.ResetTokenTTL)
	app.sessionService = service.NewSessionService(app.db, app.verifier, audit, app.cfg.SuspiciousSessions)
	app.maintenanceService = service.NewMaintenanceService(app.db, audit, app.cfg.AttemptRetention)
	app.bootstrapService = service.NewBootstrapService(app.db, audit, app.cfg.BootstrapToken)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.signer, BuildVersion, app.db, app.logger)

	router.AuthService = app.authService
	router.TwoFactorService = app.twoFactorService
	router.ResetService = app.resetService
	router.SessionService = app.sessionService
	router.MaintenanceService = app.maintenanceService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
