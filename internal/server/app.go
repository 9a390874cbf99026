// Package server initializes and runs the lab website application server:
// it wires configuration, the installation state, the database handle, the
// services, and the HTTP API, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rz2606/lab-website-sub002/internal/dbx"
	"github.com/rz2606/lab-website-sub002/internal/logging"
	"github.com/rz2606/lab-website-sub002/internal/server/config"
	"github.com/rz2606/lab-website-sub002/internal/server/httpapi"
	"github.com/rz2606/lab-website-sub002/internal/server/install"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/repomanager"
	"github.com/rz2606/lab-website-sub002/internal/server/services"
)

// Version is stamped into the install marker. Overridable at build time via
// -ldflags "-X ...server.Version=".
var Version = "1.0.0"

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	holder *dbx.Holder
	state  *install.State
	api    *httpapi.API
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	state := install.NewState(cfg.MarkerPath, cfg.EnvPath, cfg.Installed, logger)

	// On a fresh deployment there is no DSN yet; the handle attaches later,
	// mid-wizard, through the holder.
	holder := &dbx.Holder{}
	if cfg.DatabaseDSN != "" {
		db, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		holder.Set(db)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	users := services.NewUserService(holder, repos, cfg, logger)
	uploads := services.NewUploadService(cfg)
	installer := install.NewInstaller(cfg, state, repos, holder, logger, Version)
	api := httpapi.New(cfg, logger, holder, repos, users, uploads, installer, state, Version)

	return &App{
		config: cfg,
		logger: logger,
		holder: holder,
		state:  state,
		api:    api,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "version", Version, "addr", app.config.EndpointAddrHTTP)

	if _, fallback := app.config.EffectiveSecret(); fallback {
		app.logger.Warn(ctx, "JWT secret not configured, signing tokens with the built-in fallback; set JWT_SECRET or complete the install wizard")
	}
	if !app.state.Installed() {
		app.logger.Info(ctx, "deployment not installed, serving the install wizard")
	}

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}

	if db := app.holder.Get(); db != nil {
		_ = db.Close()
	}

	app.logger.Info(ctx, "app stopped")
	return nil
}
