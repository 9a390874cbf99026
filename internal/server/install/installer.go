package install

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rz2606/lab-website-sub002/internal/common"
	"github.com/rz2606/lab-website-sub002/internal/dbx"
	"github.com/rz2606/lab-website-sub002/internal/logging"
	"github.com/rz2606/lab-website-sub002/internal/server/auth"
	"github.com/rz2606/lab-website-sub002/internal/server/config"
	"github.com/rz2606/lab-website-sub002/internal/server/models"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/repomanager"
)

const pingTimeout = 5 * time.Second

// Installer executes the first-run wizard steps. Every step refuses to run
// once the deployment is installed; Complete fires the one-way state
// transition.
type Installer struct {
	cfg         *config.Config
	state       *State
	repomanager repomanager.RepositoryManager
	holder      *dbx.Holder
	logger      logging.Logger
	version     string
}

func NewInstaller(cfg *config.Config, state *State, m repomanager.RepositoryManager, holder *dbx.Holder, logger logging.Logger, version string) *Installer {
	return &Installer{
		cfg:         cfg,
		state:       state,
		repomanager: m,
		holder:      holder,
		logger:      logger.With("component", "installer"),
		version:     version,
	}
}

func (i *Installer) guard() error {
	if i.state.Installed() {
		return common.ErrAlreadyInstalled
	}
	return nil
}

func openAndPing(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}

// TestDatabase verifies the DSN is reachable without persisting anything.
func (i *Installer) TestDatabase(ctx context.Context, dsn string) error {
	if err := i.guard(); err != nil {
		return err
	}
	if strings.TrimSpace(dsn) == "" {
		return common.ErrValidation
	}

	db, err := openAndPing(ctx, dsn)
	if err != nil {
		return err
	}
	return db.Close()
}

// SaveDatabase verifies the DSN, persists it (plus a freshly generated JWT
// secret when none is configured) to the env file, and attaches the handle
// for the remaining steps.
func (i *Installer) SaveDatabase(ctx context.Context, dsn string) error {
	if err := i.guard(); err != nil {
		return err
	}
	if strings.TrimSpace(dsn) == "" {
		return common.ErrValidation
	}

	db, err := openAndPing(ctx, dsn)
	if err != nil {
		return err
	}

	vars := map[string]string{config.EnvDatabaseDSN: dsn}
	if i.cfg.SecretKey == "" {
		secret, err := common.MakeRandHexString(32)
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("generate secret: %w", err)
		}
		vars[config.EnvSecretKey] = secret
		i.cfg.SecretKey = secret
		i.logger.Info(ctx, "generated JWT secret during install")
	}

	if err := upsertEnv(i.cfg.EnvPath, vars); err != nil {
		_ = db.Close()
		return fmt.Errorf("write env file: %w", err)
	}

	i.cfg.DatabaseDSN = dsn
	if old := i.holder.Get(); old != nil {
		_ = old.Close()
	}
	i.holder.Set(db)

	i.logger.Info(ctx, "database configured")
	return nil
}

// ApplySchema pushes the embedded schema migrations onto the configured
// database.
func (i *Installer) ApplySchema(ctx context.Context) error {
	if err := i.guard(); err != nil {
		return err
	}

	db := i.holder.Get()
	if db == nil {
		return common.ErrValidation
	}

	if err := i.repomanager.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	i.logger.Info(ctx, "schema applied")
	return nil
}

// CreateAdmin creates the initial administrator account.
func (i *Installer) CreateAdmin(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := i.guard(); err != nil {
		return nil, err
	}

	db := i.holder.Get()
	if db == nil {
		return nil, common.ErrValidation
	}
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || len(password) < 8 {
		return nil, common.ErrValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Name:         strings.TrimSpace(username),
		IsActive:     true,
	}

	user, err = i.repomanager.Users(db).Create(ctx, user)
	if err != nil {
		return nil, err
	}

	i.logger.Info(ctx, "admin account created", "username", user.Username)
	return user, nil
}

// Complete fires the NOT_INSTALLED -> INSTALLED transition. It requires a
// configured database so a half-finished wizard cannot mark the site
// installed.
func (i *Installer) Complete(ctx context.Context) error {
	if err := i.guard(); err != nil {
		return err
	}

	if i.holder.Get() == nil {
		return common.ErrValidation
	}

	i.state.MarkInstalled(ctx, i.version)
	i.logger.Info(ctx, "installation completed", "version", i.version)
	return nil
}
