package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rz2606/lab-website-sub002/internal/common"
	"github.com/rz2606/lab-website-sub002/internal/dbx"
	"github.com/rz2606/lab-website-sub002/internal/logging"
	"github.com/rz2606/lab-website-sub002/internal/server/auth"
	"github.com/rz2606/lab-website-sub002/internal/server/config"
	"github.com/rz2606/lab-website-sub002/internal/server/models"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/repomanager"
)

// UserService owns account lifecycle and login. Authentication failures
// never reveal whether the username exists, the password was wrong, or the
// account is disabled: they all collapse to common.ErrUnauthorized.
type UserService struct {
	holder      *dbx.Holder
	repomanager repomanager.RepositoryManager
	cfg         *config.Config
	logger      logging.Logger
}

func NewUserService(holder *dbx.Holder, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		holder:      holder,
		repomanager: m,
		cfg:         cfg,
		logger:      logger.With("component", "users"),
	}
}

// Login verifies credentials and issues a session token. Disabled accounts
// fail even with a correct password.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	db := s.holder.Get()
	if db == nil {
		return nil, "", common.ErrNotInstalled
	}

	repo := s.repomanager.Users(db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, "", common.ErrInternal
	}

	if !user.IsActive {
		return nil, "", common.ErrUnauthorized
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrUnauthorized
	}

	// Resolved per call: the install wizard swaps the fallback secret for a
	// generated one mid-process, and tokens issued afterwards must use it.
	secret, _ := s.cfg.EffectiveSecret()

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role, secret, s.cfg.TokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		return nil, "", common.ErrInternal
	}

	if err := repo.TouchLastLogin(ctx, user.ID); err != nil {
		// Best-effort bookkeeping; the login itself already succeeded.
		s.logger.Warn(ctx, "cannot update last login timestamp", "error", err)
	}

	return user, token, nil
}

// GetByID returns a single account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	db := s.holder.Get()
	if db == nil {
		return nil, common.ErrNotInstalled
	}
	return s.repomanager.Users(db).GetByID(ctx, id)
}

// List returns a page of accounts.
func (s *UserService) List(ctx context.Context, p models.ListParams) ([]models.User, int64, error) {
	db := s.holder.Get()
	if db == nil {
		return nil, 0, common.ErrNotInstalled
	}
	return s.repomanager.Users(db).List(ctx, p)
}

// CreateParams carries the fields accepted when creating an account.
type CreateParams struct {
	Username string
	Email    string
	Password string
	Role     string
	Name     string
	Avatar   string
}

// Create validates and stores a new account.
func (s *UserService) Create(ctx context.Context, p CreateParams) (*models.User, error) {
	db := s.holder.Get()
	if db == nil {
		return nil, common.ErrNotInstalled
	}

	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	if p.Username == "" || p.Email == "" || len(p.Password) < 8 {
		return nil, common.ErrValidation
	}
	if p.Role == "" {
		p.Role = models.RoleUser
	}
	if p.Role != models.RoleAdmin && p.Role != models.RoleUser {
		return nil, common.ErrValidation
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         p.Role,
		Name:         p.Name,
		Avatar:       p.Avatar,
		IsActive:     true,
	}

	return s.repomanager.Users(db).Create(ctx, user)
}

// UpdateParams carries the mutable account fields. Nil pointers mean
// "leave unchanged".
type UpdateParams struct {
	Email    *string
	Role     *string
	Name     *string
	Avatar   *string
	IsActive *bool
	Password *string
}

// Update applies the given changes to an existing account. A password
// change and the profile update happen in one transaction.
func (s *UserService) Update(ctx context.Context, id int64, p UpdateParams) (*models.User, error) {
	db := s.holder.Get()
	if db == nil {
		return nil, common.ErrNotInstalled
	}

	user, err := s.repomanager.Users(db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Email != nil {
		if strings.TrimSpace(*p.Email) == "" {
			return nil, common.ErrValidation
		}
		user.Email = strings.TrimSpace(*p.Email)
	}
	if p.Role != nil {
		if *p.Role != models.RoleAdmin && *p.Role != models.RoleUser {
			return nil, common.ErrValidation
		}
		user.Role = *p.Role
	}
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Avatar != nil {
		user.Avatar = *p.Avatar
	}
	if p.IsActive != nil {
		user.IsActive = *p.IsActive
	}

	var passwordHash string
	if p.Password != nil {
		if len(*p.Password) < 8 {
			return nil, common.ErrValidation
		}
		passwordHash, err = auth.HashPassword(*p.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if err := repo.Update(ctx, user); err != nil {
			return err
		}
		if passwordHash != "" {
			return repo.UpdatePassword(ctx, id, passwordHash)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	db := s.holder.Get()
	if db == nil {
		return common.ErrNotInstalled
	}
	return s.repomanager.Users(db).Delete(ctx, id)
}
