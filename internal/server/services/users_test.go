package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rz2606/lab-website-sub002/internal/common"
	"github.com/rz2606/lab-website-sub002/internal/dbx"
	"github.com/rz2606/lab-website-sub002/internal/logging"
	"github.com/rz2606/lab-website-sub002/internal/server/auth"
	"github.com/rz2606/lab-website-sub002/internal/server/config"
	"github.com/rz2606/lab-website-sub002/internal/server/models"
	awardsrepo "github.com/rz2606/lab-website-sub002/internal/server/repositories/awards"
	membersrepo "github.com/rz2606/lab-website-sub002/internal/server/repositories/members"
	newsrepo "github.com/rz2606/lab-website-sub002/internal/server/repositories/news"
	pubsrepo "github.com/rz2606/lab-website-sub002/internal/server/repositories/publications"
	toolsrepo "github.com/rz2606/lab-website-sub002/internal/server/repositories/tools"
	usersrepo "github.com/rz2606/lab-website-sub002/internal/server/repositories/users"
)

// --- helpers ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	touchCalls int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) List(ctx context.Context, p models.ListParams) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return nil
}

func (f *fakeUsersRepo) TouchLastLogin(ctx context.Context, id int64) error {
	f.touchCalls++
	return nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository              { return m.u }
func (m *fakeRepoManager) News(db dbx.DBTX) newsrepo.Repository                { return nil }
func (m *fakeRepoManager) Publications(db dbx.DBTX) pubsrepo.Repository        { return nil }
func (m *fakeRepoManager) Tools(db dbx.DBTX) toolsrepo.Repository              { return nil }
func (m *fakeRepoManager) Members(db dbx.DBTX) membersrepo.Repository          { return nil }
func (m *fakeRepoManager) Awards(db dbx.DBTX) awardsrepo.Repository            { return nil }

func newTestService(t *testing.T, repo *fakeUsersRepo) *UserService {
	t.Helper()
	return newTestServiceWithConfig(t, repo, &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	})
}

func newTestServiceWithConfig(t *testing.T, repo *fakeUsersRepo, cfg *config.Config) *UserService {
	t.Helper()

	// sql.Open does not dial; the fakes never touch the handle.
	db, err := sql.Open("pgx", "postgres://localhost/unused")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	holder := &dbx.Holder{}
	holder.Set(db)

	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return NewUserService(holder, &fakeRepoManager{u: repo}, cfg, logger)
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:           7,
		Username:     "alice",
		Email:        "alice@lab.example.org",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{getOut: activeUser(t, "correct-password")}
	s := newTestService(t, repo)

	user, token, err := s.Login(context.Background(), "alice", "correct-password")
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.NotEmpty(t, token)
	require.Equal(t, 1, repo.touchCalls)

	claims, err := auth.ParseToken(token, []byte("k"))
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{getOut: activeUser(t, "correct-password")}
	s := newTestService(t, repo)

	_, _, err := s.Login(context.Background(), "alice", "wrong-password")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{getErr: common.ErrNotFound}
	s := newTestService(t, repo)

	_, _, err := s.Login(context.Background(), "nobody", "whatever")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLogin_DisabledAccountRejectedEvenWithCorrectPassword(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "correct-password")
	user.IsActive = false
	repo := &fakeUsersRepo{getOut: user}
	s := newTestService(t, repo)

	_, _, err := s.Login(context.Background(), "alice", "correct-password")
	require.ErrorIs(t, err, common.ErrUnauthorized)
	require.Zero(t, repo.touchCalls)
}

func TestLogin_UsesSecretGeneratedDuringInstall(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{getOut: activeUser(t, "correct-password")}

	// Service constructed while the fallback secret is still in effect.
	cfg := &config.Config{TokenValidityDuration: time.Hour}
	s := newTestServiceWithConfig(t, repo, cfg)

	// The install wizard generates and sets a real secret mid-process.
	cfg.SecretKey = "freshly-generated-strong-secret"

	_, token, err := s.Login(context.Background(), "alice", "correct-password")
	require.NoError(t, err)

	_, err = auth.ParseToken(token, []byte(config.DefaultSecretKey))
	require.Error(t, err, "post-install tokens must not verify against the public fallback secret")

	claims, err := auth.ParseToken(token, []byte(cfg.SecretKey))
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
}

func TestLogin_RepositoryFailureIsInternal(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{getErr: errors.New("connection refused")}
	s := newTestService(t, repo)

	_, _, err := s.Login(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, common.ErrInternal)
}

func TestLogin_NoDatabaseAttached(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour}
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	s := NewUserService(&dbx.Holder{}, &fakeRepoManager{u: &fakeUsersRepo{}}, cfg, logger)

	_, _, err := s.Login(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, common.ErrNotInstalled)
}

// --- Create / Update ---

func TestCreate_Validation(t *testing.T) {
	t.Parallel()

	s := newTestService(t, &fakeUsersRepo{})

	tests := []struct {
		name string
		p    CreateParams
	}{
		{name: "missing username", p: CreateParams{Email: "a@b.c", Password: "long-enough"}},
		{name: "missing email", p: CreateParams{Username: "bob", Password: "long-enough"}},
		{name: "short password", p: CreateParams{Username: "bob", Email: "a@b.c", Password: "short"}},
		{name: "bogus role", p: CreateParams{Username: "bob", Email: "a@b.c", Password: "long-enough", Role: "superuser"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tc.p)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestCreate_DefaultsToUserRoleAndHashesPassword(t *testing.T) {
	t.Parallel()

	s := newTestService(t, &fakeUsersRepo{})

	user, err := s.Create(context.Background(), CreateParams{
		Username: "bob",
		Email:    "bob@lab.example.org",
		Password: "long-enough",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, user.Role)
	require.True(t, user.IsActive)
	require.NotEqual(t, "long-enough", user.PasswordHash)
	require.True(t, auth.CheckPassword("long-enough", user.PasswordHash))
}

func TestCreate_DuplicateUsernamePropagates(t *testing.T) {
	t.Parallel()

	s := newTestService(t, &fakeUsersRepo{createErr: common.ErrAlreadyExists})

	_, err := s.Create(context.Background(), CreateParams{
		Username: "bob",
		Email:    "bob@lab.example.org",
		Password: "long-enough",
	})
	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestUpdate_ValidationBeforeWrite(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{getOut: activeUser(t, "pw-original")}
	s := newTestService(t, repo)

	empty := "  "
	_, err := s.Update(context.Background(), 7, UpdateParams{Email: &empty})
	require.ErrorIs(t, err, common.ErrValidation)

	short := "short"
	_, err = s.Update(context.Background(), 7, UpdateParams{Password: &short})
	require.ErrorIs(t, err, common.ErrValidation)

	bogus := "root"
	_, err = s.Update(context.Background(), 7, UpdateParams{Role: &bogus})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdate_MissingUser(t *testing.T) {
	t.Parallel()

	repo := &fakeUsersRepo{getErr: common.ErrNotFound}
	s := newTestService(t, repo)

	name := "New Name"
	_, err := s.Update(context.Background(), 404, UpdateParams{Name: &name})
	require.ErrorIs(t, err, common.ErrNotFound)
}
