package httpapi

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rz2606/lab-website-sub002/internal/logging"
	"github.com/rz2606/lab-website-sub002/internal/server/auth"
	"github.com/rz2606/lab-website-sub002/internal/server/config"
	"github.com/rz2606/lab-website-sub002/internal/server/install"
	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSecret = []byte("middleware-test-secret")

func guardedEngine(role string) *gin.Engine {
	return guardedEngineWithConfig(&config.Config{SecretKey: string(testSecret)}, role)
}

func guardedEngineWithConfig(cfg *config.Config, role string) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(cfg)}
	if role != "" {
		handlers = append(handlers, RequireRole(role))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims := claimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	r.GET("/protected", handlers...)
	return r
}

func signedToken(t *testing.T, role string, validity time.Duration) string {
	t.Helper()
	token, err := auth.GenerateToken(42, "alice", role, testSecret, validity)
	require.NoError(t, err)
	return token
}

func TestRequireAuth_MissingToken(t *testing.T) {
	t.Parallel()

	r := guardedEngine("")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"未提供认证token"}`, w.Body.String())
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	t.Parallel()

	r := guardedEngine("")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"无效或过期的token"}`, w.Body.String())
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	r := guardedEngine("")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, models.RoleAdmin, -time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"无效或过期的token"}`, w.Body.String())
}

func TestRequireAuth_ValidHeaderToken(t *testing.T) {
	t.Parallel()

	r := guardedEngine("")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, models.RoleUser, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"userId":42}`, w.Body.String())
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	t.Parallel()

	r := guardedEngine("")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signedToken(t, models.RoleUser, time.Hour)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_HeaderBeatsCookie(t *testing.T) {
	t.Parallel()

	r := guardedEngine("")

	// Valid cookie, broken header: the header wins, so the request fails.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer broken")
	req.AddCookie(&http.Cookie{Name: "token", Value: signedToken(t, models.RoleUser, time.Hour)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"无效或过期的token"}`, w.Body.String())
}

func TestRequireRole_Matrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		required string
		have     string
		want     int
	}{
		{name: "user hits admin route", required: models.RoleAdmin, have: models.RoleUser, want: http.StatusForbidden},
		{name: "admin hits admin route", required: models.RoleAdmin, have: models.RoleAdmin, want: http.StatusOK},
		{name: "admin overrides user route", required: models.RoleUser, have: models.RoleAdmin, want: http.StatusOK},
		{name: "user hits user route", required: models.RoleUser, have: models.RoleUser, want: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := guardedEngine(tc.required)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+signedToken(t, tc.have, time.Hour))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusForbidden {
				require.JSONEq(t, `{"error":"权限不足"}`, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_FollowsSecretRotation(t *testing.T) {
	t.Parallel()

	// Empty SecretKey means the built-in fallback is in effect, exactly the
	// state of a fresh deployment before the install wizard runs.
	cfg := &config.Config{}
	r := guardedEngineWithConfig(cfg, "")

	fallbackToken, err := auth.GenerateToken(42, "alice", models.RoleAdmin, []byte(config.DefaultSecretKey), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+fallbackToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The wizard generates a real secret mid-process. Fallback-signed tokens
	// must stop verifying immediately, without a restart.
	cfg.SecretKey = "freshly-generated-strong-secret"

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"无效或过期的token"}`, w.Body.String())

	rotatedToken, err := auth.GenerateToken(42, "alice", models.RoleAdmin, []byte(cfg.SecretKey), time.Hour)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+rotatedToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func gateEngine(t *testing.T, installed bool) *gin.Engine {
	t.Helper()

	dir := t.TempDir()
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	state := install.NewState(filepath.Join(dir, "install.lock"), filepath.Join(dir, ".env"), installed, logger)

	r := gin.New()
	r.Use(InstallGate(state))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/", ok)
	r.GET("/install", ok)
	r.GET("/dashboard", ok)
	r.GET("/healthz", ok)
	r.GET("/api/install/status", ok)
	r.POST("/api/awards", ok)
	return r
}

func TestInstallGate_RedirectMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		installed    bool
		method       string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{name: "uninstalled page traffic funnels to wizard", installed: false, method: http.MethodGet, path: "/dashboard", wantStatus: http.StatusFound, wantLocation: "/install"},
		{name: "uninstalled api traffic funnels to wizard", installed: false, method: http.MethodPost, path: "/api/awards", wantStatus: http.StatusFound, wantLocation: "/install"},
		{name: "uninstalled wizard page passes", installed: false, method: http.MethodGet, path: "/install", wantStatus: http.StatusOK},
		{name: "uninstalled install api passes", installed: false, method: http.MethodGet, path: "/api/install/status", wantStatus: http.StatusOK},
		{name: "uninstalled health check passes", installed: false, method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{name: "installed wizard page bounces home", installed: true, method: http.MethodGet, path: "/install", wantStatus: http.StatusFound, wantLocation: "/"},
		{name: "installed page traffic passes", installed: true, method: http.MethodGet, path: "/dashboard", wantStatus: http.StatusOK},
		{name: "installed install api stays routable", installed: true, method: http.MethodGet, path: "/api/install/status", wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gateEngine(t, tc.installed)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			require.Equal(t, tc.wantStatus, w.Code)
			if tc.wantLocation != "" {
				require.Equal(t, tc.wantLocation, w.Header().Get("Location"))
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.POST("/api/users/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/users/login", nil)
	req.Header.Set("Origin", "https://lab.example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_UnknownOriginGetsNoHeader(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(CORS([]string{"https://admin.lab.example.org"}))
	r.GET("/api/news", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
