package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/logging"
	"github.com/rz2606/lab-website-sub002/internal/server/auth"
	"github.com/rz2606/lab-website-sub002/internal/server/config"
	"github.com/rz2606/lab-website-sub002/internal/server/install"
	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

const claimsKey = "authClaims"

// User-facing auth errors stay in Chinese; the dashboard frontend displays
// them verbatim.
const (
	msgNoToken   = "未提供认证token"
	msgBadToken  = "无效或过期的token"
	msgForbidden = "权限不足"
)

// RequireAuth rejects requests without a valid session token and stores the
// parsed claims in the request context. Token lookup order (Bearer header,
// then cookie) is decided by auth.ExtractToken. The signing secret is
// resolved per request: the install wizard replaces the fallback secret in
// the shared config mid-process, and verification must follow it without a
// restart.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.ExtractToken(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgNoToken})
			return
		}

		secret, _ := cfg.EffectiveSecret()
		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgBadToken})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole enforces a role after RequireAuth. Admins pass every check.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgNoToken})
			return
		}
		if claims.Role != role && claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgForbidden})
			return
		}
		c.Next()
	}
}

// claimsFrom returns the claims stored by RequireAuth, or nil.
func claimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// Paths reachable before the installation completes. Prefix match.
var installWhitelist = []string{
	"/install",
	"/api/install",
	"/static",
	"/images",
	"/icons",
	"/assets",
	"/favicon.ico",
	"/healthz",
}

func whitelisted(path string) bool {
	for _, prefix := range installWhitelist {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// InstallGate funnels traffic into the first-run wizard until the deployment
// is installed, and keeps the wizard page unreachable afterwards. The API
// install endpoints stay routable when installed so they can answer 409.
func InstallGate(state *install.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if !state.Installed() {
			if !whitelisted(path) {
				c.Redirect(http.StatusFound, "/install")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if path == "/install" || strings.HasPrefix(path, "/install/") {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CORS allows the dashboard frontend to call the API from another origin.
func CORS(origins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
			continue
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			switch {
			case allowAll:
				c.Header("Access-Control-Allow-Origin", "*")
			default:
				if _, ok := allowed[origin]; ok {
					c.Header("Access-Control-Allow-Origin", origin)
					c.Header("Vary", "Origin")
				}
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestLogger emits one structured log line per request.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
