// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import "time"

// DefaultSecretKey is the fixed fallback used when no JWT secret is
// configured. Keeping it is a known weakness inherited from the original
// deployment; the app logs a startup warning whenever it is in effect, and
// the install wizard writes a generated secret so fresh installs never run
// on it for long.
const DefaultSecretKey = "lab-website-dev-secret"

// Config holds runtime settings for the lab-website server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty on a fresh deployment until
//     the install wizard saves one.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means the
//     DefaultSecretKey fallback applies.
//   - TokenValidityDuration: session token lifetime.
//   - Installed: env-backed installed flag, one of the two redundant
//     sources of the installation state.
//   - MarkerPath / EnvPath: locations of the install marker file and the
//     .env file the wizard writes.
//   - CORSOrigins: allowed CORS origins for the admin UI.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     S3-compatible object storage for uploaded avatars, PDFs, and icons.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	Installed             bool
	MarkerPath            string
	EnvPath               string
	CORSOrigins           []string
	S3RootUser            string
	S3RootPassword        string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 7 * 24 * time.Hour
	c.Installed = false
	c.MarkerPath = "install.lock"
	c.EnvPath = ".env"
	c.CORSOrigins = []string{"*"}
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "lab-uploads"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// EffectiveSecret returns the signing key to use and whether the insecure
// built-in fallback is in effect.
func (c *Config) EffectiveSecret() ([]byte, bool) {
	if c.SecretKey == "" {
		return []byte(DefaultSecretKey), true
	}
	return []byte(c.SecretKey), false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, then environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
