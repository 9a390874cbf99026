package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment keys consumed by the server. DATABASE_DSN, JWT_SECRET, and
// LAB_INSTALLED are also the keys the install wizard writes back to .env.
const (
	EnvHTTPAddr      = "LAB_HTTP_ADDR"
	EnvDatabaseDSN   = "DATABASE_DSN"
	EnvSecretKey     = "JWT_SECRET"
	EnvTokenValidity = "JWT_TTL_HOURS"
	EnvInstalled     = "LAB_INSTALLED"
	EnvMarkerPath    = "LAB_INSTALL_MARKER"
	EnvCORSOrigins   = "CORS_ALLOWED_ORIGINS"
	EnvS3RootUser    = "S3_ROOT_USER"
	EnvS3RootPass    = "S3_ROOT_PASSWORD"
	EnvS3Bucket      = "S3_BUCKET"
	EnvS3Region      = "S3_REGION"
	EnvS3Endpoint    = "S3_BASE_ENDPOINT"
)

// parseEnv overlays values from environment variables. Only variables that
// are actually set override earlier layers.
func parseEnv(config *Config) {
	setString(EnvHTTPAddr, &config.EndpointAddrHTTP)
	setString(EnvDatabaseDSN, &config.DatabaseDSN)
	setString(EnvSecretKey, &config.SecretKey)
	setString(EnvMarkerPath, &config.MarkerPath)
	setString(EnvS3RootUser, &config.S3RootUser)
	setString(EnvS3RootPass, &config.S3RootPassword)
	setString(EnvS3Bucket, &config.S3Bucket)
	setString(EnvS3Region, &config.S3Region)
	setString(EnvS3Endpoint, &config.S3BaseEndpoint)

	if v, ok := os.LookupEnv(EnvTokenValidity); ok {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			config.TokenValidityDuration = time.Duration(hours) * time.Hour
		}
	}

	if v, ok := os.LookupEnv(EnvInstalled); ok {
		if installed, err := strconv.ParseBool(v); err == nil {
			config.Installed = installed
		}
	}

	if v, ok := os.LookupEnv(EnvCORSOrigins); ok {
		origins := []string{}
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		if len(origins) > 0 {
			config.CORSOrigins = origins
		}
	}
}

func setString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
