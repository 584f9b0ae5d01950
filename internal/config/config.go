package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// API target selects between the built-in mock API and verbatim
// forwarding to an external backend.
const (
	TargetMock   = "mock"
	TargetRemote = "remote"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// API target: "mock" serves the in-process implementation,
	// "remote" forwards every /api request to RemoteBaseURL.
	APITarget     string
	RemoteBaseURL string

	// Database (metadata + user directory)
	DBDriver     string
	DBConnection string

	// Sessions
	SessionSecret string
	SessionMaxAge time.Duration

	// Content storage: "memory" (default) or "s3"
	StorageDriver string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3Endpoint    string // Optional: for S3-compatible services (MinIO, R2, etc.)

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: envString("APP_NAME", "VOblako"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8090"),

		APITarget:     normalizeTarget(envString("API_TARGET", TargetMock)),
		RemoteBaseURL: strings.TrimSuffix(envString("REMOTE_API_BASE_URL", "http://localhost:8080/api"), "/"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/voblako.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		SessionSecret: envString("SESSION_SECRET", ""),
		SessionMaxAge: envDuration("SESSION_MAX_AGE", 168*time.Hour), // 7 days

		StorageDriver: envString("STORAGE_DRIVER", "memory"),
		S3Region:      envString("S3_REGION", ""),
		S3Bucket:      envString("S3_BUCKET", ""),
		S3AccessKey:   envString("S3_ACCESS_KEY", ""),
		S3SecretKey:   envString("S3_SECRET_KEY", ""),
		S3Endpoint:    envString("S3_ENDPOINT", ""),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: a real signing secret is not optional
	if cfg.IsProduction() && cfg.SessionSecret == "" {
		slog.Error("production deployment requires SESSION_SECRET")
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		// Development fallback, sessions do not survive a restart anyway
		cfg.SessionSecret = "voblako-dev-secret"
	}

	return cfg
}

func normalizeTarget(value string) string {
	if strings.ToLower(value) == TargetRemote {
		return TargetRemote
	}
	return TargetMock
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) IsRemote() bool {
	return c.APITarget == TargetRemote
}
