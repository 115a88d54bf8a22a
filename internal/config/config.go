package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	PresignExpirySec int
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret   string
	TokenTTLSec int
}

// LogConfig selects the zap encoder and minimum level.
type LogConfig struct {
	Level  string
	Format string
}

// ReminderConfig controls how persisted reminder statuses are kept current.
type ReminderConfig struct {
	SweepIntervalSec int
	PersistOnRead    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from an optional YAML file and environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost       string
	Port          string
	PublicBaseURL string
	Database      DatabaseConfig
	MinIO         MinIOConfig
	Auth          AuthConfig
	Log           LogConfig
	Reminders     ReminderConfig
}

// TokenTTL returns the lifetime of issued bearer tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLSec) * time.Second
}

// PresignExpiry returns the validity window of presigned download URLs.
func (m MinIOConfig) PresignExpiry() time.Duration {
	return time.Duration(m.PresignExpirySec) * time.Second
}

// SweepInterval returns the period of the background reminder status sweep.
func (r ReminderConfig) SweepInterval() time.Duration {
	return time.Duration(r.SweepIntervalSec) * time.Second
}

// envKeys maps environment variable names onto koanf paths used by the YAML file.
var envKeys = map[string]string{
	"APP_HOST":                    "app.host",
	"PORT":                        "app.port",
	"PUBLIC_BASE_URL":             "app.public_base_url",
	"DB_HOST":                     "database.host",
	"DB_PORT":                     "database.port",
	"DB_USER":                     "database.user",
	"DB_PASSWORD":                 "database.password",
	"DB_NAME":                     "database.name",
	"DB_SSLMODE":                  "database.sslmode",
	"DB_MAX_OPEN_CONNS":           "database.max_open_conns",
	"DB_MAX_IDLE_CONNS":           "database.max_idle_conns",
	"DB_CONN_MAX_LIFETIME_SEC":    "database.conn_max_lifetime_sec",
	"MINIO_ENDPOINT":              "minio.endpoint",
	"MINIO_ACCESS_KEY":            "minio.access_key",
	"MINIO_SECRET_KEY":            "minio.secret_key",
	"MINIO_BUCKET":                "minio.bucket",
	"MINIO_USE_SSL":               "minio.use_ssl",
	"MINIO_PRESIGN_EXPIRY_SEC":    "minio.presign_expiry_sec",
	"JWT_SECRET":                  "auth.jwt_secret",
	"JWT_TTL_SEC":                 "auth.token_ttl_sec",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"REMINDER_SWEEP_INTERVAL_SEC": "reminders.sweep_interval_sec",
	"REMINDER_PERSIST_ON_READ":    "reminders.persist_on_read",
}

// Load reads configuration from the YAML file named by CONFIG_FILE (if set), then
// overrides it with environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		// Unknown variables map to "" and are skipped.
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	return &AppConfig{
		AppHost:       getString(k, "app.host", "localhost:8080"),
		Port:          getString(k, "app.port", "8080"), // default only for non-sensitive value
		PublicBaseURL: getString(k, "app.public_base_url", ""),
		Database: DatabaseConfig{
			Host:               getString(k, "database.host", ""),
			Port:               getString(k, "database.port", "5432"),
			User:               getString(k, "database.user", ""),
			Password:           getString(k, "database.password", ""),
			Name:               getString(k, "database.name", ""),
			SSLMode:            getString(k, "database.sslmode", "disable"),
			MaxOpenConns:       getInt(k, "database.max_open_conns", 10),
			MaxIdleConns:       getInt(k, "database.max_idle_conns", 5),
			ConnMaxLifetimeSec: getInt(k, "database.conn_max_lifetime_sec", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:         getString(k, "minio.endpoint", ""),
			AccessKey:        getString(k, "minio.access_key", ""),
			SecretKey:        getString(k, "minio.secret_key", ""),
			Bucket:           getString(k, "minio.bucket", ""),
			UseSSL:           getBool(k, "minio.use_ssl", false),
			PresignExpirySec: getInt(k, "minio.presign_expiry_sec", 900),
		},
		Auth: AuthConfig{
			JWTSecret:   getString(k, "auth.jwt_secret", ""),
			TokenTTLSec: getInt(k, "auth.token_ttl_sec", 86400),
		},
		Log: LogConfig{
			Level:  getString(k, "log.level", "info"),
			Format: getString(k, "log.format", "json"),
		},
		Reminders: ReminderConfig{
			SweepIntervalSec: getInt(k, "reminders.sweep_interval_sec", 60),
			PersistOnRead:    getBool(k, "reminders.persist_on_read", false),
		},
	}, nil
}

func getString(k *koanf.Koanf, key, def string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return def
}

func getBool(k *koanf.Koanf, key string, def bool) bool {
	if v := k.String(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getInt(k *koanf.Koanf, key string, def int) int {
	if v := k.String(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
