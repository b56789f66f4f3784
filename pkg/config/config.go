package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Upload drivers.
const (
	UploadLocal = "local"
	UploadS3    = "s3"
)

const (
	devAccessSecret  = "folio-dev-access-secret"
	devRefreshSecret = "folio-dev-refresh-secret"
)

type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	StoreDriver             string
	MongoURI                string
	MongoDatabase           string
	PostgresURL             string
	SQLitePath              string
	JWTSecret               string
	JWTRefreshSecret        string
	AccessTokenTTL          time.Duration
	RefreshTokenTTL         time.Duration
	CORSAllowedOrigins      []string
	UploadDriver            string
	UploadDir               string
	S3Region                string
	S3Bucket                string
	S3AccessKey             string
	S3SecretKey             string
	S3Endpoint              string
	S3PublicURL             string
	FirebaseCredentialsPath string
	ResendAPIKey            string
	ResendFromEmail         string
	NotifyEmail             string
}

// Load reads configuration from the environment, after loading .env if one
// exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	accessTTL, err := getDuration("ACCESS_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := getDuration("REFRESH_TOKEN_TTL", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		StoreDriver:             strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "portfolio"),
		PostgresURL:             getEnv("POSTGRES_URL", ""),
		SQLitePath:              getEnv("SQLITE_PATH", "folio.db"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		JWTRefreshSecret:        getEnv("JWT_REFRESH_SECRET", ""),
		AccessTokenTTL:          accessTTL,
		RefreshTokenTTL:         refreshTTL,
		CORSAllowedOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		UploadDriver:            strings.ToLower(getEnv("UPLOAD_DRIVER", UploadLocal)),
		UploadDir:               getEnv("UPLOAD_DIR", "./uploads"),
		S3Region:                getEnv("S3_REGION", "us-east-1"),
		S3Bucket:                getEnv("S3_BUCKET", ""),
		S3AccessKey:             getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:             getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:              getEnv("S3_ENDPOINT", ""),
		S3PublicURL:             getEnv("S3_PUBLIC_URL", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		ResendAPIKey:            getEnv("RESEND_API_KEY", ""),
		ResendFromEmail:         getEnv("RESEND_FROM_EMAIL", ""),
		NotifyEmail:             getEnv("NOTIFY_EMAIL", ""),
	}, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks required settings. In development, missing token secrets
// fall back to fixed values.
func (c *Config) Validate() error {
	if c.JWTSecret == "" || c.JWTRefreshSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must be set")
		}
		log.Warn().Msg("JWT secrets not set, using development secrets")
		if c.JWTSecret == "" {
			c.JWTSecret = devAccessSecret
		}
		if c.JWTRefreshSecret == "" {
			c.JWTRefreshSecret = devRefreshSecret
		}
	}
	if c.JWTSecret == c.JWTRefreshSecret {
		return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if c.RefreshTokenTTL < 0 {
		return errors.New("REFRESH_TOKEN_TTL must not be negative")
	}

	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI must be set for the mongo store")
		}
	case DriverPostgres:
		if c.PostgresURL == "" {
			return errors.New("POSTGRES_URL must be set for the postgres store")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.UploadDriver {
	case UploadLocal:
	case UploadS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET must be set for the s3 upload driver")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_DRIVER %q", c.UploadDriver)
	}
	return nil
}

// NotificationsEnabled reports whether new messages are e-mailed to the owner.
func (c *Config) NotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.ResendFromEmail != "" && c.NotifyEmail != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
