package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"PORT", "ENV", "STORE_DRIVER", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "CORS_ALLOWED_ORIGINS", "UPLOAD_DRIVER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "portfolio", cfg.MongoDatabase)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Zero(t, cfg.RefreshTokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, UploadLocal, cfg.UploadDriver)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("REFRESH_TOKEN_TTL", "720h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.dev, ,https://b.dev")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 720*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CORSAllowedOrigins)

	t.Setenv("ACCESS_TOKEN_TTL", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "ACCESS_TOKEN_TTL")
}

func validConfig() *Config {
	return &Config{
		Env:              "production",
		StoreDriver:      DriverSQLite,
		JWTSecret:        "a",
		JWTRefreshSecret: "b",
		AccessTokenTTL:   time.Hour,
		UploadDriver:     UploadLocal,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := map[string]func(c *Config){
		"missing secret":   func(c *Config) { c.JWTSecret = "" },
		"shared secret":    func(c *Config) { c.JWTRefreshSecret = c.JWTSecret },
		"zero access ttl":  func(c *Config) { c.AccessTokenTTL = 0 },
		"negative refresh": func(c *Config) { c.RefreshTokenTTL = -time.Second },
		"unknown store":    func(c *Config) { c.StoreDriver = "redis" },
		"postgres no url":  func(c *Config) { c.StoreDriver = DriverPostgres },
		"s3 no bucket":     func(c *Config) { c.UploadDriver = UploadS3 },
		"unknown uploader": func(c *Config) { c.UploadDriver = "ftp" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestValidateDevelopmentSecrets(t *testing.T) {
	c := validConfig()
	c.Env = "development"
	c.JWTSecret, c.JWTRefreshSecret = "", ""

	require.NoError(t, c.Validate())
	assert.Equal(t, devAccessSecret, c.JWTSecret)
	assert.Equal(t, devRefreshSecret, c.JWTRefreshSecret)
}

func TestInitDBSQLite(t *testing.T) {
	cfg := validConfig()
	cfg.SQLitePath = filepath.Join(t.TempDir(), "folio.db")

	db, err := InitDB(context.Background(), cfg)
	require.NoError(t, err)
	defer db.CloseDB()

	require.NotNil(t, db.Store)
	assert.NoError(t, db.Ping(context.Background()))
}
