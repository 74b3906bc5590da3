package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every key LoadConfig reads and points secrets at an empty dir.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "SERVER_HOST", "SERVER_PORT", "CORS_ALLOWED_ORIGINS", "STORE_DRIVER",
		"MONGO_URI", "MONGO_DATABASE", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSL_MODE", "SQLITE_PATH", "REDIS_URL", "RATE_LIMIT_REQUESTS",
		"RATE_LIMIT_WINDOW", "CASCADE_SAVED_RECIPES", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	return dir
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0:4000", cfg.Addr())
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "cookbook-db", cfg.MongoDatabase)
	assert.Equal(t, "", cfg.RedisURL)
	assert.Equal(t, 120, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.CascadeSavedRecipes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "cook")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CASCADE_SAVED_RECIPES", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "cook", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.False(t, cfg.CascadeSavedRecipes)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ENV", "production")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mongo_uri"), []byte("mongodb://mongo:27017\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoURI)
}

func TestLoadConfigIgnoresSecretsInCI(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CI", "true")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mongo_uri"), []byte("mongodb://mongo:27017"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
}

func TestLoadConfigCollectsErrors(t *testing.T) {
	isolate(t)
	t.Setenv("STORE_DRIVER", "cassandra")
	t.Setenv("RATE_LIMIT_REQUESTS", "many")
	t.Setenv("RATE_LIMIT_WINDOW", "-1s")

	_, err := LoadConfig()
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.ElementsMatch(t, []string{"RATE_LIMIT_REQUESTS", "STORE_DRIVER", "RATE_LIMIT_WINDOW"}, fields)
}

func TestValidateConfigPostgresRequirements(t *testing.T) {
	cfg := &Config{
		ServerPort:        "4000",
		StoreDriver:       DriverPostgres,
		RateLimitRequests: 1,
		RateLimitWindow:   time.Second,
		LogLevel:          "info",
		LogFormat:         "text",
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST: is required")
	assert.Contains(t, err.Error(), "DB_USER: is required")

	cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBName = "localhost", "5432", "postgres", "cookbook"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "staging")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
