package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost         string
	ServerPort         string
	CORSAllowedOrigins []string

	// Record store selection
	StoreDriver string

	// MongoDB configuration
	MongoURI      string
	MongoDatabase string

	// PostgreSQL configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// SQLite configuration
	SQLitePath string

	// Redis rate limiting; disabled when RedisURL is empty
	RedisURL          string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Catalog policy
	CascadeSavedRecipes bool

	// Logging
	LogLevel  string
	LogFormat string
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// LoadConfig creates a new Config instance from a .env file, environment
// variables and, outside CI, Docker secrets
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real environment variables take precedence
	_ = godotenv.Load()

	l := &loader{env: GetEnvironment()}
	cfg := &Config{
		ServerHost:          l.str("SERVER_HOST", "0.0.0.0"),
		ServerPort:          l.str("SERVER_PORT", "4000"),
		CORSAllowedOrigins:  l.list("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		StoreDriver:         strings.ToLower(l.str("STORE_DRIVER", DriverMongo)),
		MongoURI:            l.str("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       l.str("MONGO_DATABASE", "cookbook-db"),
		DBHost:              l.str("DB_HOST", "localhost"),
		DBPort:              l.str("DB_PORT", "5432"),
		DBUser:              l.str("DB_USER", ""),
		DBPassword:          l.str("DB_PASSWORD", ""),
		DBName:              l.str("DB_NAME", "cookbook"),
		DBSSLMode:           l.str("DB_SSL_MODE", "disable"),
		SQLitePath:          l.str("SQLITE_PATH", "cookbook.db"),
		RedisURL:            l.str("REDIS_URL", ""),
		RateLimitRequests:   l.integer("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:     l.duration("RATE_LIMIT_WINDOW", time.Minute),
		CascadeSavedRecipes: l.boolean("CASCADE_SAVED_RECIPES", true),
		LogLevel:            strings.ToLower(l.str("LOG_LEVEL", "info")),
		LogFormat:           strings.ToLower(l.str("LOG_FORMAT", "json")),
	}

	errs := append(l.errs, validate(cfg)...)
	if len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// loader reads keys and remembers values that fail to parse.
type loader struct {
	env  Environment
	errs ValidationErrors
}

func (l *loader) lookup(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if l.env.usesSecrets() {
		return readSecret(strings.ToLower(key))
	}
	return ""
}

func (l *loader) str(key, def string) string {
	if v := l.lookup(key); v != "" {
		return v
	}
	return def
}

func (l *loader) list(key, def string) []string {
	var out []string
	for _, part := range strings.Split(l.str(key, def), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (l *loader) integer(key string, def int) int {
	v := l.lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: "must be an integer"})
		return def
	}
	return n
}

func (l *loader) duration(key string, def time.Duration) time.Duration {
	v := l.lookup(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: "must be a duration such as 30s or 1m"})
		return def
	}
	return d
}

func (l *loader) boolean(key string, def bool) bool {
	v := l.lookup(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: "must be true or false"})
		return def
	}
	return b
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
