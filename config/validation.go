package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one configuration.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	lines := make([]string, len(e))
	for i, ve := range e {
		lines[i] = ve.Error()
	}
	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
}

// ValidateConfig checks that the configuration can start the service
func ValidateConfig(cfg *Config) error {
	if errs := validate(cfg); len(errs) > 0 {
		return errs
	}
	return nil
}

func validate(cfg *Config) ValidationErrors {
	var errs ValidationErrors
	require := func(field, value string) {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)

	switch cfg.StoreDriver {
	case DriverMongo:
		require("MONGO_URI", cfg.MongoURI)
		require("MONGO_DATABASE", cfg.MongoDatabase)
	case DriverPostgres:
		require("DB_HOST", cfg.DBHost)
		require("DB_PORT", cfg.DBPort)
		require("DB_USER", cfg.DBUser)
		require("DB_NAME", cfg.DBName)
	case DriverSQLite:
		require("SQLITE_PATH", cfg.SQLitePath)
	default:
		errs = append(errs, ValidationError{
			Field:   "STORE_DRIVER",
			Message: fmt.Sprintf("unknown driver %q (want mongo, postgres or sqlite)", cfg.StoreDriver),
		})
	}

	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_REQUESTS", Message: "must be positive"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{Field: "LOG_LEVEL", Message: "must be debug, info, warn or error"})
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, ValidationError{Field: "LOG_FORMAT", Message: "must be json or text"})
	}

	return errs
}
