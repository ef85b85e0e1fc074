package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return "configuration validation failed:\n" + strings.Join(lines, "\n")
}

// ValidateConfig checks the configuration is usable for the selected backend
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		add("server.port", "must be a number between 1 and 65535")
	}

	switch cfg.Storage.Backend {
	case BackendMemory:
		if cfg.Env == Production {
			add("storage.backend", "memory storage is not allowed in production")
		}
	case BackendSQLite:
		if cfg.Storage.SQLitePath == "" {
			add("storage.sqlite_path", "is required for the sqlite backend")
		}
	case BackendPostgres:
		if cfg.Storage.PostgresDSN == "" {
			add("storage.postgres_dsn", "is required for the postgres backend")
		}
	case BackendRedis:
		if !cfg.Redis.Enabled() {
			add("redis.url", "redis.url or redis.host is required for the redis backend")
		}
	case BackendS3:
		if cfg.Storage.S3Bucket == "" {
			add("storage.s3_bucket", "is required for the s3 backend")
		}
	default:
		add("storage.backend", fmt.Sprintf("unknown backend %q", cfg.Storage.Backend))
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("log.level", fmt.Sprintf("unknown level %q", cfg.Log.Level))
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "json", "text", "console":
	default:
		add("log.format", fmt.Sprintf("unknown format %q", cfg.Log.Format))
	}

	if cfg.Delay.Min < 0 || cfg.Delay.Max < 0 {
		add("delay", "must not be negative")
	} else if cfg.Delay.Min > cfg.Delay.Max {
		add("delay", "min must not exceed max")
	}

	if cfg.RateLimit.Limit <= 0 {
		add("rate_limit.limit", "must be positive")
	}
	if cfg.RateLimit.Window <= 0 {
		add("rate_limit.window", "must be positive")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
