package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RECIPEVAULT_SERVER_PORT.
const EnvPrefix = "RECIPEVAULT"

// Config holds all configuration for the application
type Config struct {
	Env       Environment
	Server    ServerConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Log       LogConfig
	Delay     DelayConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string
	Port            string
	ShutdownTimeout time.Duration
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// StorageConfig selects and configures the document backend.
type StorageConfig struct {
	Backend     string
	SQLitePath  string
	PostgresDSN string
	KeyPrefix   string
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string
	Seed        bool
}

// RedisConfig is shared by the redis backend and the rate limiter.
type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Host != ""
}

type LogConfig struct {
	Level  string
	Format string
}

// DelayConfig bounds the simulated latency of store operations.
type DelayConfig struct {
	Min time.Duration
	Max time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig limits shopping list generation per client.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.sqlite_path", "recipevault.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.key_prefix", "recipevault:")
	v.SetDefault("storage.s3_bucket", "")
	v.SetDefault("storage.s3_prefix", "recipevault/")
	v.SetDefault("storage.s3_region", "us-east-1")
	v.SetDefault("storage.s3_endpoint", "")
	v.SetDefault("storage.seed", true)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("delay.min", 300*time.Millisecond)
	v.SetDefault("delay.max", 500*time.Millisecond)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("rate_limit.limit", 30)
	v.SetDefault("rate_limit.window", time.Minute)
}

// NewViper returns a viper instance with defaults and environment overrides
// applied. If configFile is empty, config.yaml is looked up in the working
// directory and its absence is not an error.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// LoadConfig loads configuration from defaults, config.yaml and the environment.
func LoadConfig() (*Config, error) {
	v, err := NewViper("")
	if err != nil {
		return nil, err
	}
	return Load(v)
}

// Load builds and validates a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env: GetEnvironment(),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetString("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Storage: StorageConfig{
			Backend:     strings.ToLower(v.GetString("storage.backend")),
			SQLitePath:  v.GetString("storage.sqlite_path"),
			PostgresDSN: v.GetString("storage.postgres_dsn"),
			KeyPrefix:   v.GetString("storage.key_prefix"),
			S3Bucket:    v.GetString("storage.s3_bucket"),
			S3Prefix:    v.GetString("storage.s3_prefix"),
			S3Region:    v.GetString("storage.s3_region"),
			S3Endpoint:  v.GetString("storage.s3_endpoint"),
			Seed:        v.GetBool("storage.seed"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("redis.url"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Delay: DelayConfig{
			Min: v.GetDuration("delay.min"),
			Max: v.GetDuration("delay.max"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		},
		RateLimit: RateLimitConfig{
			Limit:  v.GetInt("rate_limit.limit"),
			Window: v.GetDuration("rate_limit.window"),
		},
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
