package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	CORS     CORSConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	JWT      JWTConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type CORSConfig struct {
	AllowedOrigin string // bắt buộc, thiếu thì app không start
}

// Repository backends
const (
	RepositoryMemory   = "memory"
	RepositoryPostgres = "postgres"
)

type StoreConfig struct {
	Type     string // memory | postgres
	SeedData bool   // nạp catalog mặc định khi store rỗng
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Database          string
	SSLMode           string
	MaxConns          int
	MinConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	ConnectTimeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// ConfigurationError - thiếu hoặc sai setting bắt buộc; process không được start
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Setting, e.Reason)
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Game Store API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowedOrigin: strings.TrimSpace(os.Getenv("ALLOWED_ORIGIN")),
		},
		Store: StoreConfig{
			Type:     strings.ToLower(getEnv("REPOSITORY_TYPE", RepositoryMemory)),
			SeedData: getEnvBool("SEED_DATA", true),
		},
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Database:          getEnv("DB_NAME", "gamestore"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          getEnvInt("DB_MAX_CONNS", 25),
			MinConns:          getEnvInt("DB_MIN_CONNS", 5),
			MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
			HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
			MaxRetries:        getEnvInt("DB_MAX_RETRIES", 5),
			RetryDelay:        getEnvDuration("DB_RETRY_DELAY", time.Second),
			ConnectTimeout:    getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", false),
			TTL:     getEnvDuration("CACHE_TTL", 10*time.Minute),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:   getEnv("JWT_ISSUER", ""),
			Audience: getEnv("JWT_AUDIENCE", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không; lỗi luôn là *ConfigurationError
func (c *Config) Validate() error {
	if c.CORS.AllowedOrigin == "" {
		return &ConfigurationError{Setting: "ALLOWED_ORIGIN", Reason: "is not set"}
	}

	switch c.Store.Type {
	case RepositoryMemory, RepositoryPostgres:
	default:
		return &ConfigurationError{
			Setting: "REPOSITORY_TYPE",
			Reason:  fmt.Sprintf("must be %q or %q, got %q", RepositoryMemory, RepositoryPostgres, c.Store.Type),
		}
	}

	if c.JWT.Secret == "" {
		return &ConfigurationError{Setting: "JWT_SECRET", Reason: "is not set"}
	}

	// Production environment phải có JWT secret và DB password thật
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return &ConfigurationError{Setting: "JWT_SECRET", Reason: "must be set in production"}
		}
		if c.Store.Type == RepositoryPostgres && c.Database.Password == "" {
			return &ConfigurationError{Setting: "DB_PASSWORD", Reason: "must be set in production"}
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
