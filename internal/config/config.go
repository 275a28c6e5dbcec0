package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Queue    QueueConfig
	Mail     MailConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	Timezone              string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level  string
	Format string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	BootstrapAdminEmail   string
	BootstrapAdminPass    string
	BootstrapAdminName    string
}

// QueueConfig tunes the notification queue and its workers.
// MaxAttempts is the retry ceiling policy; it is configuration, never a
// constant inside the dispatch loop.
type QueueConfig struct {
	KeyPrefix        string
	Workers          int
	MaxAttempts      int
	LeaseSeconds     int
	PollIntervalMS   int
	BackoffInitialMS int
	BackoffMaxMS     int
}

// MailConfig holds outbound mail parameters.
type MailConfig struct {
	From string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "gym-backoffice"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			Timezone:              getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			BootstrapAdminEmail:   getEnv("ADMIN_EMAIL", ""),
			BootstrapAdminPass:    getEnv("ADMIN_PASSWORD", ""),
			BootstrapAdminName:    getEnv("ADMIN_NAME", "Administrator"),
		},
		Queue: QueueConfig{
			KeyPrefix:        getEnv("QUEUE_KEY_PREFIX", "gym:notify"),
			Workers:          getEnvAsInt("QUEUE_WORKERS", 4),
			MaxAttempts:      getEnvAsInt("QUEUE_MAX_ATTEMPTS", 5),
			LeaseSeconds:     getEnvAsInt("QUEUE_LEASE_SECONDS", 30),
			PollIntervalMS:   getEnvAsInt("QUEUE_POLL_INTERVAL_MS", 250),
			BackoffInitialMS: getEnvAsInt("QUEUE_BACKOFF_INITIAL_MS", 500),
			BackoffMaxMS:     getEnvAsInt("QUEUE_BACKOFF_MAX_MS", 60000),
		},
		Mail: MailConfig{
			From: getEnv("MAIL_FROM", "Gympoint Team <noreply@gympoint.com>"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Location resolves the reference time zone for calendar-day boundaries,
// falling back to UTC when the zone database lacks the configured name.
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Lease returns the worker lease duration for claimed jobs.
func (q QueueConfig) Lease() time.Duration {
	if q.LeaseSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(q.LeaseSeconds) * time.Second
}

// PollInterval returns the idle polling interval for workers.
func (q QueueConfig) PollInterval() time.Duration {
	if q.PollIntervalMS <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(q.PollIntervalMS) * time.Millisecond
}

// BackoffInitial returns the first retry delay.
func (q QueueConfig) BackoffInitial() time.Duration {
	if q.BackoffInitialMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(q.BackoffInitialMS) * time.Millisecond
}

// BackoffMax caps retry delays.
func (q QueueConfig) BackoffMax() time.Duration {
	if q.BackoffMaxMS <= 0 {
		return time.Minute
	}
	return time.Duration(q.BackoffMaxMS) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
