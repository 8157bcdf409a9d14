package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/segyhp/debt-tracker/internal/accrual"
	"github.com/segyhp/debt-tracker/pkg/currency"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application. Sections are squashed so
// every key is read from a flat environment variable.
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
	Auth      AuthConfig      `mapstructure:",squash"`
	Cache     CacheConfig     `mapstructure:",squash"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"SERVER_PORT"`
	Host            string        `mapstructure:"SERVER_HOST"`
	Env             string        `mapstructure:"ENV"`
	ReadTimeout     time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	Host            string        `mapstructure:"DATABASE_HOST"`
	Port            string        `mapstructure:"DATABASE_PORT"`
	Name            string        `mapstructure:"DATABASE_NAME"`
	User            string        `mapstructure:"DATABASE_USER"`
	Password        string        `mapstructure:"DATABASE_PASSWORD"`
	SSLMode         string        `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
	MigrationsPath  string        `mapstructure:"DATABASE_MIGRATIONS_PATH"`
	AutoMigrate     bool          `mapstructure:"DATABASE_AUTO_MIGRATE"`
}

type RedisConfig struct {
	URL      string `mapstructure:"REDIS_URL"`
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	ReminderSpec string `mapstructure:"SCHEDULER_REMINDER_SPEC"`
	Timezone     string `mapstructure:"SCHEDULER_TIMEZONE"`
	MetricsAddr  string `mapstructure:"SCHEDULER_METRICS_ADDR"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	DefaultCurrency string `mapstructure:"DEFAULT_CURRENCY"`
	AccrualPolicy   string `mapstructure:"ACCRUAL_POLICY"`
	UpcomingLimit   int    `mapstructure:"DASHBOARD_UPCOMING_LIMIT"`
	RecentLimit     int    `mapstructure:"DASHBOARD_RECENT_LIMIT"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"JWT_SECRET"`
	Issuer    string `mapstructure:"JWT_ISSUER"`
}

type CacheConfig struct {
	Enabled      bool          `mapstructure:"CACHE_ENABLED"`
	DashboardTTL time.Duration `mapstructure:"CACHE_DASHBOARD_TTL"`
}

var defaults = map[string]any{
	"SERVER_PORT":                "8080",
	"SERVER_HOST":                "0.0.0.0",
	"ENV":                        "development",
	"SERVER_READ_TIMEOUT":        "15s",
	"SERVER_WRITE_TIMEOUT":       "15s",
	"SERVER_SHUTDOWN_TIMEOUT":    "30s",
	"DATABASE_URL":               "",
	"DATABASE_HOST":              "localhost",
	"DATABASE_PORT":              "5432",
	"DATABASE_NAME":              "debt_tracker",
	"DATABASE_USER":              "postgres",
	"DATABASE_PASSWORD":          "",
	"DATABASE_SSLMODE":           "disable",
	"DATABASE_MAX_OPEN_CONNS":    25,
	"DATABASE_MAX_IDLE_CONNS":    5,
	"DATABASE_CONN_MAX_LIFETIME": "5m",
	"DATABASE_MIGRATIONS_PATH":   "file://migrations",
	"DATABASE_AUTO_MIGRATE":      true,
	"REDIS_URL":                  "",
	"REDIS_HOST":                 "localhost",
	"REDIS_PORT":                 "6379",
	"REDIS_PASSWORD":             "",
	"REDIS_DB":                   0,
	"SCHEDULER_REMINDER_SPEC":    "0 8 * * *",
	"SCHEDULER_TIMEZONE":         "UTC",
	"SCHEDULER_METRICS_ADDR":     ":9091",
	"LOG_LEVEL":                  "info",
	"LOG_FORMAT":                 "json",
	"DEFAULT_CURRENCY":           "USD",
	"ACCRUAL_POLICY":             string(accrual.DefaultPolicy),
	"DASHBOARD_UPCOMING_LIMIT":   5,
	"DASHBOARD_RECENT_LIMIT":     5,
	"HEALTH_CHECK_TIMEOUT":       "5s",
	"JWT_SECRET":                 "",
	"JWT_ISSUER":                 "",
	"CACHE_ENABLED":              true,
	"CACHE_DASHBOARD_TTL":        "5m",
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Don't fail if .env file doesn't exist
	for _, path := range []string{".env", "deployments/.env"} {
		_ = godotenv.Load(path)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST and DATABASE_NAME are required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if _, err := currency.NewFormatter(c.Business.DefaultCurrency); err != nil {
		return fmt.Errorf("DEFAULT_CURRENCY must be an ISO 4217 code: %w", err)
	}

	if _, err := accrual.ParsePolicy(c.Business.AccrualPolicy); err != nil {
		return fmt.Errorf("ACCRUAL_POLICY is invalid: %w", err)
	}

	if c.Business.UpcomingLimit <= 0 || c.Business.RecentLimit <= 0 {
		return fmt.Errorf("DASHBOARD_UPCOMING_LIMIT and DASHBOARD_RECENT_LIMIT must be greater than 0")
	}

	if _, err := cron.ParseStandard(c.Scheduler.ReminderSpec); err != nil {
		return fmt.Errorf("SCHEDULER_REMINDER_SPEC must be a valid cron expression: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// DSN returns the Postgres connection string, preferring DATABASE_URL.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetAccrualPolicy returns the configured accrual policy
func (c *Config) GetAccrualPolicy() accrual.Policy {
	policy, _ := accrual.ParsePolicy(c.Business.AccrualPolicy)
	return policy
}

// GetSchedulerLocation returns the timezone the reminder schedule runs in
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
