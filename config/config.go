// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/formgate/contact-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	FrontendURL    string      `mapstructure:"FRONTEND_URL"`
	Version        string      `mapstructure:"VERSION"`
}

// DatabaseConfig holds PostgreSQL connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST"`
	Port         int    `mapstructure:"PORT"`
	User         string `mapstructure:"USER"`
	Password     string `mapstructure:"PASSWORD"`
	Name         string `mapstructure:"NAME"`
	SSLMode      string `mapstructure:"SSL_MODE"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and
// other URL-based database tools.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// ConnString returns a key-value connection string for pgxpool.
func (c *DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig holds Redis connection details for the rate limiter.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS"`
	Password string `mapstructure:"PASSWORD"`
	DB       int    `mapstructure:"DB"`
}

// EmailConfig holds configuration for sending notification emails.
type EmailConfig struct {
	FromAddress    string `mapstructure:"FROM_ADDRESS"`
	FromName       string `mapstructure:"FROM_NAME"`
	OwnerAddress   string `mapstructure:"OWNER_ADDRESS"`
	ResendAPIKey   string `mapstructure:"RESEND_API_KEY"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS"`
}

// SendTimeout returns the bounded per-send timeout for mail-transport calls.
func (c *EmailConfig) SendTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RateLimitConfig holds window/ceiling settings for the two rate-limit scopes.
type RateLimitConfig struct {
	// Ceiling for all requests under /api per client address.
	APIRequestLimit  int `mapstructure:"API_REQUEST_LIMIT"`
	APIWindowMinutes int `mapstructure:"API_WINDOW_MINUTES"`
	// Ceiling for contact-form submissions per client address.
	ContactRequestLimit  int `mapstructure:"CONTACT_REQUEST_LIMIT"`
	ContactWindowMinutes int `mapstructure:"CONTACT_WINDOW_MINUTES"`
}

// APIWindow returns the general-scope window duration.
func (c *RateLimitConfig) APIWindow() time.Duration {
	return time.Duration(c.APIWindowMinutes) * time.Minute
}

// ContactWindow returns the contact-submission-scope window duration.
func (c *RateLimitConfig) ContactWindow() time.Duration {
	return time.Duration(c.ContactWindowMinutes) * time.Minute
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER"`
	Database  DatabaseConfig  `mapstructure:"DATABASE"`
	Redis     RedisConfig     `mapstructure:"REDIS"`
	Email     EmailConfig     `mapstructure:"EMAIL"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT"`
}

// IsProduction returns true if the application runs in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals into the Config struct and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "contact_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("EMAIL.FROM_NAME", "Contact Form")
	v.SetDefault("EMAIL.TIMEOUT_SECONDS", 10)
	v.SetDefault("RATE_LIMIT.API_REQUEST_LIMIT", 100)
	v.SetDefault("RATE_LIMIT.API_WINDOW_MINUTES", 15)
	v.SetDefault("RATE_LIMIT.CONTACT_REQUEST_LIMIT", 5)
	v.SetDefault("RATE_LIMIT.CONTACT_WINDOW_MINUTES", 60)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.FRONTEND_URL", "FRONTEND_URL"},
		{"SERVER.VERSION", "VERSION"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"DATABASE.MAX_OPEN_CONNS", "DB_MAX_OPEN_CONNS"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.OWNER_ADDRESS", "EMAIL_OWNER_ADDRESS"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		{"EMAIL.TIMEOUT_SECONDS", "EMAIL_TIMEOUT_SECONDS"},
		{"RATE_LIMIT.API_REQUEST_LIMIT", "RATE_LIMIT_API_REQUESTS"},
		{"RATE_LIMIT.API_WINDOW_MINUTES", "RATE_LIMIT_API_WINDOW_MINUTES"},
		{"RATE_LIMIT.CONTACT_REQUEST_LIMIT", "RATE_LIMIT_CONTACT_REQUESTS"},
		{"RATE_LIMIT.CONTACT_WINDOW_MINUTES", "RATE_LIMIT_CONTACT_WINDOW_MINUTES"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"db_host", cfg.Database.Host,
		"email_from", logger.MaskEmail(cfg.Email.FromAddress),
	)

	return &cfg, nil
}

// validate rejects operational misconfiguration. Absent mail credentials or
// an unusable database target are fatal in production, not recoverable
// runtime conditions.
func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must be set")
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("database host and name must be set")
	}
	if c.IsProduction() {
		if c.Email.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY must be set in production")
		}
		if c.Email.FromAddress == "" {
			return fmt.Errorf("EMAIL_FROM_ADDRESS must be set in production")
		}
		if c.Email.OwnerAddress == "" {
			return fmt.Errorf("EMAIL_OWNER_ADDRESS must be set in production")
		}
		if c.Server.FrontendURL == "" {
			return fmt.Errorf("FRONTEND_URL must be set in production")
		}
	}
	return nil
}
