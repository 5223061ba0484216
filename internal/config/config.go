// Package config loads process configuration from the environment and opens
// the database and redis connections the server and seed command share.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultJWTSecret = "change-this-to-a-secure-secret"

// Config holds every setting read at startup.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// HTTP server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// PostgreSQL. DatabaseURL wins over the DB_* parts when set.
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      int    `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD" envDefault:"password"`
	DBName      string `env:"DB_NAME" envDefault:"buildersite"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	DBTimeZone  string `env:"DB_TIMEZONE" envDefault:"UTC"`

	// Redis. An empty address disables the geocode cache.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Geocoding
	NominatimURL          string        `env:"NOMINATIM_URL" envDefault:"https://nominatim.openstreetmap.org"`
	NominatimUserAgent    string        `env:"NOMINATIM_USER_AGENT" envDefault:"buildersite/1.0"`
	NominatimEmail        string        `env:"NOMINATIM_EMAIL"`
	NominatimCountryCodes string        `env:"NOMINATIM_COUNTRY_CODES"`
	GeocodeTimeout        time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"5s"`
	GeocodeRatePerSec     float64       `env:"GEOCODE_RATE_PER_SEC" envDefault:"1"`
	GeocodeCacheTTL       time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"24h"`
	GeocodeNegativeTTL    time.Duration `env:"GEOCODE_NEGATIVE_TTL" envDefault:"1h"`

	// JWT
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"72h"`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile   string `env:"LOG_FILE" envDefault:"./logs/app.log"`
	LogStdout bool   `env:"LOG_STDOUT" envDefault:"true"`

	// First admin account, created only when no admin exists yet.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, relying on env vars")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GeocodeRatePerSec < 0 {
		return fmt.Errorf("GEOCODE_RATE_PER_SEC must not be negative, got %v", c.GeocodeRatePerSec)
	}
	if c.Environment != "development" {
		if c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", c.Environment)
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(c.JWTSecret))
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone,
	)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.HTTPPort)
}
