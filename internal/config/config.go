package config

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultMaxBodyBytes is the default request body cap (32 MiB).
const DefaultMaxBodyBytes int64 = 32 << 20

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	API      APIConfig      `mapstructure:"api"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// When URL is set it takes precedence over the individual connection fields.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL      string `mapstructure:"url" validate:"omitempty,url"`
	Host     string `mapstructure:"host" validate:"required_if=Driver postgres"`
	Port     int    `mapstructure:"port" validate:"gt=0,lt=65536"`
	User     string `mapstructure:"user" validate:"required_if=Driver postgres"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required_if=Driver postgres"`
	SSLMode  string `mapstructure:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	// Path is the database file used by the sqlite driver.
	Path string `mapstructure:"path" validate:"required_if=Driver sqlite"`

	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// APIConfig contains HTTP API behaviour settings.
type APIConfig struct {
	// LegacyResponses keeps the legacy response contract: a missing task
	// is reported with HTTP 200 and a message, and update/delete of a
	// missing task report success. When false, those cases return 404.
	LegacyResponses bool `mapstructure:"legacy_responses"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"dive,required"`

	// MaxBodyBytes caps request bodies; larger bodies get 413. Zero disables the cap.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"gte=0"`
}

// DriverName returns the database/sql driver name registered for the configured driver.
func (c DatabaseConfig) DriverName() string {
	if c.Driver == DriverSQLite {
		return "sqlite"
	}
	return "pgx"
}

// DSN returns the data source name passed to sql.Open.
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	if c.URL != "" {
		return c.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// MaskedDSN returns the DSN with any password masked, for safe logging.
func (c DatabaseConfig) MaskedDSN() string {
	dsn := c.DSN()
	if c.Driver == DriverSQLite {
		return dsn
	}

	parsedURL, err := url.Parse(dsn)
	if err != nil {
		return "invalid-url"
	}
	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
		}
	}
	return parsedURL.String()
}
