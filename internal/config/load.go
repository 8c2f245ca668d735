package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of every environment variable read by Load.
	EnvPrefix = "TASKS"

	// ConfigFileEnv names the environment variable holding an explicit config file path.
	ConfigFileEnv = "TASKS_CONFIG_FILE"

	dotEnvFile = ".env"
)

// legacyEnv maps config keys to the environment variable names used by
// earlier deployments of the service. They are consulted after the
// TASKS_-prefixed name.
var legacyEnv = map[string]string{
	"database.host":     "MYSQL_HOST",
	"database.user":     "MYSQL_USER",
	"database.password": "MYSQL_PASSWORD",
	"database.name":     "MYSQL_DATABASE",
}

// Load configuration from a .env file, environment variables and optionally a config file.
// Environment variables take precedence over values from config files, and
// variables already present in the process environment are never overridden
// by the .env file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s file: %w", dotEnvFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		envName := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "host.docker.internal")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "my_password")
	v.SetDefault("database.name", "my_database")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "tasks.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("api.legacy_responses", true)
	v.SetDefault("api.cors_allowed_origins", []string{"*"})
	v.SetDefault("api.max_body_bytes", DefaultMaxBodyBytes)
}
