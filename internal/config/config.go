package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// StorageConfig selects and configures the persistence adapter.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // "memory" or "sqlite"
	Path   string `mapstructure:"path"`   // sqlite database file
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds allowed origins, comma-separated in the environment.
type CORSConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Origins returns the configured origins as a list, nil meaning allow all.
func (c CORSConfig) Origins() []string {
	if c.AllowedOrigins == "" {
		return nil
	}
	return strings.Split(c.AllowedOrigins, ",")
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "data/driftwell.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("DRIFTWELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Non-prefixed fallbacks for common deployment environments.
	v.BindEnv("server.port", "PORT")
	v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// A missing config file is fine; env vars and defaults cover it.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
