package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string        `yaml:"port" env:"SERVER_PORT"`
		Mode            string        `yaml:"mode" env:"SERVER_MODE"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	JWT struct {
		Secret                string        `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration time.Duration `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string        `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// Latency is the simulated network delay in front of every command
	Latency struct {
		Enabled    bool                     `yaml:"enabled" env:"LATENCY_ENABLED"`
		Default    time.Duration            `yaml:"default" env:"LATENCY_DEFAULT"`
		Operations map[string]time.Duration `yaml:"operations" env:"LATENCY_OPERATIONS"`
	} `yaml:"latency"`

	Simulator struct {
		Enabled   bool                     `yaml:"enabled" env:"SIMULATOR_ENABLED"`
		Seed      uint64                   `yaml:"seed" env:"SIMULATOR_SEED"`
		Intervals map[string]time.Duration `yaml:"intervals" env:"SIMULATOR_INTERVALS"`
	} `yaml:"simulator"`

	Toast struct {
		Display time.Duration `yaml:"display" env:"TOAST_DISPLAY"`
		Fade    time.Duration `yaml:"fade" env:"TOAST_FADE"`
	} `yaml:"toast"`

	Feed struct {
		Timezone string `yaml:"timezone" env:"FEED_TIMEZONE"`
	} `yaml:"feed"`

	Seed struct {
		CurrentUserID string `yaml:"current_user_id" env:"SEED_CURRENT_USER_ID"`
		// Fixture replaces the embedded fixture when set
		Fixture string `yaml:"fixture" env:"SEED_FIXTURE"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file, an optional .env file and
// environment variables, in that order of precedence (last wins).
func LoadConfig(configPath string) (*Config, error) {
	return load(configPath, ".env")
}

func load(configPath, dotenvPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// godotenv never overrides variables that are already set
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ShutdownTimeout = 5 * time.Second

	config.JWT.AccessTokenExpiration = 24 * time.Hour
	config.JWT.Issuer = "campusbuzz.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Latency.Enabled = true
	config.Latency.Default = 400 * time.Millisecond

	config.Simulator.Enabled = true

	config.Toast.Display = 5 * time.Second
	config.Toast.Fade = 300 * time.Millisecond

	config.Feed.Timezone = "Local"

	config.Seed.CurrentUserID = "u1"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if config.JWT.AccessTokenExpiration <= 0 {
		return fmt.Errorf("JWT access token expiration must be positive")
	}
	if config.Seed.CurrentUserID == "" {
		return fmt.Errorf("seed current user id is required")
	}
	if config.Latency.Default < 0 {
		return fmt.Errorf("latency default must not be negative")
	}
	if config.Toast.Display <= 0 || config.Toast.Fade < 0 {
		return fmt.Errorf("toast display must be positive and fade must not be negative")
	}
	if _, err := config.Location(); err != nil {
		return fmt.Errorf("invalid feed timezone %q: %w", config.Feed.Timezone, err)
	}
	return nil
}

// Location returns the time zone used for feed date filters
func (c *Config) Location() (*time.Location, error) {
	if c.Feed.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Feed.Timezone)
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
