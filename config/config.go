package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"bolao/database"
	"bolao/domain/entities"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP admin API
	HTTPAddr string

	// NATS configuration, empty disables publishing to NATS
	NATSServers string

	// Discord winner announcements, both must be set to enable them
	DiscordToken     string
	DiscordChannelID string

	// Defaults applied to new games
	AutoCloseOnWin            bool
	DefaultNumbersPerSequence int
	DefaultRequiredHits       int
	DefaultMaxNumber          int

	// Logging
	LogLevel  string
	LogFormat string // "json" or "text"

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// DiscordEnabled reports whether winner announcements go to Discord
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// GameDefaults returns the rules used for fields a new game leaves unset
func (c *Config) GameDefaults() entities.GameConfig {
	return entities.GameConfig{
		NumbersPerSequence: c.DefaultNumbersPerSequence,
		RequiredHits:       c.DefaultRequiredHits,
		MaxNumber:          c.DefaultMaxNumber,
		AutoCloseOnWin:     c.AutoCloseOnWin,
	}
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":8080"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),

		DefaultNumbersPerSequence: entities.DefaultNumbersPerSequence,
		DefaultRequiredHits:       entities.DefaultRequiredHits,
		DefaultMaxNumber:          entities.DefaultMaxNumber,

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),

		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if v := os.Getenv("AUTO_CLOSE_ON_WIN"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTO_CLOSE_ON_WIN %q: %w", v, err)
		}
		config.AutoCloseOnWin = parsed
	}

	intSettings := []struct {
		key    string
		target *int
	}{
		{"DEFAULT_NUMBERS_PER_SEQUENCE", &config.DefaultNumbersPerSequence},
		{"DEFAULT_REQUIRED_HITS", &config.DefaultRequiredHits},
		{"DEFAULT_MAX_NUMBER", &config.DefaultMaxNumber},
	}
	for _, s := range intSettings {
		v := os.Getenv(s.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid %s %q", s.key, v)
		}
		*s.target = parsed
	}

	if err := config.GameDefaults().Validate(); err != nil {
		return nil, fmt.Errorf("invalid game defaults: %w", err)
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		HTTPAddr:                  ":0",
		DefaultNumbersPerSequence: entities.DefaultNumbersPerSequence,
		DefaultRequiredHits:       entities.DefaultRequiredHits,
		DefaultMaxNumber:          entities.DefaultMaxNumber,
		LogLevel:                  "debug",
		LogFormat:                 "text",
		Environment:               "test",
	}
}
