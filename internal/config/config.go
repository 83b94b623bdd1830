package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Backend endpoints
	Backend BackendConfig

	// WebSocket configuration
	WebSocket WebSocketConfig

	// Rate limiting for outbound requests
	RateLimit RateLimitConfig

	// Local archive configuration
	Archive ArchiveConfig

	// Alert configuration
	Alerts AlertConfig

	// Console session configuration
	Console ConsoleConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// BackendConfig holds the ticket/frota backend endpoints
type BackendConfig struct {
	APIURL      string
	HTTPTimeout time.Duration
}

// WebSocketConfig holds the realtime channel configuration
type WebSocketConfig struct {
	URL             string
	ReconnectDelay  time.Duration
	WriteBufferSize int
	ReadBufferSize  int
}

// RateLimitConfig throttles outbound HTTP requests so a misbehaving
// console cannot hammer the backend
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// ArchiveConfig holds the local notification history configuration
type ArchiveConfig struct {
	Enabled bool
	Path    string
}

// AlertConfig controls the audio and desktop cues
type AlertConfig struct {
	Sound   bool
	Desktop bool
}

// ConsoleConfig holds optional pre-seeded credentials for headless runs
type ConsoleConfig struct {
	Email    string
	Password string
}

// LoggingConfig holds logging configuration. File is where logs go; the
// terminal itself belongs to the console UI.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Backend: BackendConfig{
			APIURL:      os.Getenv("API_URL"),
			HTTPTimeout: getDurationOrDefault("HTTP_TIMEOUT", 15*time.Second),
		},
		WebSocket: WebSocketConfig{
			URL:             os.Getenv("WS_URL"),
			ReconnectDelay:  getDurationOrDefault("WS_RECONNECT_DELAY", 3*time.Second),
			ReadBufferSize:  getIntOrDefault("WS_READ_BUFFER_SIZE", 1024),
			WriteBufferSize: getIntOrDefault("WS_WRITE_BUFFER_SIZE", 1024),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 20),
			BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 40),
		},
		Archive: ArchiveConfig{
			Enabled: getBoolOrDefault("ARCHIVE_ENABLED", true),
			Path:    getEnvOrDefault("ARCHIVE_PATH", defaultArchivePath()),
		},
		Alerts: AlertConfig{
			Sound:   getBoolOrDefault("ALERT_SOUND", true),
			Desktop: getBoolOrDefault("DESKTOP_NOTIFICATIONS", false),
		},
		Console: ConsoleConfig{
			Email:    os.Getenv("CONSOLE_EMAIL"),
			Password: os.Getenv("CONSOLE_PASSWORD"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			File:   getEnvOrDefault("LOG_FILE", "console.log"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "ticket-frota-console"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	// Required fields
	if c.Backend.APIURL == "" {
		errs = append(errs, "API_URL is required")
	}

	if c.WebSocket.URL == "" {
		errs = append(errs, "WS_URL is required")
	}

	// Logical validations
	if c.WebSocket.ReconnectDelay <= 0 {
		errs = append(errs, "WS_RECONNECT_DELAY must be positive")
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		errs = append(errs, "RATE_LIMIT_RPS must be positive")
	}

	if c.Archive.Enabled && c.Archive.Path == "" {
		errs = append(errs, "ARCHIVE_PATH is required when the archive is enabled")
	}

	if c.Console.Password != "" && c.Console.Email == "" {
		errs = append(errs, "CONSOLE_EMAIL is required when CONSOLE_PASSWORD is set")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func defaultArchivePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notifications.db"
	}
	return home + "/.local/share/ticket-frota-console/notifications.db"
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// String returns a redacted string representation of the config (safe for logging)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{API: %s, WS: %s, ReconnectDelay: %s, Archive: %v, Environment: %s}",
		c.Backend.APIURL,
		c.WebSocket.URL,
		c.WebSocket.ReconnectDelay,
		c.Archive.Enabled,
		c.App.Environment,
	)
}
