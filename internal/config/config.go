package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// REST backend
	BackendBaseURL  string
	BackendAPIToken string

	// Backend selection
	DataBackend   string
	DataDirectory string

	// Local state
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Alerts worker
	AlertsInterval time.Duration

	// Snapshot cache
	CacheTTL time.Duration

	// Google Sheets export (optional)
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		BackendBaseURL:  getEnv("BACKEND_BASE_URL", "http://localhost:8080"),
		BackendAPIToken: getEnv("BACKEND_API_TOKEN", ""),

		DataBackend:   getEnv("DATA_BACKEND", "rest"),
		DataDirectory: getEnv("DATA_DIRECTORY", "data"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "budget_alerts"),

		AlertsInterval: getEnvDuration("ALERTS_INTERVAL", 15*time.Minute),
		CacheTTL:       getEnvDuration("CACHE_TTL", time.Minute),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", ""),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"rest", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate REST backend configuration
	if c.DataBackend == "rest" {
		if c.BackendBaseURL == "" {
			errors = append(errors, "backend base URL cannot be empty when using rest backend")
		} else if parsedURL, err := url.Parse(c.BackendBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid backend base URL '%s': %v", c.BackendBaseURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid backend base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	// Validate SQLite path and ensure its directory exists
	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate worker configuration
	if c.AlertsInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid alerts interval %v: must be at least 1 second", c.AlertsInterval))
	} else if c.AlertsInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid alerts interval %v: must be at most 24 hours", c.AlertsInterval))
	}

	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	} else if c.CacheTTL > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at most 1 hour", c.CacheTTL))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
