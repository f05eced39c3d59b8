package backend

import (
	"fmt"
	"log/slog"

	"fintrack/internal/backend/memory"
	"fintrack/internal/backend/rest"
)

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// REST specific
	BaseURL  string
	APIToken string

	// Memory backend specific
	DataDirectory string
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == RESTBackend && c.BaseURL == "" {
		return fmt.Errorf("backend base URL is required for rest backend")
	}
	return nil
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(config Config) (*Result, error)
}

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case RESTBackend:
		f.logger.Info("Initialized REST backend", "base_url", config.BaseURL, "authenticated", config.APIToken != "")
		return &Result{Backend: rest.New(config.BaseURL, config.APIToken)}, nil
	case MemoryBackend:
		dataDir := config.DataDirectory
		if dataDir == "" {
			dataDir = "data"
		}
		f.logger.Info("Initialized memory backend", "data_directory", dataDir)
		return &Result{Backend: memory.NewFromFiles(dataDir)}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
