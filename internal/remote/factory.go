package remote

import (
	"context"
	"fmt"
	"log/slog"
)

// BackendType selects the remote backend implementation.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	MongoBackend  BackendType = "mongo"
	SheetsBackend BackendType = "sheets"
)

func (bt BackendType) String() string { return string(bt) }

// IsValid returns true if the backend type is valid.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, MongoBackend, SheetsBackend:
		return true
	default:
		return false
	}
}

// Config holds everything needed to construct a backend.
type Config struct {
	Type BackendType

	// Mongo specific
	MongoURI      string
	MongoDatabase string

	// Sheets specific
	SpreadsheetID string
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func(ctx context.Context) error

// New creates the configured backend and an optional cleanup function.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Client, CleanupFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, nil, fmt.Errorf("invalid remote backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case MongoBackend:
		client, err := NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize mongo backend: %w", err)
		}
		logger.Info("Initialized mongo remote backend", "database", cfg.MongoDatabase)
		return client, client.Close, nil
	case SheetsBackend:
		client, err := NewSheetsFromEnv(ctx, cfg.SpreadsheetID)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sheets backend: %w", err)
		}
		logger.Info("Initialized sheets remote backend", "spreadsheet_id", cfg.SpreadsheetID)
		return client, nil, nil
	default:
		logger.Info("Initialized memory remote backend")
		return NewMemory(), nil, nil
	}
}
