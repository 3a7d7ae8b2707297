// Package storage persists normalized product records. Backends share
// one interface so the pipeline does not care whether records land in
// a file or a database.
package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/winzyu/beauty-product-analysis/internal/config"
	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// Storage is the interface for all record sinks.
type Storage interface {
	// Store persists a batch of records.
	Store(records []types.ProductRecord) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// New creates the storage backend selected by the configuration.
func New(cfg *config.StorageConfig, logger *slog.Logger) (Storage, error) {
	switch cfg.Type {
	case "json":
		return NewJSONStorage(filepath.Join(cfg.OutputPath, "products.json"), logger)
	case "jsonl":
		return NewJSONLStorage(filepath.Join(cfg.OutputPath, "products.jsonl"), logger)
	case "csv":
		return NewCSVStorage(filepath.Join(cfg.OutputPath, "products.csv"), logger)
	case "mongodb":
		return NewMongoStorage(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	default:
		return nil, &types.StorageError{
			Backend: cfg.Type,
			Err:     fmt.Errorf("unsupported storage type"),
		}
	}
}

// MultiStorage fans records out to several backends.
type MultiStorage struct {
	backends []Storage
	logger   *slog.Logger
}

// NewMultiStorage creates a storage that writes to every backend.
func NewMultiStorage(backends []Storage, logger *slog.Logger) *MultiStorage {
	return &MultiStorage{
		backends: backends,
		logger:   logger.With("component", "multi_storage"),
	}
}

func (s *MultiStorage) Name() string { return "multi" }

func (s *MultiStorage) Store(records []types.ProductRecord) error {
	var firstErr error
	for _, backend := range s.backends {
		if err := backend.Store(records); err != nil {
			s.logger.Error("backend store failed", "backend", backend.Name(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *MultiStorage) Close() error {
	var firstErr error
	for _, backend := range s.backends {
		if err := backend.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
