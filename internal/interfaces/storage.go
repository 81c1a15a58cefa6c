// Package interfaces defines service contracts for Augur
package interfaces

import (
	"context"

	"github.com/bobmcallan/augur/internal/models"
)

// StorageManager coordinates the two storage backends
type StorageManager interface {
	ModelStore() ModelStore
	ArtifactStore() ArtifactStore

	// Lifecycle
	Close() error
}

// ModelStore persists one StockModelRecord per symbol.
type ModelStore interface {
	// Get returns the record for a symbol or ErrModelNotFound.
	Get(ctx context.Context, symbol string) (*models.StockModelRecord, error)

	// Upsert fully replaces any record for record.Symbol and stamps
	// LastTrained.
	Upsert(ctx context.Context, record *models.StockModelRecord) error

	Close() error
}

// ArtifactStore persists serialized model snapshots, one file per key.
type ArtifactStore interface {
	Save(ctx context.Context, key string, artifact *models.ModelArtifact) error
	Load(ctx context.Context, key string) (*models.ModelArtifact, error)
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context) ([]string, error)
}
