// Package storage provides the top-level StorageManager that coordinates
// the 2 storage areas: modeldb and artifacts.
package storage

import (
	"fmt"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/storage/artifacts"
	"github.com/bobmcallan/augur/internal/storage/modeldb"
)

// Manager implements interfaces.StorageManager using 2 storage areas.
type Manager struct {
	model    *modeldb.Store
	artifact *artifacts.Store
	logger   *common.Logger
}

// NewManager creates a new StorageManager with the 2 storage areas.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	modelStore, err := modeldb.NewStore(logger, config.Storage.Models.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create model store: %w", err)
	}

	artifactStore, err := artifacts.NewStore(logger, config.Storage.Artifacts.Path)
	if err != nil {
		modelStore.Close()
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	logger.Info().
		Str("models", config.Storage.Models.Path).
		Str("artifacts", config.Storage.Artifacts.Path).
		Msg("Storage manager initialized (2 areas)")

	return &Manager{
		model:    modelStore,
		artifact: artifactStore,
		logger:   logger,
	}, nil
}

func (m *Manager) ModelStore() interfaces.ModelStore {
	return m.model
}

func (m *Manager) ArtifactStore() interfaces.ArtifactStore {
	return m.artifact
}

func (m *Manager) Close() error {
	return m.model.Close()
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
