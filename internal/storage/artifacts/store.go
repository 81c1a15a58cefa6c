// Package artifacts implements file-based storage for fitted model
// snapshots. One JSON file per symbol and model kind, written atomically.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/models"
)

// Store provides file-based JSON storage for model artifacts.
type Store struct {
	basePath string
	logger   *common.Logger
}

// NewStore creates an artifact store rooted at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact store path %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Artifact store opened")
	return &Store{basePath: path, logger: logger}, nil
}

// Save writes the artifact under key atomically. An existing artifact at the
// same key is replaced.
func (s *Store) Save(_ context.Context, key string, artifact *models.ModelArtifact) error {
	if err := writeJSON(s.basePath, key, artifact); err != nil {
		return fmt.Errorf("failed to save artifact '%s': %w", key, err)
	}
	s.logger.Debug().Str("key", key).Msg("Artifact saved")
	return nil
}

// Load reads the artifact stored under key.
func (s *Store) Load(_ context.Context, key string) (*models.ModelArtifact, error) {
	var artifact models.ModelArtifact
	if err := readJSON(s.basePath, key, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// Exists reports whether an artifact is stored under key.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	if _, err := os.Stat(filePath(s.basePath, key)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat artifact '%s': %w", key, err)
	}
	return true, nil
}

// List returns the keys of all stored artifacts.
func (s *Store) List(_ context.Context) ([]string, error) {
	return listKeys(s.basePath)
}

// DataPath returns the base artifact path.
func (s *Store) DataPath() string {
	return s.basePath
}

// --- helpers ---

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func filePath(dir, key string) string {
	return filepath.Join(dir, sanitizeKey(key)+".json")
}

func readJSON(dir, key string, dest interface{}) error {
	path := filePath(dir, key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("artifact '%s' not found", key)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("artifact '%s' is empty", key)
	}
	return json.Unmarshal(data, dest)
}

func writeJSON(dir, key string, data interface{}) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	target := filePath(dir, key)
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func listKeys(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, ".tmp-") {
			keys = append(keys, strings.TrimSuffix(name, ".json"))
		}
	}
	return keys, nil
}

// Compile-time check
var _ interfaces.ArtifactStore = (*Store)(nil)
