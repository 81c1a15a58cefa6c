// Package modeldb implements ModelStore using BadgerHold.
// It holds one training record per resolved symbol.
package modeldb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/models"
)

// Store implements interfaces.ModelStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a ModelStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create model db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open model db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("ModelDB opened")
	return &Store{db: db, logger: logger}, nil
}

// Get returns the record stored for symbol, or ErrModelNotFound.
func (s *Store) Get(_ context.Context, symbol string) (*models.StockModelRecord, error) {
	var record models.StockModelRecord
	if err := s.db.Get(symbol, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("record for '%s': %w", symbol, interfaces.ErrModelNotFound)
		}
		return nil, fmt.Errorf("failed to get record for '%s': %w", symbol, err)
	}
	return &record, nil
}

// Upsert replaces any record stored for record.Symbol wholesale and stamps
// LastTrained. No field survives from a prior record.
func (s *Store) Upsert(_ context.Context, record *models.StockModelRecord) error {
	if record.Symbol == "" {
		return fmt.Errorf("record symbol is empty")
	}
	record.LastTrained = time.Now()
	if err := s.db.Upsert(record.Symbol, record); err != nil {
		return fmt.Errorf("failed to upsert record for '%s': %w", record.Symbol, err)
	}
	s.logger.Debug().Str("symbol", record.Symbol).Msg("Model record saved")
	return nil
}

// Close shuts down the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check
var _ interfaces.ModelStore = (*Store)(nil)
