// Package forecast trains, caches, and serves per-symbol price forecasts
package forecast

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/models"
)

// Service implements ForecastService. Each request resolves the symbol,
// then either replays the stored artifacts for it or trains fresh models
// and persists them. Concurrent requests for the same unseen symbol may
// both train; the store's upsert makes the last writer win.
type Service struct {
	resolver interfaces.SymbolResolver
	storage  interfaces.StorageManager
	logger   *common.Logger
}

// NewService creates a new forecast service.
func NewService(resolver interfaces.SymbolResolver, storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		resolver: resolver,
		storage:  storage,
		logger:   logger,
	}
}

// Predict returns the three 30-step forecasts and their RMSE for a raw
// symbol.
func (s *Service) Predict(ctx context.Context, raw string) (*models.StockPrediction, error) {
	symbol, bars, err := s.resolver.ResolveDaily(ctx, raw)
	if err != nil {
		return nil, err
	}
	return s.predictResolved(ctx, symbol, bars)
}

func (s *Service) predictResolved(ctx context.Context, symbol string, bars []models.Bar) (*models.StockPrediction, error) {
	record, err := s.storage.ModelStore().Get(ctx, symbol)
	switch {
	case err == nil:
		return s.replay(ctx, record)
	case errors.Is(err, interfaces.ErrModelNotFound):
		return s.trainAndPersist(ctx, symbol, models.Closes(bars))
	default:
		return nil, err
	}
}

// replay loads the three artifacts behind a record and re-forecasts from
// their stored state. RMSE comes straight from the record: the accuracy
// metrics describe the original training run, not current data.
func (s *Service) replay(ctx context.Context, record *models.StockModelRecord) (*models.StockPrediction, error) {
	forecasts := make(map[models.ModelKind][]float64, len(models.ModelKinds))
	for _, kind := range models.ModelKinds {
		artifact, err := s.storage.ArtifactStore().Load(ctx, record.ArtifactFor(kind))
		if err != nil {
			return nil, fmt.Errorf("load %s artifact for %s: %w", kind, record.Symbol, err)
		}
		forecast, err := replayForecast(artifact, Horizon)
		if err != nil {
			return nil, fmt.Errorf("replay %s forecast for %s: %w", kind, record.Symbol, err)
		}
		forecasts[kind] = forecast
	}

	s.logger.Debug().
		Str("symbol", record.Symbol).
		Time("last_trained", record.LastTrained).
		Msg("Forecast served from cached models")

	return &models.StockPrediction{
		Symbol:          record.Symbol,
		MAPrediction:    forecasts[models.ModelMA],
		ARMAPrediction:  forecasts[models.ModelARMA],
		ARIMAPrediction: forecasts[models.ModelARIMA],
		RMSE: models.RMSEByModel{
			MA:    record.RMSEMA,
			ARMA:  record.RMSEARMA,
			ARIMA: record.RMSEARIMA,
		},
	}, nil
}

// trainAndPersist fits the three models, saves each artifact, then upserts
// the record. The record goes in last so a failure mid-save never leaves a
// record pointing at missing artifacts.
func (s *Service) trainAndPersist(ctx context.Context, symbol string, closes []float64) (*models.StockPrediction, error) {
	outcomes, err := s.train(symbol, closes)
	if err != nil {
		return nil, err
	}

	record := &models.StockModelRecord{
		Symbol:        symbol,
		MAArtifact:    models.ArtifactKey(symbol, models.ModelMA),
		ARMAArtifact:  models.ArtifactKey(symbol, models.ModelARMA),
		ARIMAArtifact: models.ArtifactKey(symbol, models.ModelARIMA),
		RMSEMA:        outcomes[models.ModelMA].rmse,
		RMSEARMA:      outcomes[models.ModelARMA].rmse,
		RMSEARIMA:     outcomes[models.ModelARIMA].rmse,
	}

	for _, kind := range models.ModelKinds {
		if err := s.storage.ArtifactStore().Save(ctx, record.ArtifactFor(kind), outcomes[kind].artifact); err != nil {
			return nil, fmt.Errorf("save %s artifact for %s: %w", kind, symbol, err)
		}
	}

	if err := s.storage.ModelStore().Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("persist record for %s: %w", symbol, err)
	}

	s.logger.Info().
		Str("symbol", symbol).
		Int("observations", len(closes)).
		Float64("rmse_ma", record.RMSEMA).
		Float64("rmse_arma", record.RMSEARMA).
		Float64("rmse_arima", record.RMSEARIMA).
		Msg("Models trained and cached")

	return &models.StockPrediction{
		Symbol:          symbol,
		MAPrediction:    outcomes[models.ModelMA].forecast,
		ARMAPrediction:  outcomes[models.ModelARMA].forecast,
		ARIMAPrediction: outcomes[models.ModelARIMA].forecast,
		RMSE: models.RMSEByModel{
			MA:    record.RMSEMA,
			ARMA:  record.RMSEARMA,
			ARIMA: record.RMSEARIMA,
		},
	}, nil
}

// Compile-time check
var _ interfaces.ForecastService = (*Service)(nil)
