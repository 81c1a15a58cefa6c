package app

import (
	"context"
	"os"
	"time"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
)

// warmTrain pre-trains models for the configured symbols on startup so
// their first predict request is served from cache.
func warmTrain(ctx context.Context, forecastService interfaces.ForecastService, symbols []string, logger *common.Logger) {
	// Check env var override
	if os.Getenv("AUGUR_WARM_TRAIN") == "off" {
		logger.Info().Msg("Warm training: disabled via AUGUR_WARM_TRAIN=off")
		return
	}

	if len(symbols) == 0 {
		logger.Info().Msg("Warm training: no symbols configured, skipping")
		return
	}

	start := time.Now()
	trained := 0

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			logger.Warn().Int("trained", trained).Msg("Warm training: cancelled")
			return
		}

		// Predict trains and caches on a miss, replays the cache on a hit
		if _, err := forecastService.Predict(ctx, symbol); err != nil {
			logger.Warn().Err(err).Str("symbol", symbol).Msg("Warm training: symbol failed")
			continue
		}
		trained++
	}

	logger.Info().
		Int("symbols", trained).
		Dur("elapsed", time.Since(start)).
		Msg("Warm training: complete")
}
