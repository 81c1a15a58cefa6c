// Package interfaces defines service contracts for Augur
package interfaces

import (
	"context"

	"github.com/bobmcallan/augur/internal/models"
)

// SymbolResolver probes a raw ticker across exchange suffixes until one
// variant yields data.
type SymbolResolver interface {
	// ResolveDaily resolves with the training window (6 months of daily
	// bars) and returns the resolved symbol with its bars.
	ResolveDaily(ctx context.Context, raw string) (string, []models.Bar, error)

	// ResolveIntraday resolves with a 1-day window of minute bars.
	ResolveIntraday(ctx context.Context, raw string) (string, []models.Bar, error)
}

// ForecastService trains, caches, and serves per-symbol forecasts
type ForecastService interface {
	// Predict returns the three 30-step forecasts and their RMSE for a
	// symbol, training on a cache miss and replaying stored artifacts on a
	// hit.
	Predict(ctx context.Context, symbol string) (*models.StockPrediction, error)

	// RenderChart renders recent closes plus the three forecast tracks as
	// a PNG.
	RenderChart(ctx context.Context, symbol string) ([]byte, error)
}

// QuoteService serves live intraday quotes
type QuoteService interface {
	// GetRealTimeQuote returns the latest intraday snapshot for a symbol.
	GetRealTimeQuote(ctx context.Context, symbol string) (*models.RealTimeQuote, error)
}

// SearchService serves ticker autocomplete
type SearchService interface {
	// Autocomplete returns up to 50 candidates for a query. An empty
	// result is a valid empty slice, not an error.
	Autocomplete(ctx context.Context, query string) ([]models.SymbolMatch, error)
}
