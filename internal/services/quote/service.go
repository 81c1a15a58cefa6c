// Package quote serves live intraday quotes
package quote

import (
	"context"
	"math"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/models"
)

// Source labels where quote prices come from.
const Source = "yahoo"

// Service implements QuoteService. A quote is the most recent minute bar of
// the resolved symbol.
type Service struct {
	resolver interfaces.SymbolResolver
	logger   *common.Logger
}

// NewService creates a new quote service.
func NewService(resolver interfaces.SymbolResolver, logger *common.Logger) *Service {
	return &Service{
		resolver: resolver,
		logger:   logger,
	}
}

// GetRealTimeQuote resolves a raw symbol over a 1-day minute window and
// returns the last bar as a quote, prices rounded to 2 decimals.
func (s *Service) GetRealTimeQuote(ctx context.Context, raw string) (*models.RealTimeQuote, error) {
	symbol, bars, err := s.resolver.ResolveIntraday(ctx, raw)
	if err != nil {
		return nil, err
	}

	last := bars[len(bars)-1]
	quote := &models.RealTimeQuote{
		Symbol:    symbol,
		Source:    Source,
		Current:   round2(last.Close),
		High:      round2(last.High),
		Low:       round2(last.Low),
		Open:      round2(last.Open),
		Timestamp: last.Date.Format("2006-01-02 15:04:05"),
	}

	s.logger.Debug().
		Str("symbol", symbol).
		Float64("current", quote.Current).
		Str("timestamp", quote.Timestamp).
		Msg("Realtime quote served")

	return quote, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compile-time check
var _ interfaces.QuoteService = (*Service)(nil)
