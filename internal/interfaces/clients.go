// Package interfaces defines service contracts for Augur
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/augur/internal/models"
)

// MarketDataClient provides access to the market data provider
type MarketDataClient interface {
	// GetBars retrieves price bars for a symbol. Defaults to a 6-month
	// daily window; options narrow or reshape the query.
	GetBars(ctx context.Context, symbol string, opts ...BarOption) ([]models.Bar, error)

	// SearchSymbols retrieves up to limit ticker candidates for a free-text
	// query.
	SearchSymbols(ctx context.Context, query string, limit int) ([]models.SymbolMatch, error)
}

// BarOption configures bar requests
type BarOption func(*BarParams)

// BarParams holds bar query parameters
type BarParams struct {
	Range    string // provider range token, e.g. "6mo", "1d"
	Interval string // bar granularity, e.g. "1d", "1m"
	From     time.Time
	To       time.Time
}

// WithRange sets the lookback range for a bar query
func WithRange(r string) BarOption {
	return func(p *BarParams) {
		p.Range = r
	}
}

// WithInterval sets the bar granularity
func WithInterval(interval string) BarOption {
	return func(p *BarParams) {
		p.Interval = interval
	}
}

// WithDateRange sets an explicit date window instead of a range token
func WithDateRange(from, to time.Time) BarOption {
	return func(p *BarParams) {
		p.From = from
		p.To = to
	}
}
