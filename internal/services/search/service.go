// Package search serves ticker autocomplete queries
package search

import (
	"context"
	"strings"
	"time"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/models"
)

// MaxResults caps how many candidates one query returns.
const MaxResults = 50

// Service implements SearchService. Each query runs under its own deadline
// so a slow provider cannot hold the request open.
type Service struct {
	client  interfaces.MarketDataClient
	timeout time.Duration
	logger  *common.Logger
}

// NewService creates a new search service.
func NewService(client interfaces.MarketDataClient, timeout time.Duration, logger *common.Logger) *Service {
	return &Service{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// Autocomplete returns up to MaxResults candidates for a query, dropping
// entries with no symbol or no usable name. No matches is an empty slice.
func (s *Service) Autocomplete(ctx context.Context, query string) ([]models.SymbolMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	matches, err := s.client.SearchSymbols(ctx, strings.TrimSpace(query), MaxResults)
	if err != nil {
		return nil, err
	}

	results := make([]models.SymbolMatch, 0, len(matches))
	for _, m := range matches {
		if m.Symbol == "" || m.Name == "" {
			continue
		}
		results = append(results, m)
		if len(results) == MaxResults {
			break
		}
	}

	s.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("Autocomplete served")

	return results, nil
}

// Compile-time check
var _ interfaces.SearchService = (*Service)(nil)
