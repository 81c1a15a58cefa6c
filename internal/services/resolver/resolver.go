// Package resolver probes ticker symbols across exchange suffixes
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/models"
)

// Service implements SymbolResolver over a MarketDataClient. Candidates are
// probed strictly in order and the first non-empty fetch wins; there is no
// parallel probing and no scoring among variants.
type Service struct {
	client   interfaces.MarketDataClient
	suffixes []string
	logger   *common.Logger
}

// NewService creates a new symbol resolver. suffixes is the ordered probe
// list (e.g. .NS first); the raw symbol is always tried before any suffix.
func NewService(client interfaces.MarketDataClient, suffixes []string, logger *common.Logger) *Service {
	return &Service{
		client:   client,
		suffixes: suffixes,
		logger:   logger,
	}
}

// ResolveDaily resolves a raw ticker using the training window: 6 months of
// daily bars.
func (s *Service) ResolveDaily(ctx context.Context, raw string) (string, []models.Bar, error) {
	return s.resolve(ctx, raw)
}

// ResolveIntraday resolves a raw ticker using a 1-day window of minute bars.
func (s *Service) ResolveIntraday(ctx context.Context, raw string) (string, []models.Bar, error) {
	return s.resolve(ctx, raw, interfaces.WithRange("1d"), interfaces.WithInterval("1m"))
}

func (s *Service) resolve(ctx context.Context, raw string, opts ...interfaces.BarOption) (string, []models.Bar, error) {
	candidates := s.Candidates(raw)

	for _, candidate := range candidates {
		bars, err := s.client.GetBars(ctx, candidate, opts...)
		if err != nil {
			return "", nil, fmt.Errorf("fetch %s: %w", candidate, err)
		}
		if len(bars) == 0 {
			continue
		}
		if candidate != candidates[0] {
			s.logger.Debug().
				Str("raw", raw).
				Str("resolved", candidate).
				Msg("Symbol resolved via exchange suffix")
		}
		return candidate, bars, nil
	}

	return "", nil, fmt.Errorf("'%s': %w", raw, interfaces.ErrSymbolNotFound)
}

// Candidates returns the ordered probe list for a raw ticker: the uppercased
// symbol itself, then each configured suffix appended. A symbol that already
// carries a configured suffix gets no variants.
func (s *Service) Candidates(raw string) []string {
	symbol := strings.ToUpper(strings.TrimSpace(raw))

	candidates := []string{symbol}
	if s.hasKnownSuffix(symbol) {
		return candidates
	}
	for _, suffix := range s.suffixes {
		candidates = append(candidates, symbol+suffix)
	}
	return candidates
}

func (s *Service) hasKnownSuffix(symbol string) bool {
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(symbol, suffix) {
			return true
		}
	}
	return false
}

// Compile-time check
var _ interfaces.SymbolResolver = (*Service)(nil)
