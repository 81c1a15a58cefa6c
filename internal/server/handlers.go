package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/models"
)

// handleRoot serves the service descriptor at GET /. Unknown paths land
// here too and get a 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	WriteJSON(w, http.StatusOK, models.ServiceInfo{
		Name:    "augur",
		Version: common.GetVersion(),
		Message: "Stock prediction API",
		Endpoints: []string{
			"/predict/{symbol}",
			"/predict/{symbol}/chart",
			"/realtime/{symbol}",
			"/autocomplete/{query}",
			"/api/health",
			"/api/version",
			"/mcp",
		},
	})
}

// handlePredict serves GET /predict/{symbol}: the three model forecasts
// with their RMSE.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	prediction, err := s.app.ForecastService.Predict(r.Context(), symbol)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, prediction)
}

// handleChart serves GET /predict/{symbol}/chart: the forecast rendered
// as a PNG.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	png, err := s.app.ForecastService.RenderChart(r.Context(), symbol)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	WritePNG(w, png)
}

// handleRealtime serves GET /realtime/{symbol}: the latest intraday
// snapshot.
func (s *Server) handleRealtime(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/realtime/", "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	quote, err := s.app.QuoteService.GetRealTimeQuote(r.Context(), symbol)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}

// handleAutocomplete serves GET /autocomplete/{query}: ticker candidates
// for a free-text query. A provider timeout maps to 504 on this endpoint
// only; other endpoints report timeouts as internal errors.
func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := PathParam(r, "/autocomplete/", "")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "query is required in path")
		return
	}

	matches, err := s.app.SearchService.Autocomplete(r.Context(), query)
	if err != nil {
		if errors.Is(err, interfaces.ErrUpstreamTimeout) {
			WriteError(w, http.StatusGatewayTimeout, err.Error())
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, matches)
}

// writeServiceError maps service failures onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, interfaces.ErrSymbolNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, interfaces.ErrInsufficientHistory):
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
