package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/augur/internal/app"
	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/models"
)

// --- Mocks ---

type mockForecastService struct {
	prediction *models.StockPrediction
	png        []byte
	err        error
	calls      []string
}

func (m *mockForecastService) Predict(ctx context.Context, symbol string) (*models.StockPrediction, error) {
	m.calls = append(m.calls, symbol)
	if m.err != nil {
		return nil, m.err
	}
	return m.prediction, nil
}

func (m *mockForecastService) RenderChart(ctx context.Context, symbol string) ([]byte, error) {
	m.calls = append(m.calls, symbol+"/chart")
	if m.err != nil {
		return nil, m.err
	}
	return m.png, nil
}

type mockQuoteService struct {
	quote     *models.RealTimeQuote
	err       error
	gotSymbol string
}

func (m *mockQuoteService) GetRealTimeQuote(ctx context.Context, symbol string) (*models.RealTimeQuote, error) {
	m.gotSymbol = symbol
	if m.err != nil {
		return nil, m.err
	}
	return m.quote, nil
}

type mockSearchService struct {
	matches  []models.SymbolMatch
	err      error
	gotQuery string
}

func (m *mockSearchService) Autocomplete(ctx context.Context, query string) ([]models.SymbolMatch, error) {
	m.gotQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}

type serverMocks struct {
	forecast *mockForecastService
	quote    *mockQuoteService
	search   *mockSearchService
}

func newTestServer(t *testing.T) (*Server, *serverMocks) {
	t.Helper()
	mocks := &serverMocks{
		forecast: &mockForecastService{},
		quote:    &mockQuoteService{},
		search:   &mockSearchService{},
	}
	a := &app.App{
		Config:          common.NewDefaultConfig(),
		Logger:          common.NewSilentLogger(),
		ForecastService: mocks.forecast,
		QuoteService:    mocks.quote,
		SearchService:   mocks.search,
		MCPServer:       mcpserver.NewMCPServer("augur-test", "test"),
	}
	return NewServer(a), mocks
}

func doRequest(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func fixedPrediction(symbol string) *models.StockPrediction {
	track := func(start float64) []float64 {
		out := make([]float64, 30)
		for i := range out {
			out[i] = start + float64(i)*0.25
		}
		return out
	}
	return &models.StockPrediction{
		Symbol:          symbol,
		MAPrediction:    track(100),
		ARMAPrediction:  track(101),
		ARIMAPrediction: track(102),
		RMSE:            models.RMSEByModel{MA: 4.2011, ARMA: 3.1409, ARIMA: 2.7182},
	}
}

// --- Predict ---

func TestPredictEndpoint_ReturnsForecast(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.forecast.prediction = fixedPrediction("TCS.NS")

	rec := doRequest(t, srv, http.MethodGet, "/predict/TCS")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, []string{"TCS"}, mocks.forecast.calls)

	var resp models.StockPrediction
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "TCS.NS", resp.Symbol)
	assert.Len(t, resp.MAPrediction, 30)
	assert.Len(t, resp.ARMAPrediction, 30)
	assert.Len(t, resp.ARIMAPrediction, 30)
	assert.Equal(t, 2.7182, resp.RMSE.ARIMA)
}

func TestPredictEndpoint_WireKeys(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.forecast.prediction = fixedPrediction("TCS.NS")

	rec := doRequest(t, srv, http.MethodGet, "/predict/TCS")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"symbol", "MA_Prediction", "ARMA_Prediction", "ARIMA_Prediction", "RMSE"} {
		assert.Contains(t, raw, key)
	}
}

func TestPredictEndpoint_EmptySymbol(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/predict/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictEndpoint_UnknownSymbol(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.forecast.err = fmt.Errorf("symbol 'ZZZQ': %w", interfaces.ErrSymbolNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/predict/ZZZQ")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "ZZZQ")
}

func TestPredictEndpoint_ShortHistory(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.forecast.err = fmt.Errorf("symbol 'NEWIPO.NS': %w", interfaces.ErrInsufficientHistory)

	rec := doRequest(t, srv, http.MethodGet, "/predict/NEWIPO")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// A provider timeout during prediction is an internal failure. Only the
// autocomplete endpoint reports 504.
func TestPredictEndpoint_TimeoutIsInternalError(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.forecast.err = fmt.Errorf("fetching history: %w", interfaces.ErrUpstreamTimeout)

	rec := doRequest(t, srv, http.MethodGet, "/predict/TCS")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPredictEndpoint_MethodNotAllowed(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.forecast.prediction = fixedPrediction("TCS.NS")

	rec := doRequest(t, srv, http.MethodPost, "/predict/TCS")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
	assert.Empty(t, mocks.forecast.calls)
}

// --- Chart ---

func TestChartEndpoint_ReturnsPNG(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.forecast.png = []byte("\x89PNG\r\n\x1a\nfakebody")

	rec := doRequest(t, srv, http.MethodGet, "/predict/TCS/chart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, mocks.forecast.png, rec.Body.Bytes())
	assert.Equal(t, []string{"TCS/chart"}, mocks.forecast.calls)
}

func TestChartEndpoint_ExtraPathSegments(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/predict/TCS/chart/extra")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/predict/TCS/history")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChartEndpoint_ErrorMapsLikePredict(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.forecast.err = fmt.Errorf("symbol 'ZZZQ': %w", interfaces.ErrSymbolNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/predict/ZZZQ/chart")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Realtime ---

func TestRealtimeEndpoint_ReturnsQuote(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.quote.quote = &models.RealTimeQuote{
		Symbol:    "TCS.NS",
		Source:    "yahoo",
		Current:   102.68,
		High:      103.46,
		Low:       100.99,
		Open:      101.2,
		Timestamp: "2026-03-02 15:29:00",
	}

	rec := doRequest(t, srv, http.MethodGet, "/realtime/TCS")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "TCS", mocks.quote.gotSymbol)

	var resp models.RealTimeQuote
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "TCS.NS", resp.Symbol)
	assert.Equal(t, "yahoo", resp.Source)
	assert.Equal(t, 102.68, resp.Current)
	assert.Equal(t, "2026-03-02 15:29:00", resp.Timestamp)
}

func TestRealtimeEndpoint_EmptySymbol(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/realtime/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRealtimeEndpoint_UnknownSymbol(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.quote.err = fmt.Errorf("symbol 'NOPE': %w", interfaces.ErrSymbolNotFound)

	rec := doRequest(t, srv, http.MethodGet, "/realtime/NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Autocomplete ---

func TestAutocompleteEndpoint_ReturnsMatches(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.search.matches = []models.SymbolMatch{
		{Symbol: "TATAMOTORS.NS", Name: "Tata Motors Limited", Exchange: "NSI"},
		{Symbol: "TATAMTRDVR.NS", Name: "Tata Motors DVR", Exchange: "NSI"},
	}

	rec := doRequest(t, srv, http.MethodGet, "/autocomplete/tata")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "tata", mocks.search.gotQuery)

	var resp []models.SymbolMatch
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "TATAMOTORS.NS", resp[0].Symbol)
}

func TestAutocompleteEndpoint_EmptyResultIsArray(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.search.matches = []models.SymbolMatch{}

	rec := doRequest(t, srv, http.MethodGet, "/autocomplete/zzzz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestAutocompleteEndpoint_TimeoutMapsTo504(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.search.err = fmt.Errorf("searching 'tata': %w", interfaces.ErrUpstreamTimeout)

	rec := doRequest(t, srv, http.MethodGet, "/autocomplete/tata")
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "upstream timeout")
}

func TestAutocompleteEndpoint_GenericErrorIs500(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.search.err = fmt.Errorf("decode payload: unexpected EOF")

	rec := doRequest(t, srv, http.MethodGet, "/autocomplete/tata")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAutocompleteEndpoint_EmptyQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/autocomplete/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Root + system ---

func TestRootEndpoint_Descriptor(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ServiceInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "augur", resp.Name)
	assert.NotEmpty(t, resp.Version)
	assert.Contains(t, resp.Endpoints, "/predict/{symbol}")
	assert.Contains(t, resp.Endpoints, "/autocomplete/{query}")
}

func TestRootEndpoint_UnknownPathIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestVersionEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/version")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["version"])
}
