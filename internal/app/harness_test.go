package app

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/models"
)

// --- Mocks ---

type mockForecastService struct {
	prediction *models.StockPrediction
	png        []byte
	err        error
	calls      []string
}

func (m *mockForecastService) Predict(_ context.Context, symbol string) (*models.StockPrediction, error) {
	m.calls = append(m.calls, symbol)
	if m.err != nil {
		return nil, m.err
	}
	return m.prediction, nil
}

func (m *mockForecastService) RenderChart(_ context.Context, symbol string) ([]byte, error) {
	m.calls = append(m.calls, symbol)
	if m.err != nil {
		return nil, m.err
	}
	return m.png, nil
}

type mockQuoteService struct {
	quote *models.RealTimeQuote
	err   error
}

func (m *mockQuoteService) GetRealTimeQuote(_ context.Context, _ string) (*models.RealTimeQuote, error) {
	return m.quote, m.err
}

type mockSearchService struct {
	matches []models.SymbolMatch
	err     error
}

func (m *mockSearchService) Autocomplete(_ context.Context, _ string) ([]models.SymbolMatch, error) {
	return m.matches, m.err
}

// fixedPrediction returns a deterministic 30-step prediction for tests.
func fixedPrediction(symbol string) *models.StockPrediction {
	track := func(start float64) []float64 {
		values := make([]float64, 30)
		for i := range values {
			values[i] = start + float64(i)*0.25
		}
		return values
	}
	return &models.StockPrediction{
		Symbol:          symbol,
		MAPrediction:    track(100),
		ARMAPrediction:  track(101),
		ARIMAPrediction: track(102),
		RMSE:            models.RMSEByModel{MA: 4.2011, ARMA: 3.1409, ARIMA: 2.7182},
	}
}

// --- Harness ---

// testHarness provides an in-process MCP client connected to an Augur server
// with mock services. Tests can configure mock behavior before calling tools.
type testHarness struct {
	t            *testing.T
	client       *client.Client
	mcpServer    *server.MCPServer
	mockForecast *mockForecastService
	mockQuote    *mockQuoteService
	mockSearch   *mockSearchService
	logger       *common.Logger
}

// newTestHarness creates an Augur MCP server with mock services and an
// in-process client. The client is already initialized and ready to call
// tools.
func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	logger := common.NewSilentLogger()
	mockFS := &mockForecastService{prediction: fixedPrediction("TCS.NS")}
	mockQS := &mockQuoteService{}
	mockSS := &mockSearchService{}

	mcpServer := server.NewMCPServer(
		"augur-test",
		"test",
		server.WithToolCapabilities(true),
	)

	// Register tools under test
	mcpServer.AddTool(createGetVersionTool(), handleGetVersion())
	mcpServer.AddTool(createPredictStockTool(), handlePredictStock(mockFS, logger))
	mcpServer.AddTool(createGetRealtimeQuoteTool(), handleGetRealtimeQuote(mockQS, logger))
	mcpServer.AddTool(createSearchTickersTool(), handleSearchTickers(mockSS, logger))

	// Create in-process client
	c, err := client.NewInProcessClient(mcpServer)
	if err != nil {
		t.Fatalf("Failed to create in-process client: %v", err)
	}

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Failed to start client: %v", err)
	}

	// Initialize MCP protocol handshake
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "augur-harness",
		Version: "1.0.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		t.Fatalf("Failed to initialize MCP: %v", err)
	}

	h := &testHarness{
		t:            t,
		client:       c,
		mcpServer:    mcpServer,
		mockForecast: mockFS,
		mockQuote:    mockQS,
		mockSearch:   mockSS,
		logger:       logger,
	}

	t.Cleanup(h.close)
	return h
}

// callTool invokes an MCP tool by name with the given arguments.
func (h *testHarness) callTool(name string, args map[string]any) (*mcp.CallToolResult, error) {
	h.t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return h.client.CallTool(context.Background(), req)
}

// getTextContent extracts text from a content block at the given index.
// Fails the test if index is out of range or content is not text.
func (h *testHarness) getTextContent(result *mcp.CallToolResult, index int) string {
	h.t.Helper()
	if index >= len(result.Content) {
		h.t.Fatalf("Content index %d out of range (have %d blocks)", index, len(result.Content))
	}
	tc, ok := result.Content[index].(mcp.TextContent)
	if !ok {
		h.t.Fatalf("Content[%d] is %T, not TextContent", index, result.Content[index])
	}
	return tc.Text
}

func (h *testHarness) close() {
	if h.client != nil {
		h.client.Close()
	}
}
