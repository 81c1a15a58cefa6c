package app

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Augur MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handlePredictStock implements the predict_stock tool
func handlePredictStock(forecastService interfaces.ForecastService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		prediction, err := forecastService.Predict(ctx, symbol)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("Predict tool failed")
			return errorResult(fmt.Sprintf("Prediction error: %v", err)), nil
		}

		return textResult(formatPrediction(prediction)), nil
	}
}

// handleGetRealtimeQuote implements the get_realtime_quote tool
func handleGetRealtimeQuote(quoteService interfaces.QuoteService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		quote, err := quoteService.GetRealTimeQuote(ctx, symbol)
		if err != nil {
			logger.Error().Err(err).Str("symbol", symbol).Msg("Realtime quote tool failed")
			return errorResult(fmt.Sprintf("Quote error: %v", err)), nil
		}

		return textResult(formatQuote(quote)), nil
	}
}

// handleSearchTickers implements the search_tickers tool
func handleSearchTickers(searchService interfaces.SearchService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return errorResult("Error: query parameter is required"), nil
		}

		matches, err := searchService.Autocomplete(ctx, query)
		if err != nil {
			logger.Error().Err(err).Str("query", query).Msg("Search tool failed")
			return errorResult(fmt.Sprintf("Search error: %v", err)), nil
		}

		return textResult(formatMatches(query, matches)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
