package app

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Augur MCP server version and status. Use this to verify connectivity."),
	)
}

// createPredictStockTool returns the predict_stock tool definition
func createPredictStockTool() mcp.Tool {
	return mcp.NewTool("predict_stock",
		mcp.WithDescription("Forecast the next 30 trading days of a stock's closing price using MA, ARMA, and ARIMA models. Returns all three forecast tracks with each model's held-out RMSE. Cached models are reused when available."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker, with or without an exchange suffix (e.g. 'TCS', 'TCS.NS', 'VOD.L')"),
		),
	)
}

// createGetRealtimeQuoteTool returns the get_realtime_quote tool definition
func createGetRealtimeQuoteTool() mcp.Tool {
	return mcp.NewTool("get_realtime_quote",
		mcp.WithDescription("Get the latest intraday price snapshot for a stock: current, open, high, low, and the quote timestamp in exchange-local time."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker, with or without an exchange suffix (e.g. 'TCS', 'AAPL')"),
		),
	)
}

// createSearchTickersTool returns the search_tickers tool definition
func createSearchTickersTool() mcp.Tool {
	return mcp.NewTool("search_tickers",
		mcp.WithDescription("Search for ticker symbols by company name or partial symbol. Returns up to 50 matches with symbol, company name, and exchange."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text query (e.g. 'tata consultancy', 'AAPL')"),
		),
	)
}
