package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/augur/internal/clients/yahoo"
	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/services/forecast"
	"github.com/bobmcallan/augur/internal/services/quote"
	"github.com/bobmcallan/augur/internal/services/resolver"
	"github.com/bobmcallan/augur/internal/services/search"
	"github.com/bobmcallan/augur/internal/storage"
)

// App holds all initialized services, clients, and the MCP server.
// It is the shared core used by both cmd/augur-server and cmd/augur-mcp.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Storage         interfaces.StorageManager
	MarketClient    interfaces.MarketDataClient
	Resolver        interfaces.SymbolResolver
	ForecastService interfaces.ForecastService
	QuoteService    interfaces.QuoteService
	SearchService   interfaces.SearchService
	MCPServer       *server.MCPServer
	StartupTime     time.Time

	warmTrainCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, storage, the market data client, all services,
// and the MCP server. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	// Get binary directory for self-contained operation
	binDir := getBinaryDir()

	// Load configuration - check provided path, AUGUR_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("AUGUR_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "augur.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/augur.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage paths to the binary directory
	if config.Storage.Models.Path != "" && !filepath.IsAbs(config.Storage.Models.Path) {
		config.Storage.Models.Path = filepath.Join(binDir, config.Storage.Models.Path)
	}
	if config.Storage.Artifacts.Path != "" && !filepath.IsAbs(config.Storage.Artifacts.Path) {
		config.Storage.Artifacts.Path = filepath.Join(binDir, config.Storage.Artifacts.Path)
	}

	// Initialize logger
	logger := common.NewLoggerFromConfig(config.Logging)

	// Initialize storage
	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize the market data client
	yahooClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithUserAgent(config.Clients.Yahoo.UserAgent),
	)

	// Initialize services
	resolverService := resolver.NewService(yahooClient, config.Forecast.Suffixes, logger)
	forecastService := forecast.NewService(resolverService, storageManager, logger)
	quoteService := quote.NewService(resolverService, logger)
	searchService := search.NewService(yahooClient, config.Clients.Yahoo.GetSearchTimeout(), logger)

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"augur",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:          config,
		Logger:          logger,
		Storage:         storageManager,
		MarketClient:    yahooClient,
		Resolver:        resolverService,
		ForecastService: forecastService,
		QuoteService:    quoteService,
		SearchService:   searchService,
		MCPServer:       mcpServer,
		StartupTime:     startupStart,
	}

	// Register all MCP tools
	a.registerTools()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
// Shutdown order: cancel warm training, close storage.
func (a *App) Close() {
	if a.warmTrainCancel != nil {
		a.warmTrainCancel()
		a.warmTrainCancel = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}

// StartWarmTrain launches the background model pre-training goroutine.
func (a *App) StartWarmTrain() {
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Minute)
	a.warmTrainCancel = warmCancel
	go func() {
		defer warmCancel()
		warmTrain(warmCtx, a.ForecastService, a.Config.Forecast.WarmSymbols, a.Logger)
	}()
}

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createPredictStockTool(), handlePredictStock(a.ForecastService, a.Logger))
	s.AddTool(createGetRealtimeQuoteTool(), handleGetRealtimeQuote(a.QuoteService, a.Logger))
	s.AddTool(createSearchTickersTool(), handleSearchTickers(a.SearchService, a.Logger))
}
