package server

import (
	"net/http"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/augur/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Forecasting
	mux.HandleFunc("/predict/", s.routePredict)
	mux.HandleFunc("/realtime/", s.handleRealtime)
	mux.HandleFunc("/autocomplete/", s.handleAutocomplete)

	// MCP over Streamable HTTP
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(
		s.app.MCPServer,
		mcpserver.WithStateLess(true),
	))

	// Root descriptor (also the catch-all 404)
	mux.HandleFunc("/", s.handleRoot)
}

// routePredict dispatches /predict/{symbol} and /predict/{symbol}/chart.
func (s *Server) routePredict(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/predict/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	parts := strings.Split(path, "/")
	switch {
	case len(parts) == 1:
		s.handlePredict(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "chart":
		s.handleChart(w, r, parts[0])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
