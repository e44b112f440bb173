package server

import (
	"net/http"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/handlers"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Scanning
	mux.HandleFunc("POST /api/scan", s.app.ScanHandler.ScanHandler)
	mux.HandleFunc("GET /api/headlines", s.app.ScanHandler.HeadlinesHandler)

	// API routes - Analysis
	mux.HandleFunc("POST /api/analyze", s.app.AnalyzeHandler.AnalyzeHandler)
	mux.HandleFunc("POST /api/analyze/batch", s.app.AnalyzeHandler.BatchAnalyzeHandler)

	// API routes - Assets and signals
	mux.HandleFunc("GET /api/assets", s.app.AssetsHandler.ListHandler)
	mux.HandleFunc("GET /api/assets/{id}", s.app.AssetsHandler.GetHandler)
	mux.HandleFunc("GET /api/assets/{id}/signals", s.app.AssetsHandler.SignalsHandler)
	mux.HandleFunc("GET /api/signals", s.app.AssetsHandler.RecentSignalsHandler)
	mux.HandleFunc("GET /api/scenarios", s.app.AssetsHandler.ScenariosHandler)

	// API routes - System
	mux.HandleFunc("GET /api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("GET /api/health", s.healthHandler)
	mux.HandleFunc("GET /api/version", s.versionHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.notFoundHandler)

	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": common.GetVersion(),
	})
}

func (s *Server) versionHandler(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetFullVersion(),
	})
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, http.StatusNotFound, "endpoint not found")
}
