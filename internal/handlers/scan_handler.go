package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/services/feeds"
)

// ScanHandler triggers and reports feed scans
type ScanHandler struct {
	feedService *feeds.Service
	feedConfig  *common.FeedsConfig
	logger      arbor.ILogger
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(feedService *feeds.Service, feedConfig *common.FeedsConfig, logger arbor.ILogger) *ScanHandler {
	return &ScanHandler{
		feedService: feedService,
		feedConfig:  feedConfig,
		logger:      logger,
	}
}

type scanRequest struct {
	EnableAI        *bool `json:"enable_ai"`
	EnableDiscovery *bool `json:"enable_discovery"`
}

// ScanHandler handles POST /api/scan
func (h *ScanHandler) ScanHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	// Body is optional; defaults run the full pipeline.
	opts := feeds.DefaultScanOptions(h.feedConfig)
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		if req.EnableAI != nil {
			opts.EnableAI = *req.EnableAI
		}
		if req.EnableDiscovery != nil {
			opts.EnableDiscovery = *req.EnableDiscovery
		}
	}

	result, err := h.feedService.Scan(r.Context(), opts)
	if err != nil {
		if errors.Is(err, feeds.ErrScanInProgress) {
			WriteError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("Scan failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"scan":   result,
	})
}

// HeadlinesHandler handles GET /api/headlines
func (h *ScanHandler) HeadlinesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	state := h.feedService.State()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"headlines": state.Headlines(),
		"last_scan": state.LastScan(),
		"scanning":  state.Scanning(),
	})
}
