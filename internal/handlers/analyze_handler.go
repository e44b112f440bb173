package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/assets"
	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/models"
	"github.com/ternarybob/sentinel/internal/services/analyzer"
	"github.com/ternarybob/sentinel/internal/services/feeds"
)

// AnalyzeHandler runs deep impact analysis on events and demo scenarios
type AnalyzeHandler struct {
	analyzerService *analyzer.Service
	feedState       *feeds.State
	triageConfig    *common.TriageConfig
	logger          arbor.ILogger
}

// NewAnalyzeHandler creates a new AnalyzeHandler
func NewAnalyzeHandler(analyzerService *analyzer.Service, feedState *feeds.State, triageConfig *common.TriageConfig, logger arbor.ILogger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzerService: analyzerService,
		feedState:       feedState,
		triageConfig:    triageConfig,
		logger:          logger,
	}
}

type analyzeRequest struct {
	AssetID    string `json:"asset_id"`
	EventText  string `json:"event_text"`
	EventType  string `json:"event_type"`
	SourceName string `json:"source_name"`
	SourceURL  string `json:"source_url"`
	ScenarioID string `json:"scenario_id"`
}

// AnalyzeHandler handles POST /api/analyze
func (h *AnalyzeHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Scenario requests replay a preloaded analysis.
	if req.ScenarioID != "" {
		signal, err := h.analyzerService.AnalyzeScenario(r.Context(), req.ScenarioID)
		if err != nil {
			if errors.Is(err, assets.ErrScenarioNotFound) {
				WriteError(w, http.StatusNotFound, err.Error())
				return
			}
			h.logger.Error().Err(err).Str("scenario", req.ScenarioID).Msg("Scenario analysis failed")
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		h.writeSignal(w, signal)
		return
	}

	if req.AssetID == "" || req.EventText == "" {
		WriteError(w, http.StatusBadRequest, "asset_id and event_text are required")
		return
	}

	event := &models.Event{
		Title:       req.EventText,
		Description: req.EventText,
		EventType:   models.EventType(req.EventType),
		DetectedAt:  time.Now(),
	}
	if req.SourceName != "" || req.SourceURL != "" {
		event.Source = models.NewsSource{Name: req.SourceName, URL: req.SourceURL}
	}

	signal, err := h.analyzerService.Analyze(r.Context(), req.AssetID, event)
	if err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("asset", req.AssetID).Msg("Analysis failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeSignal(w, signal)
}

// BatchAnalyzeHandler handles POST /api/analyze/batch. It runs deep
// analysis over the last scan's flagged headlines, skipping those whose
// confidence fell below the configured floor.
func (h *AnalyzeHandler) BatchAnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	headlines := h.feedState.Headlines()
	if len(headlines) == 0 {
		WriteError(w, http.StatusConflict, "no scan results available, run a scan first")
		return
	}

	signals, skipped := h.analyzerService.AnalyzeBatch(r.Context(), headlines, h.triageConfig.ConfidenceFloor)

	h.logger.Info().
		Int("analyzed", len(signals)).
		Int("skipped_below_floor", skipped).
		Msg("Batch analysis complete")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":              "completed",
		"analyzed":            len(signals),
		"skipped_below_floor": skipped,
		"signals":             signals,
	})
}

func (h *AnalyzeHandler) writeSignal(w http.ResponseWriter, signal *models.RiskSignal) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"signal": signal,
	})
}
