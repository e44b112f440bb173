package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/assets"
	"github.com/ternarybob/sentinel/internal/interfaces"
)

// AssetsHandler serves the monitored asset catalog and risk signal history
type AssetsHandler struct {
	catalog *assets.Catalog
	signals interfaces.SignalStorage
	logger  arbor.ILogger
}

// NewAssetsHandler creates a new AssetsHandler
func NewAssetsHandler(catalog *assets.Catalog, signals interfaces.SignalStorage, logger arbor.ILogger) *AssetsHandler {
	return &AssetsHandler{
		catalog: catalog,
		signals: signals,
		logger:  logger,
	}
}

// ListHandler handles GET /api/assets
func (h *AssetsHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"assets": h.catalog.All(),
	})
}

// GetHandler handles GET /api/assets/{id}
func (h *AssetsHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := r.PathValue("id")
	asset, err := h.catalog.GetAsset(id)
	if err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"asset":     asset,
		"scenarios": assets.ScenariosByAsset(id),
	})
}

// SignalsHandler handles GET /api/assets/{id}/signals
func (h *AssetsHandler) SignalsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := r.PathValue("id")
	if _, err := h.catalog.GetAsset(id); err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	signals, err := h.signals.GetSignalsByAsset(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("asset", id).Msg("Failed to load signals")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"signals": signals,
	})
}

// RecentSignalsHandler handles GET /api/signals
func (h *AssetsHandler) RecentSignalsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	signals, err := h.signals.GetRecentSignals(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load recent signals")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"signals": signals,
	})
}

// ScenariosHandler handles GET /api/scenarios
func (h *AssetsHandler) ScenariosHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"scenarios": assets.AllScenarios(),
	})
}
