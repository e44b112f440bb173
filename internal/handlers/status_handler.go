package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/services/feeds"
	"github.com/ternarybob/sentinel/internal/services/scheduler"
)

// StatusHandler reports service health and pipeline state
type StatusHandler struct {
	storage   interfaces.StorageManager
	feeds     *feeds.Service
	scheduler *scheduler.Service
	logger    arbor.ILogger
	startedAt time.Time
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(storage interfaces.StorageManager, feedService *feeds.Service, schedulerService *scheduler.Service, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		storage:   storage,
		feeds:     feedService,
		scheduler: schedulerService,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	headlineCount, _ := h.storage.HeadlineStorage().CountHeadlines(r.Context())
	signalCount, _ := h.storage.SignalStorage().CountSignals(r.Context())

	status := map[string]interface{}{
		"status":    "ok",
		"version":   common.GetVersion(),
		"uptime":    time.Since(h.startedAt).String(),
		"headlines": headlineCount,
		"signals":   signalCount,
		"scanning":  h.feeds.State().Scanning(),
	}

	if lastScan := h.feeds.State().LastScan(); lastScan != nil {
		status["last_scan"] = lastScan.Timestamp
	}
	if h.scheduler != nil && h.scheduler.Running() {
		status["next_scan"] = h.scheduler.NextRun()
	}

	WriteJSON(w, http.StatusOK, status)
}
