package feeds

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/assets"
	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/models"
	"github.com/ternarybob/sentinel/internal/services/relevance"
	"github.com/ternarybob/sentinel/internal/triage"
)

// ErrScanInProgress is returned when a scan is requested while one is
// already running.
var ErrScanInProgress = fmt.Errorf("scan already in progress")

// ScanOptions tune a single scan cycle.
type ScanOptions struct {
	// EnableAI runs the relevance classifier on the top flagged headlines.
	EnableAI bool
	// EnableDiscovery runs the LLM discovery channel alongside RSS.
	EnableDiscovery bool
}

func DefaultScanOptions(cfg *common.FeedsConfig) ScanOptions {
	return ScanOptions{
		EnableAI:        true,
		EnableDiscovery: cfg.EnableDiscovery,
	}
}

// Service runs the scan pipeline: RSS fetch, LLM discovery, dedup, keyword
// triage, relevance classification, and persistence.
type Service struct {
	sources    []models.FeedSource
	aggregator *Aggregator
	discovery  *Discovery
	funnel     *triage.Funnel
	relevance  *relevance.Service
	catalog    *assets.Catalog
	storage    interfaces.HeadlineStorage
	events     interfaces.EventService
	state      *State

	feedConfig   *common.FeedsConfig
	triageConfig *common.TriageConfig
	logger       arbor.ILogger
}

func NewService(
	sources []models.FeedSource,
	aggregator *Aggregator,
	discovery *Discovery,
	funnel *triage.Funnel,
	relevanceSvc *relevance.Service,
	catalog *assets.Catalog,
	storage interfaces.HeadlineStorage,
	events interfaces.EventService,
	feedConfig *common.FeedsConfig,
	triageConfig *common.TriageConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		sources:      sources,
		aggregator:   aggregator,
		discovery:    discovery,
		funnel:       funnel,
		relevance:    relevanceSvc,
		catalog:      catalog,
		storage:      storage,
		events:       events,
		state:        NewState(),
		feedConfig:   feedConfig,
		triageConfig: triageConfig,
		logger:       logger.WithPrefix("feeds"),
	}
}

// State exposes the last scan's output for API reads.
func (s *Service) State() *State {
	return s.state
}

// Scan runs one full scan cycle and returns its summary. Only one scan runs
// at a time; concurrent calls fail with ErrScanInProgress.
func (s *Service) Scan(ctx context.Context, opts ScanOptions) (*models.ScanResult, error) {
	if !s.state.TryBeginScan() {
		return nil, ErrScanInProgress
	}
	defer s.state.EndScan()

	started := time.Now()
	s.publish(ctx, interfaces.EventScanStarted, map[string]any{
		"started_at": started,
	})

	taxonomies := s.catalog.Taxonomies()

	// Channel 1: RSS.
	headlines := s.aggregator.FetchAll(ctx, s.sources)

	// Channel 2: LLM discovery, merged with near-duplicate RSS titles dropped.
	if opts.EnableDiscovery && s.discovery != nil {
		discovered, err := s.discovery.Discover(ctx, taxonomies)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Discovery failed, continuing with RSS only")
		} else {
			headlines = triage.Merge(headlines, discovered)
		}
	}

	// Keyword triage over the combined set.
	results := s.funnel.Triage(headlines, taxonomies)

	flaggedCount := 0
	for _, r := range results {
		if r.Flagged {
			flaggedCount++
		}
	}

	s.logger.Info().
		Int("total", len(results)).
		Int("flagged", flaggedCount).
		Msg("Keyword triage complete")

	// Relevance classification on the top flagged headlines only.
	aiTriagedCount := 0
	if opts.EnableAI && flaggedCount > 0 {
		top := triage.TopFlagged(results, s.triageConfig.MaxAITriagePerScan)
		topHeadlines := make([]*models.Headline, len(top))
		for i, r := range top {
			topHeadlines[i] = r.Headline
		}

		classifications := s.relevance.ClassifyBatch(ctx, topHeadlines)
		s.relevance.Apply(topHeadlines, classifications)
		aiTriagedCount = len(topHeadlines)
	}

	final := make([]*models.Headline, len(results))
	for i, r := range results {
		final[i] = r.Headline
	}
	sort.SliceStable(final, func(i, j int) bool {
		return final[i].Confidence > final[j].Confidence
	})

	if s.storage != nil {
		if err := s.storage.StoreHeadlines(ctx, final); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to persist headlines")
		}
	}

	signals := make([]models.Headline, 0, flaggedCount)
	for _, h := range final {
		if h.Flagged() {
			signals = append(signals, *h)
			s.publish(ctx, interfaces.EventHeadlineFlagged, *h)
		}
	}

	result := &models.ScanResult{
		TotalHeadlines: len(final),
		FlaggedCount:   flaggedCount,
		AITriagedCount: aiTriagedCount,
		Signals:        signals,
		Timestamp:      time.Now(),
		CostEstimate:   float64(aiTriagedCount) * s.triageConfig.CostPerHeadline,
		Duration:       time.Since(started).String(),
	}

	s.state.SetResult(final, result)
	s.publish(ctx, interfaces.EventScanCompleted, result)

	s.logger.Info().
		Int("headlines", result.TotalHeadlines).
		Int("signals", len(signals)).
		Int("ai_triaged", aiTriagedCount).
		Str("duration", result.Duration).
		Msg("Scan complete")

	return result, nil
}

func (s *Service) publish(ctx context.Context, eventType interfaces.EventType, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, interfaces.Event{Type: eventType, Payload: payload}); err != nil {
		s.logger.Warn().Err(err).Str("event", string(eventType)).Msg("Event publish failed")
	}
}
