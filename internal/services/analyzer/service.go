package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/analysis"
	"github.com/ternarybob/sentinel/internal/assets"
	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/models"
	"github.com/ternarybob/sentinel/internal/risk"
)

// QuoteEnricher decorates trading opportunities with live market data.
// Enrichment failures leave opportunities un-enriched, never dropped.
type QuoteEnricher interface {
	EnrichOpportunities(ctx context.Context, opportunities []models.Opportunity) []models.Opportunity
}

// Service orchestrates deep event analysis: it drives the heavy
// reasoning call, normalizes the response, computes the new risk score,
// persists the resulting signal, and broadcasts the risk update.
type Service struct {
	catalog  *assets.Catalog
	fastLLM  interfaces.LLMService
	deepLLM  interfaces.LLMService
	parser   *analysis.Parser
	scorer   *risk.Scorer
	signals  interfaces.SignalStorage
	events   interfaces.EventService
	enricher QuoteEnricher
	config   *common.AnalysisConfig
	logger   arbor.ILogger
}

// NewService creates the deep analysis service. The enricher may be nil
// when no market-data provider is configured.
func NewService(
	catalog *assets.Catalog,
	fastLLM interfaces.LLMService,
	deepLLM interfaces.LLMService,
	signals interfaces.SignalStorage,
	events interfaces.EventService,
	enricher QuoteEnricher,
	config *common.AnalysisConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		catalog:  catalog,
		fastLLM:  fastLLM,
		deepLLM:  deepLLM,
		parser:   analysis.NewParser(),
		scorer:   risk.NewScorer(risk.DefaultScorerConfig()),
		signals:  signals,
		events:   events,
		enricher: enricher,
		config:   config,
		logger:   logger,
	}
}

// Analyze runs a full deep-analysis cycle for an event affecting the
// given asset. The asset's risk score is read at the start and written
// exactly once at the end; the caller ensures at most one analysis is
// in flight per asset.
func (s *Service) Analyze(ctx context.Context, assetID string, event *models.Event) (*models.RiskSignal, error) {
	asset, err := s.catalog.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	if event.EventType == "" {
		event.EventType = ClassifyEventType(event.Title + " " + event.Description)
	}
	if event.DetectedAt.IsZero() {
		event.DetectedAt = time.Now()
	}

	s.publish(ctx, interfaces.EventAnalysisStarted, map[string]interface{}{
		"asset_id":   assetID,
		"event_type": string(event.EventType),
		"title":      event.Title,
	})

	timeout := s.config.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	analysisCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startTime := time.Now()
	response, err := s.deepLLM.Chat(analysisCtx, []interfaces.Message{
		{Role: "system", Content: buildAnalystPrompt(asset)},
		{Role: "user", Content: buildEventPrompt(asset, event)},
	})
	if err != nil {
		// The deep-analysis producer is the one boundary allowed to
		// propagate an external failure: there is no analysis without it.
		s.logger.Error().
			Err(err).
			Str("asset_id", assetID).
			Msg("Deep analysis call failed")
		return nil, fmt.Errorf("deep analysis failed: %w", err)
	}

	impactAnalysis, tier := s.parser.Parse(response, nil)
	s.logger.Info().
		Str("asset_id", assetID).
		Str("parse_tier", string(tier)).
		Int("impacts", len(impactAnalysis.Impacts)).
		Int("opportunities", len(impactAnalysis.Opportunities)).
		Dur("duration", time.Since(startTime)).
		Msg("Deep analysis parsed")

	if s.enricher != nil && len(impactAnalysis.Opportunities) > 0 {
		impactAnalysis.Opportunities = s.enricher.EnrichOpportunities(ctx, impactAnalysis.Opportunities)
	}

	return s.finishAnalysis(ctx, asset, event, impactAnalysis)
}

// AnalyzeHeadline runs the deep cycle for a triaged headline against its
// first matched asset.
func (s *Service) AnalyzeHeadline(ctx context.Context, headline *models.Headline) (*models.RiskSignal, error) {
	if len(headline.MatchedAssets) == 0 {
		return nil, fmt.Errorf("headline %s matched no assets", headline.ID)
	}

	event := &models.Event{
		Title:       headline.Title,
		Description: headline.Description,
		DetectedAt:  headline.PublishedAt,
		Source: models.NewsSource{
			Name:        headline.Source,
			URL:         headline.URL,
			PublishedAt: headline.PublishedAt,
		},
	}

	return s.Analyze(ctx, headline.MatchedAssets[0], event)
}

// AnalyzeBatch runs deep analysis over the flagged headlines whose
// confidence meets the floor. Headlines below the floor are counted as
// skipped, including those the relevance classifier demoted; per-headline
// failures are logged and do not stop the batch.
func (s *Service) AnalyzeBatch(ctx context.Context, headlines []*models.Headline, confidenceFloor float64) ([]*models.RiskSignal, int) {
	var signals []*models.RiskSignal
	skipped := 0

	for _, headline := range headlines {
		if !headline.Flagged() {
			continue
		}
		if headline.Confidence < confidenceFloor {
			skipped++
			s.logger.Debug().
				Str("headline_id", headline.ID).
				Float64("confidence", headline.Confidence).
				Float64("floor", confidenceFloor).
				Msg("Headline below confidence floor, skipping deep analysis")
			continue
		}

		signal, err := s.AnalyzeHeadline(ctx, headline)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("headline_id", headline.ID).
				Msg("Headline analysis failed")
			continue
		}
		signals = append(signals, signal)
	}

	return signals, skipped
}

// AnalyzeScenario runs the analysis cycle for a curated demo scenario,
// using its preloaded analysis instead of a live model call.
func (s *Service) AnalyzeScenario(ctx context.Context, scenarioID string) (*models.RiskSignal, error) {
	scenario, err := assets.GetScenario(scenarioID)
	if err != nil {
		return nil, err
	}
	return s.analyzeScenario(ctx, scenario)
}

func (s *Service) analyzeScenario(ctx context.Context, scenario *models.DemoScenario) (*models.RiskSignal, error) {
	if scenario.PreloadedAnalysis == nil {
		return nil, fmt.Errorf("scenario %s has no preloaded analysis", scenario.ID)
	}

	asset, err := s.catalog.GetAsset(scenario.AssetID)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       scenario.Name,
		Description: scenario.EventText,
		EventType:   scenario.EventType,
		DetectedAt:  time.Now(),
	}

	return s.finishAnalysis(ctx, asset, event, scenario.PreloadedAnalysis)
}

// finishAnalysis computes the new risk score, persists the signal, and
// broadcasts the risk update. Exactly one scoring path applies per
// cycle: the directional model weighting when enabled, otherwise the
// component breakdown.
func (s *Service) finishAnalysis(ctx context.Context, asset *models.Asset, event *models.Event, impactAnalysis *models.ImpactAnalysis) (*models.RiskSignal, error) {
	previousScore := asset.CurrentRiskScore

	riskScore := s.scorer.Calculate(asset, event, impactAnalysis)
	newScore := riskScore.Value
	confidence := averageConfidence(impactAnalysis)
	var weighting *models.RiskWeighting

	if s.config.UseWeighting {
		weighting = s.requestWeighting(ctx, asset, event, impactAnalysis)
		newScore = risk.ApplyWeighting(previousScore, weighting)
		if weighting.Confidence > 0 {
			confidence = weighting.Confidence
		}
	}

	level := risk.ScoreToLevel(newScore)
	if err := s.catalog.UpdateRisk(asset.ID, newScore, level); err != nil {
		return nil, err
	}

	signal := &models.RiskSignal{
		ID:                common.NewSignalID(),
		AssetID:           asset.ID,
		Timestamp:         time.Now(),
		RiskScore:         newScore,
		RiskLevel:         level,
		PreviousRiskScore: previousScore,
		RiskChange:        newScore - previousScore,
		Event:             *event,
		Analysis:          *impactAnalysis,
		Confidence:        confidence,
		Severity:          riskScore.Value,
		Status:            "active",
	}

	if s.signals != nil {
		if err := s.signals.StoreSignal(ctx, signal); err != nil {
			s.logger.Warn().
				Err(err).
				Str("signal_id", signal.ID).
				Msg("Failed to persist risk signal")
		}
	}

	s.publish(ctx, interfaces.EventRiskUpdated, map[string]interface{}{
		"asset_id":       asset.ID,
		"risk_score":     newScore,
		"risk_level":     string(level),
		"previous_score": previousScore,
		"signal_id":      signal.ID,
	})
	s.publish(ctx, interfaces.EventAnalysisComplete, signal)

	s.logger.Info().
		Str("asset_id", asset.ID).
		Float64("previous_score", previousScore).
		Float64("new_score", newScore).
		Str("level", string(level)).
		Msg("Risk analysis complete")

	return signal, nil
}

// wire shape for the directional weighting response
type weightingResponse struct {
	Direction  string  `json:"direction"`
	Magnitude  float64 `json:"magnitude"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Components struct {
		SupplyDisruption     float64 `json:"supplyDisruption"`
		MarketSentiment      float64 `json:"marketSentiment"`
		CompanyExposure      float64 `json:"companyExposure"`
		GeopoliticalSeverity float64 `json:"geopoliticalSeverity"`
		HistoricalPrecedent  float64 `json:"historicalPrecedent"`
	} `json:"components"`
}

// requestWeighting asks the fast model for a directional risk judgment.
// Any failure degrades to the neutral weighting.
func (s *Service) requestWeighting(ctx context.Context, asset *models.Asset, event *models.Event, impactAnalysis *models.ImpactAnalysis) *models.RiskWeighting {
	response, err := s.fastLLM.Chat(ctx, []interfaces.Message{
		{Role: "system", Content: "You are a geopolitical risk analyst. Analyze events and determine their impact on asset risk levels. Always respond with valid JSON only."},
		{Role: "user", Content: buildWeightingPrompt(asset, event, impactAnalysis)},
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("asset_id", asset.ID).
			Msg("Risk weighting call failed, using neutral default")
		return risk.NeutralWeighting("LLM analysis unavailable, using neutral default")
	}

	parsed, err := parseWeighting(response)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("asset_id", asset.ID).
			Msg("Risk weighting response unparseable, using neutral default")
		return risk.NeutralWeighting("LLM analysis unavailable, using neutral default")
	}

	s.logger.Info().
		Str("asset_id", asset.ID).
		Str("direction", string(parsed.Direction)).
		Float64("magnitude", parsed.Magnitude).
		Msg("Risk weighting received")

	return parsed
}

func parseWeighting(response string) (*models.RiskWeighting, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in weighting response")
	}

	var parsed weightingResponse
	if err := json.Unmarshal([]byte(response[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("invalid weighting JSON: %w", err)
	}

	var direction models.WeightingDirection
	switch strings.ToLower(parsed.Direction) {
	case "increase":
		direction = models.DirectionIncrease
	case "decrease":
		direction = models.DirectionDecrease
	case "neutral":
		direction = models.DirectionNeutral
	default:
		return nil, fmt.Errorf("unknown weighting direction %q", parsed.Direction)
	}

	return &models.RiskWeighting{
		Direction:  direction,
		Magnitude:  parsed.Magnitude,
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
		Components: models.WeightingComponents{
			SupplyDisruption:     parsed.Components.SupplyDisruption,
			MarketSentiment:      parsed.Components.MarketSentiment,
			CompanyExposure:      parsed.Components.CompanyExposure,
			GeopoliticalSeverity: parsed.Components.GeopoliticalSeverity,
			HistoricalPrecedent:  parsed.Components.HistoricalPrecedent,
		},
	}, nil
}

func averageConfidence(impactAnalysis *models.ImpactAnalysis) float64 {
	if len(impactAnalysis.Impacts) == 0 {
		return 0.5
	}
	var sum float64
	for _, impact := range impactAnalysis.Impacts {
		sum += impact.Confidence
	}
	return sum / float64(len(impactAnalysis.Impacts))
}

func (s *Service) publish(ctx context.Context, eventType interfaces.EventType, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, interfaces.Event{Type: eventType, Payload: payload}); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_type", string(eventType)).
			Msg("Failed to publish event")
	}
}
