package relevance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/models"
)

// Config holds tunables for the relevance classification batch
type Config struct {
	// Timeout bounds each individual classification call
	Timeout time.Duration

	// FlagScoreThreshold is the minimum model score that flags a headline
	FlagScoreThreshold float64
}

// DefaultConfig returns the standard relevance settings
func DefaultConfig() Config {
	return Config{
		Timeout:            15 * time.Second,
		FlagScoreThreshold: 7.0,
	}
}

// Service scores headline relevance with a fast model. Every call is
// absorbed locally: a failed or timed-out classification degrades to the
// keyword-derived fallback so batch results are always fully populated.
type Service struct {
	llm    interfaces.LLMService
	config Config
	logger arbor.ILogger
}

// NewService creates a relevance classification service
func NewService(llm interfaces.LLMService, config Config, logger arbor.ILogger) *Service {
	return &Service{
		llm:    llm,
		config: config,
		logger: logger,
	}
}

// wire shape the fast model is asked to emit
type relevanceResponse struct {
	Score    float64  `json:"score"`
	Reason   string   `json:"reason"`
	Relevant bool     `json:"relevant"`
	Assets   []string `json:"assets"`
}

// Classify scores a single headline's relevance to an asset. On any
// failure the keyword confidence is promoted to the model's scale.
func (s *Service) Classify(ctx context.Context, headline *models.Headline, assetName string) *models.RelevanceResult {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You are a geopolitical risk detection system.

Headline: %q
Source: %s
Asset: %s

Rate this headline's relevance to %s supply chain disruptions or geopolitical risk (0-10).

Respond ONLY with valid JSON (no markdown):
{
  "score": 7.5,
  "reason": "brief explanation",
  "relevant": true,
  "assets": [%q]
}`, headline.Title, headline.Source, assetName, assetName, strings.ToLower(assetName))

	response, err := s.llm.Chat(timeoutCtx, []interfaces.Message{
		{Role: "system", Content: "You are a risk detection AI. Respond only with valid JSON."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("headline_id", headline.ID).
			Msg("Relevance call failed, using keyword fallback")
		return s.fallback(headline)
	}

	parsed, err := parseResponse(response)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("headline_id", headline.ID).
			Msg("Relevance response unparseable")
		return &models.RelevanceResult{
			Score:    0,
			Reason:   "Failed to parse AI response",
			Relevant: false,
			Assets:   []string{},
			Fallback: true,
		}
	}

	return &models.RelevanceResult{
		Score:    parsed.Score,
		Reason:   parsed.Reason,
		Relevant: parsed.Relevant,
		Assets:   parsed.Assets,
	}
}

// ClassifyBatch dispatches every headline concurrently and waits for the
// full set. The result map is always fully populated: individual
// failures become fallback results, never missing entries.
func (s *Service) ClassifyBatch(ctx context.Context, headlines []*models.Headline) map[string]*models.RelevanceResult {
	results := make(map[string]*models.RelevanceResult, len(headlines))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, headline := range headlines {
		wg.Add(1)
		go func(h *models.Headline) {
			defer wg.Done()

			assetName := "Unknown"
			if len(h.MatchedAssets) > 0 {
				assetName = h.MatchedAssets[0]
			}

			result := s.Classify(ctx, h, assetName)

			mu.Lock()
			results[h.ID] = result
			mu.Unlock()
		}(headline)
	}

	wg.Wait()

	s.logger.Info().
		Int("count", len(results)).
		Msg("Relevance batch completed")

	return results
}

// Apply folds classification results back into the headlines. Model
// agreement boosts confidence to the model's scale; disagreement halves
// the keyword confidence. Flagging requires both relevance and a score
// at or above the configured threshold.
func (s *Service) Apply(headlines []*models.Headline, results map[string]*models.RelevanceResult) {
	for _, headline := range headlines {
		result, ok := results[headline.ID]
		if !ok {
			continue
		}

		score := result.Score
		headline.AIScore = &score
		headline.AIReason = result.Reason

		if result.Relevant {
			if score/10 > headline.Confidence {
				headline.Confidence = score / 10
			}
		} else {
			headline.Confidence *= 0.5
		}

		if result.Relevant && score >= s.config.FlagScoreThreshold {
			headline.TriageStatus = models.TriageFlagged
		}
		headline.UpdatedAt = time.Now()
	}
}

// fallback promotes the keyword confidence when the model is unavailable
func (s *Service) fallback(headline *models.Headline) *models.RelevanceResult {
	return &models.RelevanceResult{
		Score:    headline.Confidence * 10,
		Reason:   "AI triage unavailable, using keyword score",
		Relevant: headline.Confidence > 0.5,
		Assets:   headline.MatchedAssets,
		Fallback: true,
	}
}

func parseResponse(response string) (*relevanceResponse, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var parsed relevanceResponse
	if err := json.Unmarshal([]byte(response[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("invalid relevance JSON: %w", err)
	}
	if parsed.Reason == "" {
		parsed.Reason = "No reason provided"
	}
	if parsed.Assets == nil {
		parsed.Assets = []string{}
	}
	return &parsed, nil
}
