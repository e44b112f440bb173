package triage

import (
	"strings"

	"github.com/ternarybob/sentinel/internal/models"
)

// MatcherConfig holds the bucket weights and thresholds for keyword scoring.
// Weights reflect how strongly each keyword category indicates supply-chain
// relevance: event terms outweigh locations, company mentions alone are weak.
type MatcherConfig struct {
	PrimaryWeight  float64
	LocationWeight float64
	EventWeight    float64
	CompanyWeight  float64

	// ScoreThreshold flags a headline on raw score alone, even without
	// the primary+context combination.
	ScoreThreshold float64
}

// DefaultMatcherConfig returns the standard scoring weights
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		PrimaryWeight:  0.4,
		LocationWeight: 0.2,
		EventWeight:    0.3,
		CompanyWeight:  0.1,
		ScoreThreshold: 0.5,
	}
}

// MatchResult is the outcome of matching one headline against one asset's taxonomy
type MatchResult struct {
	Matches  bool
	Keywords []string
	Score    float64
}

// KeywordMatcher scores headlines against asset keyword taxonomies.
// It is cheap and local, used to filter noise before any model calls.
type KeywordMatcher struct {
	config MatcherConfig
}

// NewKeywordMatcher creates a matcher with the given scoring configuration
func NewKeywordMatcher(config MatcherConfig) *KeywordMatcher {
	return &KeywordMatcher{config: config}
}

// Match scores a headline against a single asset's keyword taxonomy.
// A headline matches when it has a primary keyword plus location or event
// context, or when the accumulated score exceeds the threshold outright.
func (m *KeywordMatcher) Match(headline *models.Headline, taxonomy models.KeywordTaxonomy) MatchResult {
	text := strings.ToLower(headline.Title + " " + headline.Description)

	var matched []string
	var score float64

	primaryHits := matchBucket(text, taxonomy.Primary)
	matched = append(matched, primaryHits...)
	score += m.config.PrimaryWeight * float64(len(primaryHits))

	locationHits := matchBucket(text, taxonomy.Locations)
	matched = append(matched, locationHits...)
	score += m.config.LocationWeight * float64(len(locationHits))

	eventHits := matchBucket(text, taxonomy.Events)
	matched = append(matched, eventHits...)
	score += m.config.EventWeight * float64(len(eventHits))

	companyHits := matchBucket(text, taxonomy.Companies)
	matched = append(matched, companyHits...)
	score += m.config.CompanyWeight * float64(len(companyHits))

	hasPrimary := len(primaryHits) > 0
	hasContext := len(locationHits) > 0 || len(eventHits) > 0
	matches := (hasPrimary && hasContext) || score > m.config.ScoreThreshold

	if score > 1.0 {
		score = 1.0
	}

	return MatchResult{
		Matches:  matches,
		Keywords: matched,
		Score:    score,
	}
}

func matchBucket(text string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			hits = append(hits, kw)
		}
	}
	return hits
}
