package models

import (
	"strings"
	"time"
)

// TriageStatus tracks a headline through the triage funnel.
// Transitions only move forward (noise -> flagged -> analyzing -> analyzed);
// a headline never regresses except via a full re-triage.
type TriageStatus string

const (
	TriageNoise     TriageStatus = "noise"
	TriageFlagged   TriageStatus = "flagged"
	TriageAnalyzing TriageStatus = "analyzing"
	TriageAnalyzed  TriageStatus = "analyzed"
)

// DiscoveryPrefix marks headline IDs produced by the LLM discovery channel.
// Discovery items arrive already relevance-scored, so the funnel trusts their
// existing status and confidence instead of re-matching them.
const DiscoveryPrefix = "disc_"

// Headline is a discovered news item before or after triage.
type Headline struct {
	ID          string    `json:"id" badgerhold:"index"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Description string    `json:"description,omitempty"`

	TriageStatus    TriageStatus `json:"triage_status" badgerhold:"index"`
	MatchedAssets   []string     `json:"matched_assets"`
	MatchedKeywords []string     `json:"matched_keywords"`

	// Confidence is always in [0,1]. Keyword triage sets it from the match
	// score; the relevance classifier may raise it (agreement) or halve it
	// (disagreement).
	Confidence float64 `json:"confidence"`

	// Set by the relevance classifier.
	AIScore  *float64 `json:"ai_score,omitempty"`
	AIReason string   `json:"ai_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDiscovered reports whether the headline came from the LLM discovery
// channel rather than a scheduled feed fetch.
func (h *Headline) IsDiscovered() bool {
	return strings.HasPrefix(h.ID, DiscoveryPrefix)
}

// Flagged reports whether the headline survived triage.
func (h *Headline) Flagged() bool {
	return h.TriageStatus == TriageFlagged
}

// TriageResult is the funnel's verdict for a single headline.
type TriageResult struct {
	Headline        *Headline `json:"headline"`
	Flagged         bool     `json:"flagged"`
	Confidence      float64  `json:"confidence"`
	MatchedAssets   []string `json:"matched_assets"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// RelevanceResult is the relevance classifier's judgment for one headline.
// Score is on the 0-10 scale. When the external call fails, the classifier
// synthesizes a result from the headline's keyword confidence instead, so a
// batch is always fully populated.
type RelevanceResult struct {
	Score    float64  `json:"score"`
	Reason   string   `json:"reason"`
	Relevant bool     `json:"relevant"`
	Assets   []string `json:"assets"`
	Fallback bool     `json:"fallback,omitempty"`
}

// FeedSource describes one RSS feed the aggregator polls.
type FeedSource struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	URL      string `json:"url" yaml:"url"`
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Category string `json:"category" yaml:"category"` // general, commodities, geopolitical, supply-chain
}

// ScanResult summarizes one scan cycle.
type ScanResult struct {
	TotalHeadlines int        `json:"total_headlines"`
	FlaggedCount   int        `json:"flagged_count"`
	AITriagedCount int        `json:"ai_triaged_count"`
	Signals        []Headline `json:"signals"`
	Timestamp      time.Time  `json:"timestamp"`
	CostEstimate   float64    `json:"cost_estimate"`
	Duration       string     `json:"duration"`
}
