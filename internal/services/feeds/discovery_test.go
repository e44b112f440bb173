package feeds

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/models"
)

type stubLLM struct {
	response string
	err      error

	mu      sync.Mutex
	prompts []string
}

func (s *stubLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	s.mu.Lock()
	for _, m := range messages {
		s.prompts = append(s.prompts, m.Content)
	}
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubLLM) HealthCheck(ctx context.Context) error { return nil }

func (s *stubLLM) GetProviderInfo() (string, string) { return "stub", "stub-model" }

func testDiscoveryTaxonomies() map[string]models.KeywordTaxonomy {
	return map[string]models.KeywordTaxonomy{
		"lithium": {
			Primary:   []string{"lithium"},
			Locations: []string{"chile", "atacama"},
			Companies: []string{"sqm", "albemarle"},
		},
		"semiconductors": {
			Primary:   []string{"semiconductor", "chip", "tsmc"},
			Locations: []string{"taiwan"},
			Companies: []string{"tsmc", "samsung"},
		},
	}
}

const discoveryResponse = `[
  {
    "title": "SQM halts lithium production after Atacama protests",
    "url": "https://example.com/sqm-halt",
    "source": "Example Wire",
    "description": "Protests in Chile force SQM to suspend brine operations.",
    "publishedAt": "2026-08-28T09:00:00Z",
    "relevance": 0.88
  },
  {
    "title": "TSMC expands Taiwan chip capacity",
    "url": "https://example.com/tsmc-expand",
    "source": "Example Wire",
    "description": "New fab investment announced.",
    "publishedAt": "2026-08-27T12:00:00Z",
    "relevance": 0.62
  },
  {
    "title": "Local bakery wins regional award",
    "url": "https://example.com/bakery",
    "source": "Example Wire",
    "description": "Community celebrates the win.",
    "publishedAt": "2026-08-27T08:00:00Z",
    "relevance": 0.55
  }
]`

func TestDiscovery_Discover(t *testing.T) {
	llm := &stubLLM{response: discoveryResponse}
	cfg := &common.FeedsConfig{}
	d := NewDiscovery(llm, cfg, common.GetLogger())

	headlines, err := d.Discover(context.Background(), testDiscoveryTaxonomies())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(headlines) != 3 {
		t.Fatalf("got %d headlines, want 3", len(headlines))
	}

	first := headlines[0]
	if !strings.HasPrefix(first.ID, models.DiscoveryPrefix) {
		t.Errorf("ID = %s, want %s prefix", first.ID, models.DiscoveryPrefix)
	}
	if !first.IsDiscovered() {
		t.Error("discovered headline must report IsDiscovered")
	}
	if first.TriageStatus != models.TriageFlagged {
		t.Errorf("status = %s, want flagged", first.TriageStatus)
	}
	if len(first.MatchedAssets) != 1 || first.MatchedAssets[0] != "lithium" {
		t.Errorf("MatchedAssets = %v, want [lithium]", first.MatchedAssets)
	}
	// relevance 0.88 + one asset bonus, capped at 0.95
	if first.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", first.Confidence)
	}
	if first.AIScore == nil || *first.AIScore < 9.5-1e-9 || *first.AIScore > 9.5+1e-9 {
		t.Errorf("AIScore = %v, want 9.5", first.AIScore)
	}

	second := headlines[1]
	if second.MatchedAssets[0] != "semiconductors" {
		t.Errorf("MatchedAssets = %v, want [semiconductors]", second.MatchedAssets)
	}

	third := headlines[2]
	if third.TriageStatus != models.TriageNoise {
		t.Errorf("unmatched item status = %s, want noise", third.TriageStatus)
	}
	if len(third.MatchedAssets) != 0 {
		t.Errorf("unmatched item assets = %v, want none", third.MatchedAssets)
	}

	// The query names every monitored asset.
	query := strings.Join(llm.prompts, "\n")
	if !strings.Contains(query, "LITHIUM") || !strings.Contains(query, "SEMICONDUCTORS") {
		t.Error("discovery query should mention each asset")
	}
}

func TestDiscovery_FencedResponse(t *testing.T) {
	llm := &stubLLM{response: "Here are the results:\n```json\n" + discoveryResponse + "\n```"}
	d := NewDiscovery(llm, &common.FeedsConfig{}, common.GetLogger())

	headlines, err := d.Discover(context.Background(), testDiscoveryTaxonomies())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(headlines) != 3 {
		t.Errorf("got %d headlines, want 3", len(headlines))
	}
}

func TestDiscovery_Errors(t *testing.T) {
	d := NewDiscovery(&stubLLM{err: fmt.Errorf("rate limited")}, &common.FeedsConfig{}, common.GetLogger())
	if _, err := d.Discover(context.Background(), testDiscoveryTaxonomies()); err == nil {
		t.Error("expected error when the model call fails")
	}

	d = NewDiscovery(&stubLLM{response: "I could not find any news today."}, &common.FeedsConfig{}, common.GetLogger())
	if _, err := d.Discover(context.Background(), testDiscoveryTaxonomies()); err == nil {
		t.Error("expected error for a response without a JSON array")
	}
}

func TestDiscoveryConfidence(t *testing.T) {
	tests := []struct {
		relevance  float64
		assetCount int
		want       float64
	}{
		{0.88, 1, 0.95},
		{0.62, 1, 0.72},
		{0.55, 0, 0.55},
		{0, 0, 0.6},
		{0.2, 0, 0.5},
	}

	for _, tt := range tests {
		got := discoveryConfidence(tt.relevance, tt.assetCount)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("discoveryConfidence(%v, %d) = %v, want %v", tt.relevance, tt.assetCount, got, tt.want)
		}
	}
}
