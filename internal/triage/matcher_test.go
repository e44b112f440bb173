package triage

import (
	"testing"

	"github.com/ternarybob/sentinel/internal/models"
)

func lithiumTaxonomy() models.KeywordTaxonomy {
	return models.KeywordTaxonomy{
		Primary:   []string{"lithium", "li-ion", "battery metal", "sqm", "albemarle", "pilbara", "livent"},
		Locations: []string{"chile", "atacama", "argentina", "australia", "nevada", "salar"},
		Events:    []string{"strike", "protest", "disruption", "halt", "shutdown", "closure", "suspend", "drought"},
		Companies: []string{"sqm", "albemarle", "pilbara", "livent", "ganfeng", "tianqi"},
	}
}

func TestKeywordMatcher_Match(t *testing.T) {
	matcher := NewKeywordMatcher(DefaultMatcherConfig())
	taxonomy := lithiumTaxonomy()

	tests := []struct {
		name        string
		title       string
		description string
		wantMatch   bool
		wantMin     float64
	}{
		{
			name:      "primary plus location plus event plus company",
			title:     "SQM workers strike at Atacama lithium operations",
			wantMatch: true,
			wantMin:   0.9,
		},
		{
			name:      "primary with event context",
			title:     "Lithium production halt announced",
			wantMatch: true,
			wantMin:   0.5,
		},
		{
			name:      "primary only, no context",
			title:     "Lithium prices steady this quarter",
			wantMatch: false,
		},
		{
			name:      "event only, no primary",
			title:     "Workers strike at copper mine",
			wantMatch: false,
		},
		{
			name:      "irrelevant headline",
			title:     "Local sports team wins championship",
			wantMatch: false,
		},
		{
			name:        "keywords in description count",
			title:       "Mining update",
			description: "SQM suspends lithium output in Chile amid protests",
			wantMatch:   true,
			wantMin:     0.5,
		},
		{
			name:      "case insensitive matching",
			title:     "LITHIUM SHUTDOWN IN CHILE",
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &models.Headline{Title: tt.title, Description: tt.description}
			result := matcher.Match(h, taxonomy)

			if result.Matches != tt.wantMatch {
				t.Errorf("Match() = %v, want %v (score=%.2f, keywords=%v)",
					result.Matches, tt.wantMatch, result.Score, result.Keywords)
			}
			if result.Score < tt.wantMin {
				t.Errorf("Score = %.2f, want >= %.2f", result.Score, tt.wantMin)
			}
			if result.Score > 1.0 {
				t.Errorf("Score = %.2f exceeds 1.0 cap", result.Score)
			}
		})
	}
}

func TestKeywordMatcher_ScoreCapped(t *testing.T) {
	matcher := NewKeywordMatcher(DefaultMatcherConfig())

	// Every bucket hits multiple times, raw sum is well above 1.0
	h := &models.Headline{
		Title: "SQM Albemarle Pilbara lithium strike protest shutdown in Chile Atacama Argentina",
	}
	result := matcher.Match(h, lithiumTaxonomy())

	if !result.Matches {
		t.Fatal("expected dense keyword headline to match")
	}
	if result.Score != 1.0 {
		t.Errorf("Score = %.2f, want exactly 1.0", result.Score)
	}
}

func TestKeywordMatcher_EmptyTaxonomy(t *testing.T) {
	matcher := NewKeywordMatcher(DefaultMatcherConfig())

	h := &models.Headline{Title: "Anything at all"}
	result := matcher.Match(h, models.KeywordTaxonomy{})

	if result.Matches {
		t.Error("empty taxonomy must never match")
	}
	if result.Score != 0 {
		t.Errorf("Score = %.2f, want 0", result.Score)
	}
}
