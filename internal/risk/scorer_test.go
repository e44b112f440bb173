package risk

import (
	"math"
	"testing"

	"github.com/ternarybob/sentinel/internal/models"
)

func testAsset() *models.Asset {
	return &models.Asset{
		ID:   "lithium",
		Name: "Lithium",
		Monitoring: models.MonitoringConfig{
			Companies: []models.Company{
				{Name: "SQM", Symbol: "SQM", Exposure: 95, Relationship: "producer"},
				{Name: "Albemarle", Symbol: "ALB", Exposure: 90, Relationship: "producer"},
				{Name: "Tesla", Symbol: "TSLA", Exposure: 75, Relationship: "consumer"},
				{Name: "Minor Co", Symbol: "MNR", Exposure: 40, Relationship: "competitor"},
			},
		},
	}
}

func strikeEvent() *models.Event {
	return &models.Event{
		Title:     "Workers strike at lithium mine",
		EventType: models.EventStrike,
	}
}

func TestScorer_WeightsSumToOne(t *testing.T) {
	cfg := DefaultScorerConfig()
	sum := cfg.SupplyDisruptionWeight + cfg.MarketSentimentWeight +
		cfg.CompanyExposureWeight + cfg.GeopoliticalSeverityWeight +
		cfg.HistoricalPrecedentWeight

	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("component weights sum to %.4f, want 1.0", sum)
	}
}

func TestScorer_StrikeScenario(t *testing.T) {
	// 12% supply figure with no first-order impact: supply tier 4.5,
	// exposure defaults to 5, severity 6.0, precedent 4.0.
	scorer := NewScorer(DefaultScorerConfig())

	analysis := &models.ImpactAnalysis{
		Impacts: []models.Impact{
			{
				Order:       models.OrderPrimary,
				Description: "Strike removes 12% of global lithium supply",
				Magnitude:   6,
			},
		},
	}

	score := scorer.Calculate(testAsset(), strikeEvent(), analysis)

	// sentiment: 0 entities + avg magnitude 6*0.5 = 3.0
	want := round1(0.30*4.5 + 0.20*3.0 + 0.25*5 + 0.15*6.0 + 0.10*4.0)
	if score.Value != want {
		t.Errorf("Value = %.2f, want %.2f", score.Value, want)
	}

	for _, c := range score.Components {
		switch c.Factor {
		case "Supply Disruption":
			if c.Score != 4.5 {
				t.Errorf("supply disruption = %.1f, want 4.5", c.Score)
			}
		case "Company Exposure":
			if c.Score != 5 {
				t.Errorf("company exposure = %.1f, want 5 (no first-order impact)", c.Score)
			}
		case "Geopolitical Severity":
			if c.Score != 6.0 {
				t.Errorf("geopolitical severity = %.1f, want 6.0 for strike", c.Score)
			}
		case "Historical Precedent":
			if c.Score != 4.0 {
				t.Errorf("historical precedent = %.1f, want 4.0", c.Score)
			}
		}
	}
}

func TestScorer_SupplyDisruptionTiers(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())

	tests := []struct {
		name        string
		description string
		want        float64
	}{
		{"critical tier", "Event removes 35% of supply", 9.5},
		{"elevated tier", "Around 20% of output offline", 7.0},
		{"moderate tier", "Roughly 8% disruption expected", 4.5},
		{"low tier scales", "Minor 4% impact on flows", 2.0},
		{"no percentage", "Supply impact unclear at this stage", 0},
		{"decimal percentage", "An estimated 15.5% of capacity halted", 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := &models.ImpactAnalysis{
				Impacts: []models.Impact{
					{Order: models.OrderPrimary, Description: tt.description},
				},
			}
			got := scorer.scoreSupplyDisruption(analysis)
			if got != tt.want {
				t.Errorf("scoreSupplyDisruption() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestScorer_SupplyDisruptionNoPrimary(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())
	analysis := &models.ImpactAnalysis{
		Impacts: []models.Impact{
			{Order: models.OrderFirst, Description: "50% of something"},
		},
	}
	if got := scorer.scoreSupplyDisruption(analysis); got != 0 {
		t.Errorf("scoreSupplyDisruption() = %.2f, want 0 without primary impact", got)
	}
}

func TestScorer_CompanyExposure(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())
	asset := testAsset()

	tests := []struct {
		name     string
		analysis *models.ImpactAnalysis
		want     float64
	}{
		{
			name: "high exposure companies matched",
			analysis: &models.ImpactAnalysis{
				Impacts: []models.Impact{
					{
						Order: models.OrderFirst,
						AffectedEntities: []models.AffectedEntity{
							{Name: "SQM", ImpactMagnitude: 8},
							{Name: "Albemarle", ImpactMagnitude: 6},
						},
					},
				},
			},
			want: 7,
		},
		{
			name: "low exposure company ignored",
			analysis: &models.ImpactAnalysis{
				Impacts: []models.Impact{
					{
						Order: models.OrderFirst,
						AffectedEntities: []models.AffectedEntity{
							{Name: "Minor Co", ImpactMagnitude: 9},
						},
					},
				},
			},
			want: 3,
		},
		{
			name:     "no first-order impact",
			analysis: &models.ImpactAnalysis{},
			want:     5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.scoreCompanyExposure(asset, tt.analysis)
			if got != tt.want {
				t.Errorf("scoreCompanyExposure() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestScorer_GeopoliticalSeverity(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())

	tests := []struct {
		eventType models.EventType
		want      float64
	}{
		{models.EventConflict, 9.0},
		{models.EventPoliticalUnrest, 8.0},
		{models.EventNaturalDisaster, 7.5},
		{models.EventTradePolicy, 6.5},
		{models.EventStrike, 6.0},
		{models.EventRegulation, 5.0},
		{models.EventTechnologyDisruption, 4.0},
		{models.EventMarketMovement, 3.0},
		{models.EventType("unknown"), 5.0},
	}

	for _, tt := range tests {
		got := scorer.scoreGeopoliticalSeverity(&models.Event{EventType: tt.eventType})
		if got != tt.want {
			t.Errorf("severity(%s) = %.1f, want %.1f", tt.eventType, got, tt.want)
		}
	}
}

func TestScorer_HistoricalPrecedent(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())

	tests := []struct {
		name     string
		analysis *models.ImpactAnalysis
		want     float64
	}{
		{
			name: "both impacts and opportunities reference history",
			analysis: &models.ImpactAnalysis{
				Impacts: []models.Impact{
					{Description: "Similar to the 2019 disruption"},
				},
				Opportunities: []models.Opportunity{
					{Description: "Historically prices recover within weeks"},
				},
			},
			want: 8.0,
		},
		{
			name: "only impacts reference history",
			analysis: &models.ImpactAnalysis{
				Impacts: []models.Impact{
					{Description: "Past events of this type lasted months"},
				},
			},
			want: 6.0,
		},
		{
			name:     "no historical language",
			analysis: &models.ImpactAnalysis{},
			want:     4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.scoreHistoricalPrecedent(tt.analysis)
			if got != tt.want {
				t.Errorf("scoreHistoricalPrecedent() = %.1f, want %.1f", got, tt.want)
			}
		})
	}
}

func TestScorer_Boundedness(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())
	asset := testAsset()

	analyses := []*models.ImpactAnalysis{
		{},
		{Impacts: []models.Impact{{Order: models.OrderPrimary, Description: "99% wiped out", Magnitude: 10,
			AffectedEntities: []models.AffectedEntity{
				{Name: "SQM", ImpactMagnitude: 10},
				{Name: "Albemarle", ImpactMagnitude: 10},
				{Name: "Tesla", ImpactMagnitude: 10},
				{Name: "a", ImpactMagnitude: 10},
				{Name: "b", ImpactMagnitude: 10},
				{Name: "c", ImpactMagnitude: 10},
			}}}},
		{Impacts: []models.Impact{{Order: models.OrderPrimary, Description: "no numbers here"}}},
	}
	events := []*models.Event{nil, strikeEvent(), {EventType: models.EventConflict}}

	for _, analysis := range analyses {
		for _, event := range events {
			score := scorer.Calculate(asset, event, analysis)
			if score.Value < 0 || score.Value > 10 {
				t.Errorf("score %.2f out of [0,10]", score.Value)
			}
		}
	}
}

func TestScoreToLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  models.RiskLevel
	}{
		{0, models.RiskLow},
		{2.9, models.RiskLow},
		{3.0, models.RiskModerate},
		{4.9, models.RiskModerate},
		{5.0, models.RiskElevated},
		{6.9, models.RiskElevated},
		{7.0, models.RiskCritical},
		{10, models.RiskCritical},
	}

	for _, tt := range tests {
		if got := ScoreToLevel(tt.score); got != tt.want {
			t.Errorf("ScoreToLevel(%.1f) = %s, want %s", tt.score, got, tt.want)
		}
	}

	// Monotonic non-decreasing over the whole range
	order := map[models.RiskLevel]int{
		models.RiskLow: 0, models.RiskModerate: 1, models.RiskElevated: 2, models.RiskCritical: 3,
	}
	prev := -1
	for s := 0.0; s <= 10.0; s += 0.1 {
		cur := order[ScoreToLevel(s)]
		if cur < prev {
			t.Fatalf("ScoreToLevel not monotonic at %.1f", s)
		}
		prev = cur
	}
}
