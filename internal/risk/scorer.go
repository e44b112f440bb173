package risk

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/sentinel/internal/models"
)

var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// ScorerConfig holds the component weights and severity table for risk
// calculation. Weights must sum to 1.0.
type ScorerConfig struct {
	SupplyDisruptionWeight     float64
	MarketSentimentWeight      float64
	CompanyExposureWeight      float64
	GeopoliticalSeverityWeight float64
	HistoricalPrecedentWeight  float64

	// ExposureFloor selects which monitored companies count as
	// high-exposure for the company exposure component.
	ExposureFloor float64

	// Severity maps event types to a fixed geopolitical severity score
	Severity map[models.EventType]float64

	// DefaultSeverity applies to event types missing from the table
	DefaultSeverity float64
}

// DefaultScorerConfig returns the standard five-component weighting
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		SupplyDisruptionWeight:     0.30,
		MarketSentimentWeight:      0.20,
		CompanyExposureWeight:      0.25,
		GeopoliticalSeverityWeight: 0.15,
		HistoricalPrecedentWeight:  0.10,
		ExposureFloor:              70,
		Severity: map[models.EventType]float64{
			models.EventConflict:             9.0,
			models.EventPoliticalUnrest:      8.0,
			models.EventNaturalDisaster:      7.5,
			models.EventTradePolicy:          6.5,
			models.EventStrike:               6.0,
			models.EventRegulation:           5.0,
			models.EventTechnologyDisruption: 4.0,
			models.EventMarketMovement:       3.0,
		},
		DefaultSeverity: 5.0,
	}
}

// Scorer computes quantitative risk scores from event analysis.
// All methods are pure and never fail: malformed sub-inputs degrade
// to documented defaults.
type Scorer struct {
	config ScorerConfig
}

// NewScorer creates a risk scorer with the given configuration
func NewScorer(config ScorerConfig) *Scorer {
	return &Scorer{config: config}
}

// Calculate produces a weighted risk score for an asset given an event
// and its impact analysis.
func (s *Scorer) Calculate(asset *models.Asset, event *models.Event, analysis *models.ImpactAnalysis) models.RiskScore {
	components := []models.RiskComponent{
		{
			Factor:      "Supply Disruption",
			Weight:      s.config.SupplyDisruptionWeight,
			Score:       s.scoreSupplyDisruption(analysis),
			Description: "Impact on global supply availability",
		},
		{
			Factor:      "Market Sentiment",
			Weight:      s.config.MarketSentimentWeight,
			Score:       s.scoreMarketSentiment(analysis),
			Description: "Investor reaction and market volatility",
		},
		{
			Factor:      "Company Exposure",
			Weight:      s.config.CompanyExposureWeight,
			Score:       s.scoreCompanyExposure(asset, analysis),
			Description: "Direct exposure of key companies",
		},
		{
			Factor:      "Geopolitical Severity",
			Weight:      s.config.GeopoliticalSeverityWeight,
			Score:       s.scoreGeopoliticalSeverity(event),
			Description: "Political stability and conflict risk",
		},
		{
			Factor:      "Historical Precedent",
			Weight:      s.config.HistoricalPrecedentWeight,
			Score:       s.scoreHistoricalPrecedent(analysis),
			Description: "Comparison to past similar events",
		},
	}

	var total float64
	for _, c := range components {
		total += c.Weight * c.Score
	}

	return models.RiskScore{
		Value:        round1(total),
		Level:        ScoreToLevel(total),
		Components:   components,
		CalculatedAt: time.Now(),
	}
}

// scoreSupplyDisruption extracts a supply percentage figure from the
// primary impact description and maps it through tiered thresholds.
func (s *Scorer) scoreSupplyDisruption(analysis *models.ImpactAnalysis) float64 {
	primary := analysis.PrimaryImpact()
	if primary == nil {
		return 0
	}

	var supplyPercent float64
	if m := percentPattern.FindStringSubmatch(primary.Description); m != nil {
		supplyPercent, _ = strconv.ParseFloat(m[1], 64)
	}

	switch {
	case supplyPercent >= 30:
		return 9.5
	case supplyPercent >= 15:
		return 7.0
	case supplyPercent >= 5:
		return 4.5
	default:
		return clamp(supplyPercent/2, 0, 3.0)
	}
}

// scoreMarketSentiment combines affected-entity breadth with average
// impact magnitude.
func (s *Scorer) scoreMarketSentiment(analysis *models.ImpactAnalysis) float64 {
	var affectedCount int
	var magnitudeSum float64
	for _, impact := range analysis.Impacts {
		affectedCount += len(impact.AffectedEntities)
		magnitudeSum += impact.Magnitude
	}

	impactCount := len(analysis.Impacts)
	if impactCount == 0 {
		impactCount = 1
	}
	avgMagnitude := magnitudeSum / float64(impactCount)

	entityFactor := clamp(float64(affectedCount)/5, 0, 1) * 5
	magnitudeFactor := avgMagnitude * 0.5

	return clamp(entityFactor+magnitudeFactor, 0, 10)
}

// scoreCompanyExposure averages the impact magnitude on monitored
// high-exposure companies named in the first-order impact.
func (s *Scorer) scoreCompanyExposure(asset *models.Asset, analysis *models.ImpactAnalysis) float64 {
	firstOrder := analysis.FirstOrderImpact()
	if firstOrder == nil {
		return 5
	}

	highExposure := make(map[string]bool)
	for _, company := range asset.Monitoring.Companies {
		if company.Exposure >= s.config.ExposureFloor {
			highExposure[company.Name] = true
		}
	}

	var sum float64
	var matched int
	for _, entity := range firstOrder.AffectedEntities {
		if highExposure[entity.Name] {
			sum += entity.ImpactMagnitude
			matched++
		}
	}

	if matched == 0 {
		return 3
	}
	return sum / float64(matched)
}

func (s *Scorer) scoreGeopoliticalSeverity(event *models.Event) float64 {
	if event == nil {
		return s.config.DefaultSeverity
	}
	if severity, ok := s.config.Severity[event.EventType]; ok {
		return severity
	}
	return s.config.DefaultSeverity
}

// scoreHistoricalPrecedent looks for historical references in the
// analysis text.
func (s *Scorer) scoreHistoricalPrecedent(analysis *models.ImpactAnalysis) float64 {
	hasHistoricalImpacts := false
	for _, impact := range analysis.Impacts {
		desc := strings.ToLower(impact.Description)
		if strings.Contains(desc, "historical") || strings.Contains(desc, "similar") || strings.Contains(desc, "past") {
			hasHistoricalImpacts = true
			break
		}
	}

	hasHistoricalOpportunities := false
	for _, opp := range analysis.Opportunities {
		desc := strings.ToLower(opp.Description)
		if strings.Contains(desc, "historically") || strings.Contains(desc, "pattern") {
			hasHistoricalOpportunities = true
			break
		}
	}

	if hasHistoricalImpacts && hasHistoricalOpportunities {
		return 8.0
	}
	if hasHistoricalImpacts || hasHistoricalOpportunities {
		return 6.0
	}
	return 4.0
}
