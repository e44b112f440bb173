package risk

import "github.com/ternarybob/sentinel/internal/models"

// ApplyWeighting adjusts a risk score by a directional model judgment.
// This is the alternative path to component scoring: the caller picks
// one path per update, never both.
func ApplyWeighting(currentScore float64, weighting *models.RiskWeighting) float64 {
	newScore := currentScore

	switch weighting.Direction {
	case models.DirectionIncrease:
		newScore = clamp(currentScore+weighting.Magnitude, 0, 10)
	case models.DirectionDecrease:
		newScore = clamp(currentScore-weighting.Magnitude, 0, 10)
	}

	return round1(newScore)
}

// NeutralWeighting is the fallback when a weighting call fails: no
// directional change, mid-range component scores.
func NeutralWeighting(reason string) *models.RiskWeighting {
	return &models.RiskWeighting{
		Direction:  models.DirectionNeutral,
		Magnitude:  0,
		Confidence: 0.5,
		Reasoning:  reason,
		Components: models.WeightingComponents{
			SupplyDisruption:     5,
			MarketSentiment:      5,
			CompanyExposure:      5,
			GeopoliticalSeverity: 5,
			HistoricalPrecedent:  5,
		},
	}
}
