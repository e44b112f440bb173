package risk

import "github.com/ternarybob/sentinel/internal/models"

// ScoreToLevel converts a numeric risk score to its level band. This is
// the single source of truth for level classification; every display and
// comparison of a level goes through it.
func ScoreToLevel(score float64) models.RiskLevel {
	switch {
	case score < 3:
		return models.RiskLow
	case score < 5:
		return models.RiskModerate
	case score < 7:
		return models.RiskElevated
	default:
		return models.RiskCritical
	}
}

// LevelColor returns the display color for a risk level
func LevelColor(level models.RiskLevel) string {
	switch level {
	case models.RiskLow:
		return "#10b981"
	case models.RiskModerate:
		return "#f59e0b"
	case models.RiskElevated:
		return "#f97316"
	case models.RiskCritical:
		return "#ef4444"
	default:
		return "#6b7280"
	}
}
