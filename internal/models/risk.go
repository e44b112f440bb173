package models

import "time"

// RiskComponent is one weighted sub-score contributing to a risk value.
type RiskComponent struct {
	Factor      string  `json:"factor"`
	Weight      float64 `json:"weight"`
	Score       float64 `json:"score"` // 0-10
	Description string  `json:"description"`
}

// RiskScore is the deterministic scoring result. Value is the weighted sum of
// the components rounded to one decimal; Level is derived from Value via
// risk.ScoreToLevel. Computed fresh on every analysis event, never mutated.
type RiskScore struct {
	Value        float64         `json:"value"` // 0-10, one decimal
	Level        RiskLevel       `json:"level"`
	Components   []RiskComponent `json:"components"`
	CalculatedAt time.Time       `json:"calculated_at"`
}

// WeightingDirection is the direction of an external risk judgment.
type WeightingDirection string

const (
	DirectionIncrease WeightingDirection = "increase"
	DirectionDecrease WeightingDirection = "decrease"
	DirectionNeutral  WeightingDirection = "neutral"
)

// WeightingComponents mirrors the five risk components on the 0-10 scale.
// Display only; the applicator arithmetic uses direction and magnitude alone.
type WeightingComponents struct {
	SupplyDisruption     float64 `json:"supply_disruption"`
	MarketSentiment      float64 `json:"market_sentiment"`
	CompanyExposure      float64 `json:"company_exposure"`
	GeopoliticalSeverity float64 `json:"geopolitical_severity"`
	HistoricalPrecedent  float64 `json:"historical_precedent"`
}

// RiskWeighting is an external directional judgment used as an alternative to
// component scoring. Magnitude is only meaningful when Direction is not
// neutral; applying it never pushes a score outside [0,10].
type RiskWeighting struct {
	Direction  WeightingDirection  `json:"direction" validate:"required,oneof=increase decrease neutral"`
	Magnitude  float64             `json:"magnitude" validate:"gte=0,lte=10"`
	Confidence float64             `json:"confidence" validate:"gte=0,lte=1"`
	Reasoning  string              `json:"reasoning"`
	Components WeightingComponents `json:"components"`
}

// RiskSignal records one completed analysis cycle for an asset: the event,
// the normalized analysis, and the score transition it produced.
type RiskSignal struct {
	ID        string    `json:"id" badgerhold:"index"`
	AssetID   string    `json:"asset_id" badgerhold:"index"`
	Timestamp time.Time `json:"timestamp"`

	RiskScore         float64   `json:"risk_score"`
	RiskLevel         RiskLevel `json:"risk_level"`
	PreviousRiskScore float64   `json:"previous_risk_score"`
	RiskChange        float64   `json:"risk_change"`

	Event    Event          `json:"event"`
	Analysis ImpactAnalysis `json:"analysis"`

	Confidence float64 `json:"confidence"`
	Severity   float64 `json:"severity"`
	Status     string  `json:"status"` // active, monitoring, resolved
}
