package models

// ImpactOrder is the primary/first/second/third-order tier of an impact.
type ImpactOrder string

const (
	OrderPrimary ImpactOrder = "primary"
	OrderFirst   ImpactOrder = "first"
	OrderSecond  ImpactOrder = "second"
	OrderThird   ImpactOrder = "third"
)

// OpportunityType is the directional type of a trading opportunity.
type OpportunityType string

const (
	OpportunityLong      OpportunityType = "long"
	OpportunityShort     OpportunityType = "short"
	OpportunityArbitrage OpportunityType = "arbitrage"
	OpportunityHedge     OpportunityType = "hedge"
)

// Citation is one piece of search-result evidence backing an analysis.
type Citation struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Source    string  `json:"source"`
	Snippet   string  `json:"snippet"`
	Date      string  `json:"date,omitempty"`
	Relevance float64 `json:"relevance"`
}

// AffectedEntity is a company, country, commodity or market hit by an impact.
type AffectedEntity struct {
	Type              string  `json:"type"` // company, country, commodity, market
	Name              string  `json:"name" validate:"required"`
	Symbol            string  `json:"symbol,omitempty"`
	ImpactDescription string  `json:"impact_description"`
	ImpactMagnitude   float64 `json:"impact_magnitude" validate:"gte=0,lte=10"`
}

// Impact is one tier of the cascading impact analysis.
type Impact struct {
	Order            ImpactOrder      `json:"order" validate:"required,oneof=primary first second third"`
	Description      string           `json:"description" validate:"required"`
	Magnitude        float64          `json:"magnitude" validate:"gte=0,lte=10"`
	Timeframe        string           `json:"timeframe"`
	AffectedEntities []AffectedEntity `json:"affected_entities" validate:"dive"`
	Confidence       float64          `json:"confidence" validate:"gte=0,lte=1"`
	Citations        []Citation       `json:"citations"`
}

// OpportunityCompany binds an opportunity to a tradable company. Price and
// sector are filled by quote enrichment when available.
type OpportunityCompany struct {
	Name          string  `json:"name"`
	Ticker        string  `json:"ticker"`
	Sector        string  `json:"sector,omitempty"`
	CurrentPrice  float64 `json:"current_price,omitempty"`
	ChangePercent float64 `json:"change_percent,omitempty"`
}

// Opportunity is a suggested trading opportunity derived from an analysis.
type Opportunity struct {
	Type             OpportunityType     `json:"type" validate:"required,oneof=long short arbitrage hedge"`
	Description      string              `json:"description" validate:"required"`
	SuggestedActions []string            `json:"suggested_actions"`
	PotentialReturn  float64             `json:"potential_return"`
	RiskLevel        RiskLevel           `json:"risk_level"`
	Timeframe        string              `json:"timeframe"`
	Citations        []Citation          `json:"citations"`
	Company          *OpportunityCompany `json:"company,omitempty"`
	Confidence       float64             `json:"confidence,omitempty"`
}

// ReasoningStep is one step of the external model's reasoning trace.
type ReasoningStep struct {
	Thought string `json:"thought"`
	Type    string `json:"type"` // web_search, fetch_url_content, execute_python
}

// ImpactAnalysis is the normalized output of a deep-reasoning call. It is
// produced once per analysis request, immutable after creation, and consumed
// by the risk scorer. Every magnitude/confidence field is clamped to its
// documented range before the scorer trusts it; absent tiers are valid.
type ImpactAnalysis struct {
	Summary        string          `json:"summary"`
	Impacts        []Impact        `json:"impacts"`
	Opportunities  []Opportunity   `json:"opportunities"`
	Citations      []Citation      `json:"citations"`
	ReasoningSteps []ReasoningStep `json:"reasoning_steps,omitempty"`
}

// PrimaryImpact returns the first primary-tier impact, or nil.
func (a *ImpactAnalysis) PrimaryImpact() *Impact {
	return a.impactByOrder(OrderPrimary)
}

// FirstOrderImpact returns the first first-order impact, or nil.
func (a *ImpactAnalysis) FirstOrderImpact() *Impact {
	return a.impactByOrder(OrderFirst)
}

func (a *ImpactAnalysis) impactByOrder(order ImpactOrder) *Impact {
	for i := range a.Impacts {
		if a.Impacts[i].Order == order {
			return &a.Impacts[i]
		}
	}
	return nil
}
