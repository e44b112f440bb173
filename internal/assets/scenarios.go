package assets

import (
	"fmt"

	"github.com/ternarybob/sentinel/internal/models"
)

// ErrScenarioNotFound signals an unknown demo scenario id
var ErrScenarioNotFound = fmt.Errorf("scenario not found")

// GetScenario returns the demo scenario with the given id
func GetScenario(id string) (*models.DemoScenario, error) {
	for _, scenario := range demoScenarios {
		if scenario.ID == id {
			return scenario, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
}

// ScenariosByAsset returns all demo scenarios for an asset
func ScenariosByAsset(assetID string) []*models.DemoScenario {
	var result []*models.DemoScenario
	for _, scenario := range demoScenarios {
		if scenario.AssetID == assetID {
			result = append(result, scenario)
		}
	}
	return result
}

// AllScenarios returns every demo scenario
func AllScenarios() []*models.DemoScenario {
	return demoScenarios
}

// demoScenarios hold curated events with pre-built analyses so the
// pipeline can be demonstrated without live model calls.
var demoScenarios = []*models.DemoScenario{
	{
		ID:                "lithium-chile-strike",
		Name:              "Chilean Mining Strike - Salar de Atacama",
		AssetID:           "lithium",
		Description:       "Major strike at SQM's Salar de Atacama facility affecting 12% of global lithium supply",
		EventType:         models.EventStrike,
		ExpectedRiskScore: 6.8,
		EventText: `Breaking: Workers at SQM's Salar de Atacama lithium facility have initiated an indefinite strike over wage disputes and working conditions. The facility, which produces approximately 12% of the world's lithium carbonate, has halted operations. Union spokesperson Carlos Mendoza stated: "We will not return until our demands are met." The strike affects approximately 800 workers and comes at a critical time as global demand for battery-grade lithium continues to surge.`,
		PreloadedAnalysis: &models.ImpactAnalysis{
			Summary: "Strike at Chile's Salar de Atacama facility disrupts 12% of global lithium supply, directly impacting Tesla and Panasonic battery production with potential 6-8 week delivery delays. Historical patterns suggest Australian lithium miners will see 8-12% stock price increases.",
			Impacts: []models.Impact{
				{
					Order:       models.OrderPrimary,
					Description: "SQM's Salar de Atacama facility produces approximately 70,000 tonnes of lithium carbonate annually, representing 12% of global supply. With operations halted indefinitely, this creates immediate supply constraints in the spot market. Current lithium carbonate prices at $18,500/tonne could spike 15-20% within 2 weeks based on similar 2023 disruptions.",
					Magnitude:   8.5,
					Timeframe:   "Immediate to 4 weeks",
					AffectedEntities: []models.AffectedEntity{
						{Type: "company", Name: "SQM", Symbol: "SQM", ImpactDescription: "Complete production halt at primary facility. Revenue impact estimated at $12-15M per week. Stock typically drops 5-8% on strike news.", ImpactMagnitude: 9},
						{Type: "commodity", Name: "Lithium Carbonate", ImpactDescription: "Spot prices expected to increase 15-20% due to supply shock. Long-term contracts may see force majeure clauses triggered.", ImpactMagnitude: 8},
					},
					Confidence: 0.92,
					Citations:  scenarioCitations[0:2],
				},
				{
					Order:       models.OrderFirst,
					Description: "Tesla and Panasonic maintain 4-6 week lithium carbonate inventory for battery production. Both companies source approximately 25-30% of their lithium from SQM through long-term contracts. Extended strike (>6 weeks) would force production slowdowns at Gigafactory Nevada and trigger alternative sourcing at premium prices (+30-40% above contract rates).",
					Magnitude:   7.5,
					Timeframe:   "6-8 weeks",
					AffectedEntities: []models.AffectedEntity{
						{Type: "company", Name: "Tesla", Symbol: "TSLA", ImpactDescription: "Gigafactory Nevada produces 35 GWh of battery capacity annually, requiring ~8,400 tonnes of lithium carbonate. SQM supplies 28% of this. Supply disruption could delay Model 3/Y production by 12-15 days.", ImpactMagnitude: 7.8},
						{Type: "company", Name: "Panasonic", Symbol: "PCRFY", ImpactDescription: "Battery division revenue $7.2B annually. SQM represents 24% of lithium sourcing. Will activate secondary suppliers at 35-40% price premium, impacting Q4 margins by 180-220 basis points.", ImpactMagnitude: 7.2},
					},
					Confidence: 0.88,
					Citations:  scenarioCitations[2:4],
				},
				{
					Order:       models.OrderSecond,
					Description: "Downstream automotive manufacturers (GM, Ford, VW) who rely on Tesla/Panasonic battery supplies will face allocation pressures. Chinese battery manufacturers (CATL, BYD) gain competitive advantage as they source primarily from Australian and domestic Chinese lithium. European EV production schedules at risk for Q1 delivery commitments.",
					Magnitude:   6.2,
					Timeframe:   "3-6 months",
					AffectedEntities: []models.AffectedEntity{
						{Type: "company", Name: "General Motors", Symbol: "GM", ImpactDescription: "Ultium battery platform depends on LG Energy Solution. Minimal direct impact but potential cost increases of 8-12% if lithium prices spike broadly.", ImpactMagnitude: 5.5},
						{Type: "company", Name: "BYD", Symbol: "1211.HK", ImpactDescription: "Vertically integrated lithium sourcing from Australia and China. Benefits from competitors' supply constraints. Historical data shows 3-5% stock price increase during Chilean lithium disruptions.", ImpactMagnitude: -4.5},
					},
					Confidence: 0.75,
					Citations:  scenarioCitations[4:5],
				},
			},
			Opportunities: []models.Opportunity{
				{
					Type:        models.OpportunityLong,
					Description: "Australian lithium producers historically see 8-12% stock price increases within 7-10 days of Chilean supply disruptions as market anticipates demand shift. Pilbara Minerals (PLS.AX) and Liontown Resources (LTR.AX) are primary beneficiaries.",
					SuggestedActions: []string{
						"Long PLS.AX (Pilbara Minerals) - Target +10% over 2 weeks",
						"Long ALB (Albemarle) - Non-Chilean producer gains pricing power",
						"Long LTHM (Livent) - Argentina operations unaffected",
					},
					PotentialReturn: 10,
					RiskLevel:       models.RiskModerate,
					Timeframe:       "2-4 weeks",
					Citations:       scenarioCitations[5:7],
				},
				{
					Type:        models.OpportunityArbitrage,
					Description: "Lithium futures (CME) typically lag spot price increases by 3-5 days during supply shocks. Short-term futures contracts present arbitrage opportunity with 4-6% spread potential.",
					SuggestedActions: []string{
						"Long CME Lithium Hydroxide futures (nearest month)",
						"Monitor LME lithium carbonate contract for entry points",
						"Consider spread trade: Long Australian producers / Short Chilean producers",
					},
					PotentialReturn: 5,
					RiskLevel:       models.RiskElevated,
					Timeframe:       "1-2 weeks",
					Citations:       scenarioCitations[7:8],
				},
				{
					Type:        models.OpportunityHedge,
					Description: "For existing long positions in Tesla or battery manufacturers, hedge with long positions in Australian lithium miners or broad materials ETFs (XLB). Ratio: 1:0.3 hedge ratio based on historical correlation.",
					SuggestedActions: []string{
						"If long TSLA, hedge with PLS.AX at 30% position size",
						"Consider put options on TSLA with 60-90 day expiry",
						"Long XLB (Materials Select Sector ETF) for broad commodity exposure",
					},
					PotentialReturn: 0,
					RiskLevel:       models.RiskLow,
					Timeframe:       "Duration of strike",
					Citations:       scenarioCitations[8:9],
				},
			},
			Citations: scenarioCitations,
		},
	},
}

var scenarioCitations = []models.Citation{
	{ID: "cite-1", Title: "SQM Salar de Atacama Production Capacity", URL: "https://www.sqm.com/en/investors/production-capacity", Source: "SQM Investor Relations", Snippet: "Salar de Atacama operations capacity: 70,000 tonnes lithium carbonate per year", Date: "2024-08-15", Relevance: 0.98},
	{ID: "cite-2", Title: "Global Lithium Supply Analysis 2024", URL: "https://www.benchmark-minerals.com/lithium-supply", Source: "Benchmark Mineral Intelligence", Snippet: "Chile accounts for 32% of global lithium production, with SQM's Atacama operations representing the largest single source.", Date: "2024-09-22", Relevance: 0.95},
	{ID: "cite-3", Title: "Tesla Gigafactory Nevada Supply Chain Report", URL: "https://www.tesla.com/ns_videos/2023-impact-report.pdf", Source: "Tesla Impact Report 2023", Snippet: "Our Nevada facility maintains diversified lithium sourcing with primary contracts in Chile and Australia.", Date: "2023-04-10", Relevance: 0.89},
	{ID: "cite-4", Title: "Panasonic Battery Business Unit Disclosure", URL: "https://www.panasonic.com/global/corporate/ir/pdf/disclosure-2024.pdf", Source: "Panasonic Investor Relations", Snippet: "Raw material procurement strategy includes 60-90 day inventory buffers for critical materials including lithium compounds.", Date: "2024-06-30", Relevance: 0.87},
	{ID: "cite-5", Title: "Global EV Supply Chain Interdependencies", URL: "https://www.mckinsey.com/industries/automotive/ev-supply-chain", Source: "McKinsey & Company", Snippet: "Battery supply constraints represent the primary bottleneck for EV production scaling through 2026.", Date: "2024-07-18", Relevance: 0.82},
	{ID: "cite-6", Title: "Historical Analysis: Chilean Lithium Strikes and Market Response", URL: "https://www.bloomberg.com/lithium-market-analysis-2023", Source: "Bloomberg Intelligence", Snippet: "2023 SQM strike: Pilbara Minerals gained 11.2% in 9 trading days while Albemarle rose 7.8%. Correlation coefficient: 0.87", Date: "2023-11-05", Relevance: 0.94},
	{ID: "cite-7", Title: "Lithium Market Dynamics During Supply Shocks", URL: "https://www.ft.com/content/lithium-supply-analysis", Source: "Financial Times", Snippet: "Australian miners benefit disproportionately from South American production disruptions due to geographic diversification preferences among battery manufacturers.", Date: "2024-03-12", Relevance: 0.91},
	{ID: "cite-8", Title: "Lithium Futures Market Microstructure", URL: "https://www.cmegroup.com/markets/lithium-futures-analysis", Source: "CME Group", Snippet: "Lithium hydroxide futures historically show 2-4 day lag in pricing relative to spot market disruptions.", Date: "2024-08-28", Relevance: 0.86},
	{ID: "cite-9", Title: "Portfolio Hedging Strategies for Commodity Exposure", URL: "https://www.jpmorgan.com/commodities/hedging-strategies", Source: "J.P. Morgan Commodities Research", Snippet: "Cross-commodity hedging effectiveness improves during supply-driven disruptions versus demand-driven volatility.", Date: "2024-02-14", Relevance: 0.79},
}
