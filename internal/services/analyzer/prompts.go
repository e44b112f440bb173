package analyzer

import (
	"fmt"
	"strings"

	"github.com/ternarybob/sentinel/internal/models"
)

// buildAnalystPrompt wires the asset's supply chain context into the
// deep-analysis system prompt.
func buildAnalystPrompt(asset *models.Asset) string {
	producers := make([]string, 0, len(asset.SupplyChain.TopProducers))
	for _, p := range asset.SupplyChain.TopProducers {
		producers = append(producers, fmt.Sprintf("%s (%.0f%%)", p.Name, p.GlobalShare))
	}

	companies := make([]string, 0, len(asset.Monitoring.Companies))
	for _, c := range asset.Monitoring.Companies {
		companies = append(companies, c.Name)
	}

	return fmt.Sprintf(`You are a senior geopolitical risk analyst for a major hedge fund, specializing in %s markets with a focus on %s.

Your expertise includes:
- Supply chain analysis and critical node identification
- Financial impact quantification with specific company exposure
- Historical pattern recognition and correlation analysis
- Opportunity identification (arbitrage, hedging, positioning)

Your analysis MUST be:
1. QUANTITATIVE: Include exact percentages, timeframes, dollar amounts
2. SPECIFIC: Name exact companies, facilities, trade routes, mine names
3. EVIDENCE-BASED: Reference all claims with sources
4. COMPREHENSIVE: Identify cascading effects (Primary -> First-order -> Second-order)
5. ACTIONABLE: Find non-obvious opportunities based on historical patterns

Current context for %s:
- Top producers: %s
- Key exposed companies: %s
- Critical regions: %s

Respond in JSON format with this exact structure:
{
  "summary": "Brief 2-sentence executive summary",
  "impacts": [
    {
      "order": "primary|first|second",
      "description": "Specific, quantified impact description",
      "magnitude": 0-10,
      "timeframe": "e.g., 6-8 weeks, immediate, 3-6 months",
      "affectedEntities": [
        {
          "type": "company|country|commodity",
          "name": "Specific name",
          "symbol": "Stock symbol if applicable",
          "impactDescription": "How they're affected",
          "impactMagnitude": 0-10
        }
      ],
      "confidence": 0-1,
      "citationIds": [0, 1, 2]
    }
  ],
  "opportunities": [
    {
      "type": "long|short|arbitrage|hedge",
      "description": "Specific trading opportunity",
      "suggestedActions": ["Buy XYZ", "Short ABC"],
      "potentialReturn": percentage as number,
      "riskLevel": "low|moderate|elevated|critical",
      "timeframe": "time horizon",
      "citationIds": [3, 4]
    }
  ]
}`,
		asset.Category, asset.Name, asset.Name,
		strings.Join(producers, ", "),
		strings.Join(companies, ", "),
		strings.Join(asset.Monitoring.Regions, ", "))
}

// buildEventPrompt describes the triggering event and the required
// analysis stages.
func buildEventPrompt(asset *models.Asset, event *models.Event) string {
	location := event.Location.Country
	if event.Location.Region != "" {
		location += ", " + event.Location.Region
	}

	return fmt.Sprintf(`URGENT RISK ASSESSMENT REQUEST

Asset Under Analysis: %s (%s)
Current Risk Score: %.1f/10
Current Risk Level: %s

NEW EVENT DETECTED:
Title: %s
Type: %s
Location: %s
Source: %s

Event Details:
%s

REQUIRED ANALYSIS:

1. PRIMARY IMPACT
   - What %% of global %s supply is directly affected?
   - Which specific facility/mine/production site is impacted?
   - When will the impact be felt in global markets?
   - Provide SOURCE EVIDENCE for all claims

2. FIRST-ORDER IMPACTS
   - Which companies buy directly from this source?
   - What is each company's exposure percentage?
   - How will their stock prices likely respond?
   - What are their alternative supply options?

3. SECOND-ORDER IMPACTS
   - Which downstream industries depend on affected companies?
   - What geographic regions will feel secondary effects?
   - How will competitors respond?

4. HISTORICAL ANALYSIS
   - Find similar past events (strikes, closures, disruptions)
   - What happened to %s prices then?
   - Which stocks benefited? Which suffered?

5. TRADING OPPORTUNITIES
   - Which assets historically rise during %s in %s?
   - Specific stock symbols to buy/short
   - Arbitrage opportunities between related assets
   - Hedging strategies with concrete positions

Return structured JSON with all citation IDs referenced.`,
		asset.Name, asset.Symbol,
		asset.CurrentRiskScore, asset.RiskLevel,
		event.Title, event.EventType, location, event.Source.Name,
		event.Description,
		asset.Name, asset.Name,
		event.EventType, event.Location.Country)
}

// buildWeightingPrompt asks the fast model for a directional risk
// judgment with component scores.
func buildWeightingPrompt(asset *models.Asset, event *models.Event, analysis *models.ImpactAnalysis) string {
	var impactLines []string
	for _, impact := range analysis.Impacts {
		impactLines = append(impactLines, fmt.Sprintf("- %s: %s", strings.ToUpper(string(impact.Order)), impact.Description))
	}

	return fmt.Sprintf(`You are a geopolitical risk analyst. Analyze this event and determine its impact on %s risk.

**EVENT:**
%s
%s

**CURRENT RISK LEVEL:** %.1f/10

**ANALYSIS SUMMARY:**
%s

**YOUR TASK:**
Read the event carefully and determine:

1. **Direction**: Should risk INCREASE, DECREASE, or stay NEUTRAL?
   - INCREASE if: Supply disruption, conflict escalation, production shutdown, sanctions, political instability
   - DECREASE if: Resolution, increased production, stability, trade agreements, positive developments
   - NEUTRAL if: Minor news with no clear impact

2. **Magnitude**: How much should it change? (0-10 scale)
   - 0-2: Negligible (minor news, limited scope)
   - 3-4: Moderate (affects one region/company)
   - 5-6: Significant (major company/region affected)
   - 7-8: Severe (global supply concerns)
   - 9-10: Critical (existential threat, war, complete shutdown)

3. **Component Scores** (0-10 each):
   - Supply Disruption: How much is physical supply affected?
   - Market Sentiment: How will investors react?
   - Company Exposure: Are major companies directly impacted?
   - Geopolitical Severity: How severe is the political/military situation?
   - Historical Precedent: How does this compare to past events?

**CRITICAL RULES:**
- Read the event carefully - don't just use keywords
- Pipeline shutdown = INCREASE risk (supply disruption!)
- Strike/conflict = INCREASE risk
- Resolution/agreement = DECREASE risk
- Think about the real-world impact on supply and prices

Return ONLY a JSON object (no markdown):
{
  "direction": "increase|decrease|neutral",
  "magnitude": <number 0-10>,
  "confidence": <number 0-1>,
  "reasoning": "<1-2 sentence explanation>",
  "components": {
    "supplyDisruption": <0-10>,
    "marketSentiment": <0-10>,
    "companyExposure": <0-10>,
    "geopoliticalSeverity": <0-10>,
    "historicalPrecedent": <0-10>
  }
}`,
		asset.Name,
		event.Title, event.Description,
		asset.CurrentRiskScore,
		strings.Join(impactLines, "\n"))
}
