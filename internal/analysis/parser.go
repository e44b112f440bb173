package analysis

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/ternarybob/sentinel/internal/models"
)

// ParseTier records how much structure was recovered from a model response
type ParseTier string

const (
	// TierParsed means the response was valid JSON as delivered
	TierParsed ParseTier = "parsed"

	// TierDegraded means structure was recovered via JSON repair or
	// text-section extraction
	TierDegraded ParseTier = "degraded"

	// TierUnrecoverable means nothing structured was found and a
	// minimal analysis was synthesized from the raw text
	TierUnrecoverable ParseTier = "unrecoverable"
)

var (
	fencePattern         = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// rawImpact is the wire shape the model is asked to emit for each impact
type rawImpact struct {
	Order            string                  `json:"order"`
	Description      string                  `json:"description"`
	Magnitude        float64                 `json:"magnitude" validate:"gte=0,lte=10"`
	Timeframe        string                  `json:"timeframe"`
	AffectedEntities []models.AffectedEntity `json:"affectedEntities"`
	Confidence       float64                 `json:"confidence" validate:"gte=0,lte=1"`
	CitationIDs      []int                   `json:"citationIds"`
}

type rawOpportunity struct {
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	SuggestedActions []string `json:"suggestedActions"`
	PotentialReturn  float64  `json:"potentialReturn"`
	RiskLevel        string   `json:"riskLevel"`
	Timeframe        string   `json:"timeframe"`
	CitationIDs      []int    `json:"citationIds"`
}

type rawAnalysis struct {
	Summary       string           `json:"summary"`
	Impacts       []rawImpact      `json:"impacts"`
	Opportunities []rawOpportunity `json:"opportunities"`
}

// Parser normalizes deep-reasoning responses into well-formed impact
// analyses. It never fails: each parse attempt falls through to a more
// conservative recovery path, trading fidelity for availability.
type Parser struct {
	validate *validator.Validate
}

// NewParser creates an analysis response parser
func NewParser() *Parser {
	return &Parser{validate: validator.New()}
}

// Parse turns a raw model response and its separately collected citations
// into an ImpactAnalysis. The returned tier records which recovery path
// produced the result.
func (p *Parser) Parse(response string, citations []models.Citation) (*models.ImpactAnalysis, ParseTier) {
	candidate := extractJSONCandidate(response)

	if candidate != "" {
		var raw rawAnalysis
		if err := json.Unmarshal([]byte(candidate), &raw); err == nil {
			return p.build(&raw, citations), TierParsed
		}

		repaired := repairJSON(candidate)
		var raw2 rawAnalysis
		if err := json.Unmarshal([]byte(repaired), &raw2); err == nil {
			return p.build(&raw2, citations), TierDegraded
		}
	}

	if analysis := parseStructuredText(response, citations); analysis != nil {
		return analysis, TierDegraded
	}

	return synthesizeFallback(response, citations), TierUnrecoverable
}

// build converts the wire shape into the domain model, clamping any
// out-of-range numeric fields the model produced.
func (p *Parser) build(raw *rawAnalysis, citations []models.Citation) *models.ImpactAnalysis {
	impacts := make([]models.Impact, 0, len(raw.Impacts))
	for _, ri := range raw.Impacts {
		if err := p.validate.Struct(ri); err != nil {
			ri.Magnitude = clampRange(ri.Magnitude, 0, 10)
			ri.Confidence = clampRange(ri.Confidence, 0, 1)
		}
		for i := range ri.AffectedEntities {
			ri.AffectedEntities[i].ImpactMagnitude = clampRange(ri.AffectedEntities[i].ImpactMagnitude, 0, 10)
		}
		impacts = append(impacts, models.Impact{
			Order:            parseOrder(ri.Order),
			Description:      ri.Description,
			Magnitude:        ri.Magnitude,
			Timeframe:        ri.Timeframe,
			AffectedEntities: ri.AffectedEntities,
			Confidence:       ri.Confidence,
			Citations:        mapCitations(ri.CitationIDs, citations),
		})
	}

	opportunities := make([]models.Opportunity, 0, len(raw.Opportunities))
	for _, ro := range raw.Opportunities {
		opportunities = append(opportunities, models.Opportunity{
			Type:             parseOpportunityType(ro.Type),
			Description:      ro.Description,
			SuggestedActions: ro.SuggestedActions,
			PotentialReturn:  ro.PotentialReturn,
			RiskLevel:        parseRiskLevel(ro.RiskLevel),
			Timeframe:        ro.Timeframe,
			Citations:        mapCitations(ro.CitationIDs, citations),
		})
	}

	summary := raw.Summary
	if summary == "" {
		summary = "Analysis complete"
	}

	return &models.ImpactAnalysis{
		Summary:       summary,
		Impacts:       impacts,
		Opportunities: opportunities,
		Citations:     citations,
	}
}

// extractJSONCandidate strips markdown fences and isolates the outermost
// JSON object from surrounding prose.
func extractJSONCandidate(response string) string {
	text := response
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(text, "}")
	if end > start {
		return text[start : end+1]
	}
	// Unterminated object, hand the tail to the repair pass
	return text[start:]
}

// repairJSON fixes the common failure modes of truncated generative
// output: trailing commas and unterminated arrays/objects.
func repairJSON(candidate string) string {
	repaired := trailingCommaPattern.ReplaceAllString(candidate, "$1")

	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(repaired); i++ {
		c := repaired[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				stack = append(stack, c)
			}
		case '}', ']':
			if !inString && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if inString {
		repaired += `"`
	}
	repaired = strings.TrimRight(repaired, " \t\n,")
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			repaired += "}"
		} else {
			repaired += "]"
		}
	}
	return repaired
}

// parseStructuredText recovers labeled sections from prose responses.
// Returns nil when no recognizable section markers are present.
func parseStructuredText(response string, citations []models.Citation) *models.ImpactAnalysis {
	primary := extractSection(response, "PRIMARY")
	firstOrder := extractSection(response, "FIRST-ORDER", "FIRST ORDER")
	opportunityText := extractSection(response, "OPPORTUNIT", "TRADING")

	if primary == "" && firstOrder == "" && opportunityText == "" {
		return nil
	}

	var impacts []models.Impact
	if primary != "" {
		impacts = append(impacts, models.Impact{
			Order:       models.OrderPrimary,
			Description: primary,
			Magnitude:   7,
			Timeframe:   "Immediate to 4 weeks",
			Confidence:  0.8,
			Citations:   citationSlice(citations, 0, 2),
		})
	}
	if firstOrder != "" {
		impacts = append(impacts, models.Impact{
			Order:       models.OrderFirst,
			Description: firstOrder,
			Magnitude:   6,
			Timeframe:   "4-12 weeks",
			Confidence:  0.7,
			Citations:   citationSlice(citations, 2, 4),
		})
	}

	var opportunities []models.Opportunity
	if opportunityText != "" {
		opportunities = append(opportunities, models.Opportunity{
			Type:        models.OpportunityArbitrage,
			Description: opportunityText,
			RiskLevel:   models.RiskModerate,
			Timeframe:   "Short to medium term",
			Citations:   citationSlice(citations, 4, 6),
		})
	}

	return &models.ImpactAnalysis{
		Summary:       truncate(response, 200),
		Impacts:       impacts,
		Opportunities: opportunities,
		Citations:     citations,
	}
}

// synthesizeFallback guarantees a structurally valid analysis even when
// the response carries no recoverable structure at all.
func synthesizeFallback(response string, citations []models.Citation) *models.ImpactAnalysis {
	return &models.ImpactAnalysis{
		Summary: "Analysis completed. See full details below.",
		Impacts: []models.Impact{
			{
				Order:       models.OrderPrimary,
				Description: truncate(response, 500),
				Magnitude:   5,
				Timeframe:   "Unknown",
				Confidence:  0.5,
				Citations:   citationSlice(citations, 0, 3),
			},
		},
		Opportunities: []models.Opportunity{},
		Citations:     citations,
	}
}

func extractSection(text string, markers ...string) string {
	for _, marker := range markers {
		re := regexp.MustCompile(`(?i)` + marker + `[:\s]+([\s\S]*?)(?:\n\n[A-Z]|$)`)
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// mapCitations resolves citation indices against the citation list,
// silently dropping anything out of range.
func mapCitations(ids []int, citations []models.Citation) []models.Citation {
	var mapped []models.Citation
	for _, id := range ids {
		if id >= 0 && id < len(citations) {
			mapped = append(mapped, citations[id])
		}
	}
	return mapped
}

func citationSlice(citations []models.Citation, from, to int) []models.Citation {
	if from >= len(citations) {
		return nil
	}
	if to > len(citations) {
		to = len(citations)
	}
	return citations[from:to]
}

func parseOrder(order string) models.ImpactOrder {
	switch strings.ToLower(order) {
	case "primary":
		return models.OrderPrimary
	case "first":
		return models.OrderFirst
	case "second":
		return models.OrderSecond
	case "third":
		return models.OrderThird
	default:
		return models.OrderPrimary
	}
}

func parseOpportunityType(t string) models.OpportunityType {
	switch strings.ToLower(t) {
	case "long":
		return models.OpportunityLong
	case "short":
		return models.OpportunityShort
	case "arbitrage":
		return models.OpportunityArbitrage
	case "hedge":
		return models.OpportunityHedge
	default:
		return models.OpportunityHedge
	}
}

func parseRiskLevel(level string) models.RiskLevel {
	switch strings.ToLower(level) {
	case "low":
		return models.RiskLow
	case "moderate":
		return models.RiskModerate
	case "elevated":
		return models.RiskElevated
	case "critical":
		return models.RiskCritical
	default:
		return models.RiskModerate
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// truncate cuts the string to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
