package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/models"
)

const discoverySystemPrompt = `You are a financial news aggregator finding important geopolitical and supply chain news.
Return ONLY a JSON array of news items with this exact structure (NO markdown, NO code blocks, PURE JSON):
[
  {
    "title": "Full headline text",
    "url": "https://source.com/article",
    "source": "Source name",
    "description": "Brief summary (1-2 sentences)",
    "publishedAt": "2025-10-18T10:00:00Z",
    "relevance": 0.65
  }
]

CRITICAL REQUIREMENTS:
1. Return 12-15 items covering ALL the requested categories
2. Mix different assets - NOT all from one category
3. Include both breaking news AND important ongoing developments
4. Prioritize supply disruptions, geopolitical events, major company news, policy changes
5. Relevance scoring:
   - 0.85-0.95: Major disruptions (strikes, conflicts, disasters, sanctions)
   - 0.70-0.84: Significant news (policy changes, production shifts, trade developments)
   - 0.55-0.69: Important updates (market trends, company reports, regional news)
6. MUST return valid JSON array - no extra text, no markdown
7. If no breaking news today, include news from this week
8. Each item MUST have all fields with realistic data`

var discoveryFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

type discoveredItem struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	Description string  `json:"description"`
	PublishedAt string  `json:"publishedAt"`
	Relevance   float64 `json:"relevance"`
}

// Discovery finds breaking headlines through the fast LLM's web knowledge,
// complementing the RSS channel. Discovered headlines carry disc_ IDs and
// skip keyword triage since the model already judged their relevance.
type Discovery struct {
	llm    interfaces.LLMService
	config *common.FeedsConfig
	logger arbor.ILogger
}

func NewDiscovery(llm interfaces.LLMService, config *common.FeedsConfig, logger arbor.ILogger) *Discovery {
	return &Discovery{
		llm:    llm,
		config: config,
		logger: logger.WithPrefix("discovery"),
	}
}

// Discover asks the LLM for breaking news across the monitored assets.
// Matched assets are inferred from each item's text against the catalog
// taxonomies, since discovered items bypass the keyword funnel.
func (d *Discovery) Discover(ctx context.Context, taxonomies map[string]models.KeywordTaxonomy) ([]*models.Headline, error) {
	timeout := d.config.DiscoveryTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()

	assetIDs := make([]string, 0, len(taxonomies))
	for id := range taxonomies {
		assetIDs = append(assetIDs, id)
	}
	sort.Strings(assetIDs)

	response, err := d.llm.Chat(ctx, []interfaces.Message{
		{Role: "system", Content: discoverySystemPrompt},
		{Role: "user", Content: buildDiscoveryQuery(assetIDs)},
	})
	if err != nil {
		return nil, fmt.Errorf("discovery request failed: %w", err)
	}

	items, err := parseDiscoveryResponse(response)
	if err != nil {
		return nil, err
	}

	headlines := make([]*models.Headline, 0, len(items))
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		headlines = append(headlines, d.toHeadline(item, assetIDs, taxonomies))
	}

	flagged := 0
	for _, h := range headlines {
		if h.Flagged() {
			flagged++
		}
	}

	d.logger.Info().
		Int("headlines", len(headlines)).
		Int("flagged", flagged).
		Str("duration", time.Since(started).String()).
		Msg("Discovery complete")

	return headlines, nil
}

func buildDiscoveryQuery(assetNames []string) string {
	var sb strings.Builder
	sb.WriteString("Find recent news and developments about:\n\n")
	for i, name := range assetNames {
		fmt.Fprintf(&sb, "%d. %s: supply disruptions, production changes, geopolitical events, major company news, policy and market developments\n", i+1, strings.ToUpper(name))
	}
	sb.WriteString("\nInclude both breaking news and important recent developments that could impact supply chains or markets.")
	return sb.String()
}

func parseDiscoveryResponse(response string) ([]discoveredItem, error) {
	candidate := response
	if m := discoveryFencePattern.FindStringSubmatch(candidate); m != nil {
		candidate = m[1]
	}

	start := strings.Index(candidate, "[")
	end := strings.LastIndex(candidate, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array in discovery response")
	}

	var items []discoveredItem
	if err := json.Unmarshal([]byte(candidate[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("failed to parse discovery response: %w", err)
	}

	return items, nil
}

func (d *Discovery) toHeadline(item discoveredItem, assetIDs []string, taxonomies map[string]models.KeywordTaxonomy) *models.Headline {
	now := time.Now()

	publishedAt := now
	if item.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, item.PublishedAt); err == nil {
			publishedAt = t
		}
	}

	text := strings.ToLower(item.Title + " " + item.Description)
	matchedAssets := inferAssets(text, assetIDs, taxonomies)
	confidence := discoveryConfidence(item.Relevance, len(matchedAssets))

	status := models.TriageNoise
	if len(matchedAssets) > 0 {
		status = models.TriageFlagged
	}

	aiScore := confidence * 10

	source := item.Source
	if source == "" {
		source = "LLM Discovery"
	}

	return &models.Headline{
		ID:              common.NewDiscoveryID(),
		Title:           item.Title,
		URL:             item.URL,
		Source:          source,
		PublishedAt:     publishedAt,
		Description:     item.Description,
		TriageStatus:    status,
		MatchedAssets:   matchedAssets,
		MatchedKeywords: []string{},
		Confidence:      confidence,
		AIScore:         &aiScore,
		AIReason:        "Discovered by LLM web search",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// inferAssets matches the lowercased item text against each asset's primary,
// location, and company keywords.
func inferAssets(text string, assetIDs []string, taxonomies map[string]models.KeywordTaxonomy) []string {
	matched := make([]string, 0, len(assetIDs))
	for _, assetID := range assetIDs {
		taxonomy := taxonomies[assetID]
		if containsAny(text, taxonomy.Primary) || containsAny(text, taxonomy.Locations) || containsAny(text, taxonomy.Companies) {
			matched = append(matched, assetID)
		}
	}
	return matched
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// discoveryConfidence blends the model's self-reported relevance with how
// many assets the item touches, bounded to [0.5, 0.95].
func discoveryConfidence(relevance float64, assetCount int) float64 {
	if relevance <= 0 {
		relevance = 0.6
	}
	confidence := relevance + float64(assetCount)*0.1
	if confidence < 0.5 {
		confidence = 0.5
	}
	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}
