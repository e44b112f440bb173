package quotes

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/models"
)

// Enricher attaches live market data to trading opportunities. Quote
// failures never block an analysis; an opportunity whose symbol cannot be
// resolved is returned unchanged.
type Enricher struct {
	client *Client
	logger arbor.ILogger
}

// NewEnricher creates an opportunity enricher. Returns nil when no API key
// is configured, which disables enrichment entirely.
func NewEnricher(config *common.QuotesConfig, logger arbor.ILogger) *Enricher {
	if config.APIKey == "" {
		logger.Info().Msg("No quotes API key configured, opportunity enrichment disabled")
		return nil
	}

	opts := []ClientOption{WithLogger(logger)}
	if config.BaseURL != "" {
		opts = append(opts, WithBaseURL(config.BaseURL))
	}
	if config.RateLimit > 0 {
		opts = append(opts, WithRateLimit(config.RateLimit))
	}

	return &Enricher{
		client: NewClient(config.APIKey, opts...),
		logger: logger.WithPrefix("quotes"),
	}
}

// EnrichOpportunities fills in current price, change percent, and sector for
// every opportunity that names a tickered company.
func (e *Enricher) EnrichOpportunities(ctx context.Context, opportunities []models.Opportunity) []models.Opportunity {
	enriched := make([]models.Opportunity, len(opportunities))
	copy(enriched, opportunities)

	for i := range enriched {
		company := enriched[i].Company
		if company == nil || company.Ticker == "" {
			continue
		}

		quote, err := e.client.GetQuote(ctx, company.Ticker)
		if err != nil {
			e.logger.Warn().Err(err).Str("ticker", company.Ticker).Msg("Quote lookup failed")
			continue
		}

		updated := *company
		updated.CurrentPrice = quote.Price
		updated.ChangePercent = quote.ChangePercent

		if updated.Sector == "" {
			if profile, err := e.client.GetProfile(ctx, company.Ticker); err == nil {
				updated.Sector = profile.Industry
				if updated.Name == "" {
					updated.Name = profile.Name
				}
			}
		}

		enriched[i].Company = &updated
	}

	return enriched
}
