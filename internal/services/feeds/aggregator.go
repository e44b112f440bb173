package feeds

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/models"
)

const aggregatorUserAgent = "sentinel-risk-monitor/1.0"

// Aggregator fetches headlines from RSS sources in parallel. A source that
// fails or times out contributes nothing; the scan continues with whatever
// the remaining sources returned.
type Aggregator struct {
	config *common.FeedsConfig
	client *http.Client
	logger arbor.ILogger
}

func NewAggregator(config *common.FeedsConfig, logger arbor.ILogger) *Aggregator {
	timeout := config.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Aggregator{
		config: config,
		client: &http.Client{Timeout: timeout},
		logger: logger.WithPrefix("aggregator"),
	}
}

// FetchAll polls every enabled source concurrently and returns the combined
// headlines sorted newest first.
func (a *Aggregator) FetchAll(ctx context.Context, sources []models.FeedSource) []*models.Headline {
	enabled := EnabledSources(sources)

	a.logger.Info().Int("sources", len(enabled)).Msg("Fetching RSS feeds")

	var (
		mu       sync.Mutex
		combined []*models.Headline
		wg       sync.WaitGroup
	)

	for _, src := range enabled {
		source := src
		wg.Add(1)
		common.SafeGo(a.logger, "feed-fetch-"+source.ID, func() {
			defer wg.Done()

			headlines, err := a.fetchSource(ctx, source)
			if err != nil {
				a.logger.Warn().Err(err).Str("source", source.ID).Msg("Feed fetch failed")
				return
			}

			mu.Lock()
			combined = append(combined, headlines...)
			mu.Unlock()
		})
	}

	wg.Wait()

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].PublishedAt.After(combined[j].PublishedAt)
	})

	a.logger.Info().Int("headlines", len(combined)).Msg("Feed fetch complete")

	return combined
}

func (a *Aggregator) fetchSource(ctx context.Context, source models.FeedSource) ([]*models.Headline, error) {
	parser := gofeed.NewParser()
	parser.Client = a.client
	parser.UserAgent = aggregatorUserAgent

	feed, err := parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, err
	}

	maxPerSource := a.config.MaxHeadlinesPerSource
	if maxPerSource <= 0 {
		maxPerSource = 20
	}

	items := feed.Items
	if len(items) > maxPerSource {
		items = items[:maxPerSource]
	}

	now := time.Now()
	headlines := make([]*models.Headline, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		title := item.Title
		if title == "" {
			title = "Untitled"
		}

		publishedAt := now
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}

		headlines = append(headlines, &models.Headline{
			ID:              common.NewHeadlineID(),
			Title:           title,
			URL:             item.Link,
			Source:          source.Name,
			PublishedAt:     publishedAt,
			Description:     description,
			TriageStatus:    models.TriageNoise,
			MatchedAssets:   []string{},
			MatchedKeywords: []string{},
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	return headlines, nil
}
