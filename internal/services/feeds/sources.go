package feeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ternarybob/sentinel/internal/models"
)

// DefaultSources returns the built-in RSS source list. Operators can replace
// it with a YAML file via feeds.sources_file.
func DefaultSources() []models.FeedSource {
	return []models.FeedSource{
		{ID: "reuters-world", Name: "Reuters World News", URL: "https://www.reutersagency.com/feed/?best-topics=political-general&post_type=best", Enabled: true, Category: "general"},
		{ID: "al-jazeera", Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Enabled: true, Category: "geopolitical"},
		{ID: "ft-world", Name: "Financial Times World", URL: "https://www.ft.com/world?format=rss", Enabled: true, Category: "general"},
		{ID: "mining-com", Name: "Mining.com", URL: "https://www.mining.com/feed/", Enabled: true, Category: "commodities"},
		{ID: "offshore-technology", Name: "Offshore Technology", URL: "https://www.offshore-technology.com/feed/", Enabled: true, Category: "commodities"},
		{ID: "semiconductor-engineering", Name: "Semiconductor Engineering", URL: "https://semiengineering.com/feed/", Enabled: true, Category: "commodities"},
		{ID: "supply-chain-dive", Name: "Supply Chain Dive", URL: "https://www.supplychaindive.com/feeds/news/", Enabled: true, Category: "supply-chain"},
		{ID: "freightwaves", Name: "FreightWaves", URL: "https://www.freightwaves.com/feed", Enabled: true, Category: "supply-chain"},
		{ID: "joc", Name: "JOC.com", URL: "https://www.joc.com/rss/all/feed.xml", Enabled: true, Category: "supply-chain"},
		{ID: "hellenic-shipping", Name: "Hellenic Shipping News", URL: "https://www.hellenicshippingnews.com/feed/", Enabled: true, Category: "supply-chain"},
	}
}

// LoadSources reads an RSS source list from a YAML file.
func LoadSources(path string) ([]models.FeedSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var doc struct {
		Sources []models.FeedSource `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}
	if len(doc.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s contains no sources", path)
	}

	for i, src := range doc.Sources {
		if src.ID == "" || src.URL == "" {
			return nil, fmt.Errorf("source %d is missing an id or url", i)
		}
	}

	return doc.Sources, nil
}

// ResolveSources returns the configured source list, falling back to the
// built-in defaults when no file is configured.
func ResolveSources(sourcesFile string) ([]models.FeedSource, error) {
	if sourcesFile == "" {
		return DefaultSources(), nil
	}
	return LoadSources(sourcesFile)
}

// EnabledSources filters the list down to sources that should be polled.
func EnabledSources(sources []models.FeedSource) []models.FeedSource {
	enabled := make([]models.FeedSource, 0, len(sources))
	for _, src := range sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}
	return enabled
}
