package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ternarybob/sentinel/internal/assets"
	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/interfaces"
	"github.com/ternarybob/sentinel/internal/models"
	"github.com/ternarybob/sentinel/internal/services/relevance"
	"github.com/ternarybob/sentinel/internal/triage"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Wire</title>
    <link>https://example.com</link>
    <item>
      <title>Chilean workers announce strike at SQM lithium operation in Atacama</title>
      <link>https://example.com/lithium-strike</link>
      <description>Union halts production at the flagship brine site.</description>
      <pubDate>Fri, 28 Aug 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Local council approves new bike lanes downtown</title>
      <link>https://example.com/bike-lanes</link>
      <description>Construction begins next month.</description>
      <pubDate>Fri, 28 Aug 2026 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>TSMC reports earthquake damage at Taiwan fab</title>
      <link>https://example.com/tsmc-quake</link>
      <description>Semiconductor production delays expected after the shutdown.</description>
      <pubDate>Fri, 28 Aug 2026 07:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

type memoryHeadlines struct {
	mu    sync.Mutex
	items map[string]*models.Headline
}

func newMemoryHeadlines() *memoryHeadlines {
	return &memoryHeadlines{items: map[string]*models.Headline{}}
}

func (m *memoryHeadlines) StoreHeadline(ctx context.Context, h *models.Headline) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[h.ID] = h
	return nil
}

func (m *memoryHeadlines) StoreHeadlines(ctx context.Context, hs []*models.Headline) error {
	for _, h := range hs {
		if err := m.StoreHeadline(ctx, h); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryHeadlines) GetHeadline(ctx context.Context, id string) (*models.Headline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("headline %s not found", id)
	}
	return h, nil
}

func (m *memoryHeadlines) GetHeadlinesByStatus(ctx context.Context, status models.TriageStatus) ([]*models.Headline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Headline
	for _, h := range m.items {
		if h.TriageStatus == status {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memoryHeadlines) GetRecentHeadlines(ctx context.Context, limit int) ([]*models.Headline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Headline
	for _, h := range m.items {
		out = append(out, h)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memoryHeadlines) DeleteHeadline(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memoryHeadlines) CountHeadlines(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items), nil
}

func (m *memoryHeadlines) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = map[string]*models.Headline{}
	return nil
}

type captureEvents struct {
	mu     sync.Mutex
	events []interfaces.Event
}

func (c *captureEvents) Subscribe(interfaces.EventType, interfaces.EventHandler) error   { return nil }
func (c *captureEvents) Unsubscribe(interfaces.EventType, interfaces.EventHandler) error { return nil }

func (c *captureEvents) Publish(ctx context.Context, event interfaces.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *captureEvents) PublishSync(ctx context.Context, event interfaces.Event) error {
	return c.Publish(ctx, event)
}

func (c *captureEvents) Close() error { return nil }

func (c *captureEvents) byType(t interfaces.EventType) []interfaces.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []interfaces.Event
	for _, e := range c.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newTestService(t *testing.T, feedURL string, llm interfaces.LLMService) (*Service, *memoryHeadlines, *captureEvents) {
	t.Helper()

	logger := common.GetLogger()
	feedCfg := &common.FeedsConfig{
		MaxHeadlinesPerSource: 20,
		FetchTimeout:          5 * time.Second,
	}
	triageCfg := &common.TriageConfig{
		MaxAITriagePerScan: 10,
		FlagScoreThreshold: 7.0,
		CostPerHeadline:    0.0008,
	}

	sources := []models.FeedSource{
		{ID: "test-wire", Name: "Test Wire", URL: feedURL, Enabled: true, Category: "general"},
	}

	storage := newMemoryHeadlines()
	events := &captureEvents{}

	svc := NewService(
		sources,
		NewAggregator(feedCfg, logger),
		NewDiscovery(llm, feedCfg, logger),
		triage.NewFunnel(triage.NewKeywordMatcher(triage.DefaultMatcherConfig())),
		relevance.NewService(llm, relevance.DefaultConfig(), logger),
		assets.NewCatalog(),
		storage,
		events,
		feedCfg,
		triageCfg,
		logger,
	)
	return svc, storage, events
}

func TestService_Scan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed)
	}))
	defer server.Close()

	llm := &stubLLM{response: `{"score": 8.5, "reason": "Direct supply disruption", "relevant": true, "assets": ["lithium"]}`}
	svc, storage, events := newTestService(t, server.URL, llm)

	result, err := svc.Scan(context.Background(), ScanOptions{EnableAI: true})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if result.TotalHeadlines != 3 {
		t.Errorf("TotalHeadlines = %d, want 3", result.TotalHeadlines)
	}
	// The lithium strike and the TSMC earthquake both survive keyword triage.
	if result.FlaggedCount != 2 {
		t.Errorf("FlaggedCount = %d, want 2", result.FlaggedCount)
	}
	if result.AITriagedCount != 2 {
		t.Errorf("AITriagedCount = %d, want 2", result.AITriagedCount)
	}
	wantCost := 2 * 0.0008
	if result.CostEstimate < wantCost-1e-9 || result.CostEstimate > wantCost+1e-9 {
		t.Errorf("CostEstimate = %v, want %v", result.CostEstimate, wantCost)
	}
	if len(result.Signals) != 2 {
		t.Errorf("Signals = %d, want 2", len(result.Signals))
	}

	// Classified headlines carry the model's verdict.
	for _, sig := range result.Signals {
		if sig.AIScore == nil || *sig.AIScore != 8.5 {
			t.Errorf("signal %q AIScore = %v, want 8.5", sig.Title, sig.AIScore)
		}
	}

	// All headlines persisted, including noise.
	count, err := storage.CountHeadlines(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("persisted %d headlines, want 3", count)
	}

	if len(events.byType(interfaces.EventScanStarted)) != 1 {
		t.Error("expected one scan_started event")
	}
	if len(events.byType(interfaces.EventScanCompleted)) != 1 {
		t.Error("expected one scan_completed event")
	}
	if len(events.byType(interfaces.EventHeadlineFlagged)) != 2 {
		t.Error("expected two headline_flagged events")
	}

	// State reflects the completed scan.
	if svc.State().LastScan() == nil {
		t.Error("state should hold the last scan result")
	}
	headlines := svc.State().Headlines()
	if len(headlines) != 3 {
		t.Errorf("state holds %d headlines, want 3", len(headlines))
	}
	// Sorted by confidence, highest first.
	for i := 1; i < len(headlines); i++ {
		if headlines[i].Confidence > headlines[i-1].Confidence {
			t.Error("headlines must be sorted by confidence descending")
		}
	}
}

func TestService_ScanWithDiscovery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed)
	}))
	defer server.Close()

	// One discovery item duplicates the RSS strike headline and is dropped;
	// the other is new.
	discovery := `[
	  {"title": "Chilean workers announce strike at SQM lithium operation in Atacama", "url": "https://example.com/dup", "source": "Wire", "description": "dup", "relevance": 0.9},
	  {"title": "OPEC announces surprise production cut of 2 million barrels", "url": "https://example.com/opec", "source": "Wire", "description": "Crude prices jump on the OPEC quota decision.", "relevance": 0.85}
	]`
	llm := &routingLLM{discovery: discovery, relevance: `{"score": 7.5, "reason": "ok", "relevant": true, "assets": []}`}
	svc, _, _ := newTestService(t, server.URL, llm)

	result, err := svc.Scan(context.Background(), ScanOptions{EnableAI: false, EnableDiscovery: true})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	// 3 RSS + 1 unique discovery.
	if result.TotalHeadlines != 4 {
		t.Errorf("TotalHeadlines = %d, want 4", result.TotalHeadlines)
	}

	var foundDiscovered bool
	for _, h := range svc.State().Headlines() {
		if h.IsDiscovered() {
			foundDiscovered = true
			if !strings.Contains(h.Title, "OPEC") {
				t.Errorf("surviving discovery item = %q, want the OPEC headline", h.Title)
			}
		}
	}
	if !foundDiscovered {
		t.Error("expected one discovered headline to survive the merge")
	}
}

func TestService_ScanDiscoveryFailureDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed)
	}))
	defer server.Close()

	llm := &stubLLM{err: fmt.Errorf("model unavailable")}
	svc, _, _ := newTestService(t, server.URL, llm)

	result, err := svc.Scan(context.Background(), ScanOptions{EnableAI: false, EnableDiscovery: true})
	if err != nil {
		t.Fatalf("Scan should continue past discovery failure: %v", err)
	}
	if result.TotalHeadlines != 3 {
		t.Errorf("TotalHeadlines = %d, want 3 from RSS alone", result.TotalHeadlines)
	}
}

func TestService_ConcurrentScanRejected(t *testing.T) {
	svc, _, _ := newTestService(t, "http://127.0.0.1:0/unreachable", &stubLLM{})

	if !svc.State().TryBeginScan() {
		t.Fatal("first TryBeginScan should succeed")
	}
	if _, err := svc.Scan(context.Background(), ScanOptions{}); err != ErrScanInProgress {
		t.Errorf("err = %v, want ErrScanInProgress", err)
	}
	svc.State().EndScan()
}

// routingLLM answers discovery and relevance prompts differently, keyed on
// the system prompt's wire shape.
type routingLLM struct {
	discovery string
	relevance string
}

func (r *routingLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	for _, m := range messages {
		if strings.Contains(m.Content, "JSON array") {
			return r.discovery, nil
		}
	}
	return r.relevance, nil
}

func (r *routingLLM) HealthCheck(ctx context.Context) error { return nil }

func (r *routingLLM) GetProviderInfo() (string, string) { return "stub", "stub-model" }
