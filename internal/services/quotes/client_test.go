package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		symbol := r.URL.Query().Get("symbol")
		switch r.URL.Path {
		case "/quote":
			switch symbol {
			case "ALB":
				fmt.Fprint(w, `{"c": 142.50, "d": 11.2, "dp": 8.53, "h": 144.0, "l": 130.1, "o": 131.3, "pc": 131.3, "t": 1756400000}`)
			default:
				fmt.Fprint(w, `{"c": 0, "d": 0, "dp": 0, "h": 0, "l": 0, "o": 0, "pc": 0, "t": 0}`)
			}
		case "/stock/profile2":
			switch symbol {
			case "ALB":
				fmt.Fprint(w, `{"name": "Albemarle Corporation", "finnhubIndustry": "Chemicals", "exchange": "NYSE", "ticker": "ALB"}`)
			default:
				fmt.Fprint(w, `{}`)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_GetQuote(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithRateLimit(100))

	quote, err := client.GetQuote(context.Background(), "ALB")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if quote.Price != 142.50 {
		t.Errorf("Price = %v, want 142.50", quote.Price)
	}
	if quote.ChangePercent != 8.53 {
		t.Errorf("ChangePercent = %v, want 8.53", quote.ChangePercent)
	}
}

func TestClient_GetQuote_UnknownSymbol(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithRateLimit(100))

	_, err := client.GetQuote(context.Background(), "NOPE")
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("err = %v, want ErrSymbolNotFound", err)
	}
}

func TestClient_GetProfile(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithRateLimit(100))

	profile, err := client.GetProfile(context.Background(), "ALB")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Name != "Albemarle Corporation" {
		t.Errorf("Name = %q", profile.Name)
	}
	if profile.Industry != "Chemicals" {
		t.Errorf("Industry = %q", profile.Industry)
	}
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "API limit reached")
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithRateLimit(100))

	_, err := client.GetQuote(context.Background(), "ALB")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
}

func TestEnricher_EnrichOpportunities(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	enricher := NewEnricher(&common.QuotesConfig{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		RateLimit: 100,
	}, common.GetLogger())
	if enricher == nil {
		t.Fatal("expected enricher with API key configured")
	}

	opportunities := []models.Opportunity{
		{
			Type:        models.OpportunityLong,
			Description: "Lithium producers outside Chile benefit from tightness",
			Company:     &models.OpportunityCompany{Name: "Albemarle", Ticker: "ALB"},
		},
		{
			Type:        models.OpportunityShort,
			Description: "Unknown ticker is left untouched",
			Company:     &models.OpportunityCompany{Name: "Ghost Corp", Ticker: "NOPE"},
		},
		{
			Type:        models.OpportunityHedge,
			Description: "No company attached",
		},
	}

	enriched := enricher.EnrichOpportunities(context.Background(), opportunities)

	if len(enriched) != 3 {
		t.Fatalf("got %d opportunities, want 3", len(enriched))
	}

	alb := enriched[0].Company
	if alb.CurrentPrice != 142.50 {
		t.Errorf("CurrentPrice = %v, want 142.50", alb.CurrentPrice)
	}
	if alb.ChangePercent != 8.53 {
		t.Errorf("ChangePercent = %v, want 8.53", alb.ChangePercent)
	}
	if alb.Sector != "Chemicals" {
		t.Errorf("Sector = %q, want Chemicals", alb.Sector)
	}

	ghost := enriched[1].Company
	if ghost.CurrentPrice != 0 || ghost.Sector != "" {
		t.Errorf("failed lookup must leave the opportunity unchanged: %+v", ghost)
	}

	if enriched[2].Company != nil {
		t.Error("opportunity without a company must stay bare")
	}

	// Input slice is not mutated.
	if opportunities[0].Company.CurrentPrice != 0 {
		t.Error("enrichment must not mutate the caller's slice")
	}
}

func TestNewEnricher_NoKey(t *testing.T) {
	if e := NewEnricher(&common.QuotesConfig{}, common.GetLogger()); e != nil {
		t.Error("expected nil enricher without an API key")
	}
}
