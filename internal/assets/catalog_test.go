package assets

import (
	"errors"
	"sync"
	"testing"

	"github.com/ternarybob/sentinel/internal/models"
)

func TestCatalog_GetAsset(t *testing.T) {
	catalog := NewCatalog()

	for _, id := range []string{"lithium", "oil", "semiconductors"} {
		asset, err := catalog.GetAsset(id)
		if err != nil {
			t.Fatalf("GetAsset(%s) error: %v", id, err)
		}
		if asset.ID != id {
			t.Errorf("asset.ID = %s, want %s", asset.ID, id)
		}
		if len(asset.Monitoring.Keywords.Primary) == 0 {
			t.Errorf("%s has no primary keywords", id)
		}
		if len(asset.Monitoring.Companies) == 0 {
			t.Errorf("%s has no monitored companies", id)
		}
	}
}

func TestCatalog_UnknownAsset(t *testing.T) {
	catalog := NewCatalog()

	_, err := catalog.GetAsset("gold")
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("err = %v, want ErrAssetNotFound", err)
	}
}

func TestCatalog_UpdateRisk(t *testing.T) {
	catalog := NewCatalog()

	if err := catalog.UpdateRisk("lithium", 6.8, models.RiskElevated); err != nil {
		t.Fatalf("UpdateRisk error: %v", err)
	}

	asset, err := catalog.GetAsset("lithium")
	if err != nil {
		t.Fatal(err)
	}
	if asset.CurrentRiskScore != 6.8 {
		t.Errorf("CurrentRiskScore = %.1f, want 6.8", asset.CurrentRiskScore)
	}
	if asset.RiskLevel != models.RiskElevated {
		t.Errorf("RiskLevel = %s, want elevated", asset.RiskLevel)
	}

	if err := catalog.UpdateRisk("gold", 5, models.RiskModerate); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("err = %v, want ErrAssetNotFound", err)
	}
}

func TestCatalog_GetAssetReturnsCopy(t *testing.T) {
	catalog := NewCatalog()

	asset, _ := catalog.GetAsset("oil")
	asset.CurrentRiskScore = 0

	fresh, _ := catalog.GetAsset("oil")
	if fresh.CurrentRiskScore == 0 {
		t.Error("mutating a returned asset must not affect the catalog")
	}
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	catalog := NewCatalog()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = catalog.UpdateRisk("semiconductors", 7.1, models.RiskCritical)
		}()
		go func() {
			defer wg.Done()
			_, _ = catalog.GetAsset("semiconductors")
		}()
	}
	wg.Wait()
}

func TestCatalog_Taxonomies(t *testing.T) {
	catalog := NewCatalog()
	taxonomies := catalog.Taxonomies()

	if len(taxonomies) != 3 {
		t.Fatalf("got %d taxonomies, want 3", len(taxonomies))
	}
	if _, ok := taxonomies["oil"]; !ok {
		t.Error("missing oil taxonomy")
	}
}

func TestGetScenario(t *testing.T) {
	scenario, err := GetScenario("lithium-chile-strike")
	if err != nil {
		t.Fatalf("GetScenario error: %v", err)
	}
	if scenario.AssetID != "lithium" {
		t.Errorf("AssetID = %s, want lithium", scenario.AssetID)
	}
	if scenario.PreloadedAnalysis == nil {
		t.Fatal("scenario must carry a preloaded analysis")
	}
	if len(scenario.PreloadedAnalysis.Impacts) != 3 {
		t.Errorf("got %d impacts, want 3", len(scenario.PreloadedAnalysis.Impacts))
	}

	if _, err := GetScenario("missing"); !errors.Is(err, ErrScenarioNotFound) {
		t.Errorf("err = %v, want ErrScenarioNotFound", err)
	}
}

func TestScenariosByAsset(t *testing.T) {
	if got := ScenariosByAsset("lithium"); len(got) != 1 {
		t.Errorf("got %d lithium scenarios, want 1", len(got))
	}
	if got := ScenariosByAsset("oil"); len(got) != 0 {
		t.Errorf("got %d oil scenarios, want 0", len(got))
	}
}
