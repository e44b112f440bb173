package assets

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ternarybob/sentinel/internal/models"
)

// ErrAssetNotFound signals an unknown asset id. Callers surface it as a
// client error, not a pipeline failure.
var ErrAssetNotFound = errors.New("asset not found")

// Catalog is the static monitored-asset universe plus the one piece of
// mutable state in the system: each asset's current risk score. Reads
// and the single per-cycle score write are guarded by one lock.
type Catalog struct {
	mu     sync.RWMutex
	assets map[string]*models.Asset
	order  []string
}

// NewCatalog builds the catalog with the three monitored assets
func NewCatalog() *Catalog {
	c := &Catalog{assets: make(map[string]*models.Asset)}
	for _, asset := range defaultAssets() {
		c.assets[asset.ID] = asset
		c.order = append(c.order, asset.ID)
	}
	sort.Strings(c.order)
	return c
}

// GetAsset returns a copy of the asset with the given id
func (c *Catalog) GetAsset(id string) (*models.Asset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	asset, ok := c.assets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	copied := *asset
	return &copied, nil
}

// All returns copies of every asset in stable id order
func (c *Catalog) All() []*models.Asset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*models.Asset, 0, len(c.order))
	for _, id := range c.order {
		copied := *c.assets[id]
		result = append(result, &copied)
	}
	return result
}

// AssetIDs returns all asset ids in stable order
func (c *Catalog) AssetIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Taxonomies returns the keyword taxonomy for every asset, keyed by id
func (c *Catalog) Taxonomies() map[string]models.KeywordTaxonomy {
	c.mu.RLock()
	defer c.mu.RUnlock()

	taxonomies := make(map[string]models.KeywordTaxonomy, len(c.assets))
	for id, asset := range c.assets {
		taxonomies[id] = asset.Monitoring.Keywords
	}
	return taxonomies
}

// UpdateRisk writes the asset's new score and level. This is the single
// state transition persisted between analysis cycles; the caller ensures
// at most one analysis is in flight per asset.
func (c *Catalog) UpdateRisk(id string, score float64, level models.RiskLevel) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	asset, ok := c.assets[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	asset.CurrentRiskScore = score
	asset.RiskLevel = level
	asset.LastUpdated = time.Now()
	return nil
}
