package models

import "time"

// RiskLevel is the derived classification of a numeric risk score.
// It is always recomputed from the score via risk.ScoreToLevel, never stored
// independently of the score it describes.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskElevated RiskLevel = "elevated"
	RiskCritical RiskLevel = "critical"
)

// AssetCategory groups monitored assets by market segment.
type AssetCategory string

const (
	CategoryEnergy     AssetCategory = "energy"
	CategoryMetals     AssetCategory = "metals"
	CategoryTechnology AssetCategory = "technology"
)

// Asset is one of the monitored commodities/sectors. The catalog is a small
// fixed set of reference data; the scoring pipeline mutates only
// CurrentRiskScore and RiskLevel after each analysis cycle.
type Asset struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Symbol      string        `json:"symbol"`
	Category    AssetCategory `json:"category"`
	Description string        `json:"description"`

	CurrentRiskScore float64   `json:"current_risk_score"` // always in [0,10]
	RiskLevel        RiskLevel `json:"risk_level"`
	LastUpdated      time.Time `json:"last_updated"`

	Monitoring  MonitoringConfig `json:"monitoring"`
	SupplyChain SupplyChain      `json:"supply_chain"`
}

// MonitoringConfig holds the per-asset keyword taxonomy and watchlist.
type MonitoringConfig struct {
	Regions   []string        `json:"regions"`
	Keywords  KeywordTaxonomy `json:"keywords"`
	Companies []Company       `json:"companies"`
	Sources   []string        `json:"sources"`
}

// KeywordTaxonomy is the four-bucket keyword pattern set the matcher scores
// against. Bucket membership decides the weight a hit contributes.
type KeywordTaxonomy struct {
	Primary   []string `json:"primary" yaml:"primary"`
	Locations []string `json:"locations" yaml:"locations"`
	Events    []string `json:"events" yaml:"events"`
	Companies []string `json:"companies" yaml:"companies"`
}

// Company is a monitored company with exposure to the asset.
type Company struct {
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Exposure     float64 `json:"exposure"` // 0-100
	Relationship string  `json:"relationship"`
}

// Producer is a production site with its share of global supply.
type Producer struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	GlobalShare float64 `json:"global_share"`
}

// Consumer is a demand-side country or bloc.
type Consumer struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Demand  float64 `json:"demand"`
}

// CriticalNode is a chokepoint in the asset's supply chain.
type CriticalNode struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"` // port, refinery, mine, processing_plant
	Location   string  `json:"location"`
	Importance float64 `json:"importance"` // 0-10
}

// SupplyChain is the asset's supply-chain profile used to ground analysis
// prompts and company-exposure scoring.
type SupplyChain struct {
	TopProducers  []Producer     `json:"top_producers"`
	TopConsumers  []Consumer     `json:"top_consumers"`
	CriticalNodes []CriticalNode `json:"critical_nodes"`
}
