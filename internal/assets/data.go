package assets

import (
	"time"

	"github.com/ternarybob/sentinel/internal/models"
)

// defaultAssets returns the three monitored assets: lithium, crude oil,
// and semiconductors. Keyword taxonomies drive the triage matcher;
// supply chain data feeds the analysis prompts.
func defaultAssets() []*models.Asset {
	now := time.Now()

	return []*models.Asset{
		{
			ID:               "lithium",
			Name:             "Lithium",
			Symbol:           "Li",
			Category:         models.CategoryMetals,
			Description:      "Critical battery metal for electric vehicles and energy storage. Chile and Australia dominate global supply.",
			CurrentRiskScore: 4.2,
			RiskLevel:        models.RiskModerate,
			LastUpdated:      now,
			Monitoring: models.MonitoringConfig{
				Regions: []string{"Chile", "Australia", "Argentina", "China"},
				Keywords: models.KeywordTaxonomy{
					Primary:   []string{"lithium", "li-ion", "battery metal", "sqm", "albemarle", "pilbara", "livent"},
					Locations: []string{"chile", "atacama", "argentina", "australia", "nevada", "salar"},
					Events:    []string{"strike", "protest", "disruption", "halt", "shutdown", "closure", "suspend", "drought"},
					Companies: []string{"sqm", "albemarle", "pilbara", "livent", "ganfeng", "tianqi"},
				},
				Companies: []models.Company{
					{Name: "SQM", Symbol: "SQM", Exposure: 95, Relationship: "producer"},
					{Name: "Albemarle Corporation", Symbol: "ALB", Exposure: 90, Relationship: "producer"},
					{Name: "Tesla", Symbol: "TSLA", Exposure: 75, Relationship: "consumer"},
					{Name: "Panasonic", Symbol: "PCRFY", Exposure: 70, Relationship: "consumer"},
					{Name: "Pilbara Minerals", Symbol: "PLS.AX", Exposure: 85, Relationship: "competitor"},
					{Name: "Ganfeng Lithium", Symbol: "1772.HK", Exposure: 80, Relationship: "producer"},
				},
				Sources: []string{"El Mercurio", "Bloomberg", "Mining.com", "Reuters", "Financial Times"},
			},
			SupplyChain: models.SupplyChain{
				TopProducers: []models.Producer{
					{Name: "Salar de Atacama (SQM)", Country: "Chile", GlobalShare: 22},
					{Name: "Greenbushes Mine (Albemarle/Tianqi)", Country: "Australia", GlobalShare: 18},
					{Name: "Mt. Cattlin (Albemarle)", Country: "Australia", GlobalShare: 8},
					{Name: "Salar de Olaroz", Country: "Argentina", GlobalShare: 5},
				},
				TopConsumers: []models.Consumer{
					{Name: "China", Country: "China", Demand: 45},
					{Name: "United States", Country: "USA", Demand: 18},
					{Name: "South Korea", Country: "South Korea", Demand: 12},
				},
				CriticalNodes: []models.CriticalNode{
					{Name: "Salar de Atacama", Type: "mine", Location: "Atacama Desert, Chile", Importance: 10},
					{Name: "Port of Antofagasta", Type: "port", Location: "Antofagasta, Chile", Importance: 8},
					{Name: "Greenbushes Processing Plant", Type: "processing_plant", Location: "Western Australia", Importance: 9},
				},
			},
		},
		{
			ID:               "oil",
			Name:             "Crude Oil",
			Symbol:           "CL",
			Category:         models.CategoryEnergy,
			Description:      "The world's most traded commodity. Middle East tensions and OPEC decisions drive volatility.",
			CurrentRiskScore: 5.8,
			RiskLevel:        models.RiskElevated,
			LastUpdated:      now,
			Monitoring: models.MonitoringConfig{
				Regions: []string{"Saudi Arabia", "Iran", "Iraq", "UAE", "Russia", "USA", "Venezuela"},
				Keywords: models.KeywordTaxonomy{
					Primary:   []string{"opec", "crude", "barrel", "petroleum", "wti", "brent", "oil price"},
					Locations: []string{"hormuz", "saudi", "iran", "russia", "uae", "iraq", "venezuela", "strait"},
					Events:    []string{"cut", "sanction", "embargo", "attack", "pipeline", "tanker", "spill", "quota"},
					Companies: []string{"aramco", "exxon", "chevron", "bp", "shell", "total", "rosneft"},
				},
				Companies: []models.Company{
					{Name: "Saudi Aramco", Symbol: "2222.SR", Exposure: 95, Relationship: "producer"},
					{Name: "ExxonMobil", Symbol: "XOM", Exposure: 90, Relationship: "producer"},
					{Name: "BP", Symbol: "BP", Exposure: 85, Relationship: "producer"},
					{Name: "Chevron", Symbol: "CVX", Exposure: 88, Relationship: "producer"},
				},
				Sources: []string{"Reuters", "Bloomberg Energy", "OPEC News", "Middle East Eye", "Platts"},
			},
			SupplyChain: models.SupplyChain{
				TopProducers: []models.Producer{
					{Name: "Ghawar Field", Country: "Saudi Arabia", GlobalShare: 6},
					{Name: "Permian Basin", Country: "USA", GlobalShare: 12},
					{Name: "West Siberian Basin", Country: "Russia", GlobalShare: 11},
				},
				TopConsumers: []models.Consumer{
					{Name: "United States", Country: "USA", Demand: 20},
					{Name: "China", Country: "China", Demand: 16},
					{Name: "India", Country: "India", Demand: 5},
				},
				CriticalNodes: []models.CriticalNode{
					{Name: "Strait of Hormuz", Type: "port", Location: "Persian Gulf", Importance: 10},
					{Name: "Suez Canal", Type: "port", Location: "Egypt", Importance: 9},
					{Name: "Ras Tanura Terminal", Type: "port", Location: "Saudi Arabia", Importance: 9},
				},
			},
		},
		{
			ID:               "semiconductors",
			Name:             "Semiconductors",
			Symbol:           "SOXX",
			Category:         models.CategoryTechnology,
			Description:      "Critical technology components. Taiwan and South Korea dominate production. Geopolitical tensions pose major supply chain risk.",
			CurrentRiskScore: 6.5,
			RiskLevel:        models.RiskElevated,
			LastUpdated:      now,
			Monitoring: models.MonitoringConfig{
				Regions: []string{"Taiwan", "South Korea", "China", "USA", "Japan"},
				Keywords: models.KeywordTaxonomy{
					Primary:   []string{"tsmc", "semiconductor", "chip", "wafer", "foundry", "fab", "asml"},
					Locations: []string{"taiwan", "china", "korea", "arizona", "netherlands", "japan"},
					Events:    []string{"shortage", "export", "restriction", "ban", "subsidy", "tariff", "earthquake"},
					Companies: []string{"tsmc", "samsung", "intel", "asml", "nvidia", "amd", "qualcomm"},
				},
				Companies: []models.Company{
					{Name: "Taiwan Semiconductor (TSMC)", Symbol: "TSM", Exposure: 95, Relationship: "producer"},
					{Name: "NVIDIA", Symbol: "NVDA", Exposure: 85, Relationship: "consumer"},
					{Name: "Apple", Symbol: "AAPL", Exposure: 90, Relationship: "consumer"},
					{Name: "Samsung Electronics", Symbol: "005930.KS", Exposure: 92, Relationship: "producer"},
					{Name: "Intel", Symbol: "INTC", Exposure: 80, Relationship: "producer"},
					{Name: "AMD", Symbol: "AMD", Exposure: 88, Relationship: "consumer"},
				},
				Sources: []string{"DigiTimes", "EE Times", "Nikkei Asia", "Taiwan News", "The Verge"},
			},
			SupplyChain: models.SupplyChain{
				TopProducers: []models.Producer{
					{Name: "TSMC Fab 18", Country: "Taiwan", GlobalShare: 28},
					{Name: "Samsung Giheung Campus", Country: "South Korea", GlobalShare: 18},
					{Name: "Intel Fab 42", Country: "USA", GlobalShare: 8},
				},
				TopConsumers: []models.Consumer{
					{Name: "United States", Country: "USA", Demand: 30},
					{Name: "China", Country: "China", Demand: 35},
					{Name: "European Union", Country: "EU", Demand: 15},
				},
				CriticalNodes: []models.CriticalNode{
					{Name: "TSMC Headquarters", Type: "processing_plant", Location: "Hsinchu, Taiwan", Importance: 10},
					{Name: "Port of Kaohsiung", Type: "port", Location: "Taiwan", Importance: 9},
					{Name: "Incheon Airport", Type: "port", Location: "South Korea", Importance: 8},
				},
			},
		},
	}
}
