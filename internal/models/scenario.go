package models

// DemoScenario is a pre-built event with an optional preloaded analysis, used
// for offline demos and deterministic walkthroughs without live LLM calls.
type DemoScenario struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	AssetID           string          `json:"asset_id"`
	Description       string          `json:"description"`
	EventText         string          `json:"event_text"`
	EventType         EventType       `json:"event_type"`
	ExpectedRiskScore float64         `json:"expected_risk_score"`
	PreloadedAnalysis *ImpactAnalysis `json:"preloaded_analysis,omitempty"`
}
