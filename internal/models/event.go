package models

import "time"

// EventType classifies the kind of geopolitical event behind a headline.
type EventType string

const (
	EventStrike               EventType = "strike"
	EventNaturalDisaster      EventType = "natural_disaster"
	EventPoliticalUnrest      EventType = "political_unrest"
	EventRegulation           EventType = "regulation"
	EventTradePolicy          EventType = "trade_policy"
	EventConflict             EventType = "conflict"
	EventTechnologyDisruption EventType = "technology_disruption"
	EventMarketMovement       EventType = "market_movement"
)

// NewsSource identifies where an event was reported.
type NewsSource struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Snippet     string    `json:"snippet"`
	PublishedAt time.Time `json:"published_at"`
	Credibility float64   `json:"credibility"` // 0-1
}

// Location is where an event occurred.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region,omitempty"`
}

// Event is a detected geopolitical event submitted for deep analysis.
type Event struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Source      NewsSource `json:"source"`
	Location    Location   `json:"location"`
	EventType   EventType  `json:"event_type"`
	DetectedAt  time.Time  `json:"detected_at"`
}
