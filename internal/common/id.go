package common

import (
	"github.com/google/uuid"
)

// NewHeadlineID generates a unique headline ID with the "hl_" prefix
func NewHeadlineID() string {
	return "hl_" + uuid.New().String()
}

// NewDiscoveryID generates a headline ID carrying the LLM-discovery
// provenance marker. The triage funnel trusts discovery-marked headlines
// instead of re-matching them.
func NewDiscoveryID() string {
	return "disc_" + uuid.New().String()
}

// NewSignalID generates a unique risk-signal ID with the "sig_" prefix
func NewSignalID() string {
	return "sig_" + uuid.New().String()
}
