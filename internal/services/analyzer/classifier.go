package analyzer

import (
	"regexp"

	"github.com/ternarybob/sentinel/internal/models"
)

// Ordered patterns: first match wins, so conflict outranks strike and
// strike outranks the broader political categories.
var eventPatterns = []struct {
	eventType models.EventType
	pattern   *regexp.Regexp
}{
	{models.EventConflict, regexp.MustCompile(`(?i)war|conflict|attack|invasion|military|battle|combat|missile|strike force`)},
	{models.EventStrike, regexp.MustCompile(`(?i)\bstrike\b|protest|walkout|union|labor action|workers|picket`)},
	{models.EventNaturalDisaster, regexp.MustCompile(`(?i)earthquake|flood|hurricane|typhoon|fire|wildfire|disaster|tsunami|drought`)},
	{models.EventPoliticalUnrest, regexp.MustCompile(`(?i)coup|unrest|riot|revolution|uprising|instability|regime change`)},
	{models.EventTradePolicy, regexp.MustCompile(`(?i)sanction|ban|regulation|policy|tariff|embargo|restriction|compliance|law`)},
	{models.EventTechnologyDisruption, regexp.MustCompile(`(?i)innovation|breakthrough|chip|semiconductor|\bai\b|technology|patent|disruption`)},
}

// ClassifyEventType derives an event type from headline text using
// keyword patterns. Anything unmatched falls back to market movement.
func ClassifyEventType(text string) models.EventType {
	for _, ep := range eventPatterns {
		if ep.pattern.MatchString(text) {
			return ep.eventType
		}
	}
	return models.EventMarketMovement
}
